// Package raycast owns the ray-cast sensor that turns a scene into the
// per-sector observation groups consumed by the decision policy.
//
// Responsibilities: ray angle generation, tracked-category filters,
// three-sub-ray bundles, closest-hit resolution and feature-group encoding.
// Key types: Config, Filter, Hit, Caster.
//
// Dependency rule: raycast may depend on geom and scene only. Casting is a
// bounded, synchronous computation with no I/O and no internal state beyond
// configuration.
package raycast
