// Package observation assembles the dual observation vectors handed to the
// decision policy.
//
// Responsibilities: the default lower and upper category filters, encoding
// both vectors from one scene state, per-robot encoding, and the vector
// invariant checks used by tests and the recorder.
// Key types: Vector, Pair, Encoder.
//
// Dependency rule: observation may depend on geom, scene and raycast only.
package observation
