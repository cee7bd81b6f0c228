// Package geom owns the 2-D geometry kernel of the arena model.
//
// Responsibilities: points and rigid transforms, segments, buffered
// shapes (discs and capsules), polygons and open line chains, and the
// intersection, ray cast and distance queries run against them.
// Key types: Vec, Segment, Shape, Disc, Capsule, Polygon, LineChain.
//
// Dependency rule: geom depends on nothing else in the arena packages.
// Shapes are validated at construction; queries assume valid input and
// never return errors.
package geom
