// Package scene owns the arena world model.
//
// Responsibilities: object categories, robot and object poses, the
// immutable static objects (walls and goals) and the pooled dynamic
// objects (robots and energy cores) that are synchronised from detections
// every tick. Dynamic slots are never freed: an object that drops out of
// the detection set is parked at a tombstone position and reused when its
// id reappears.
// Key types: Category, Pose, Object, Model, Snapshot, ImageFrame.
//
// Dependency rule: scene may depend on geom only. It never logs and never
// performs I/O.
package scene
