// Package frame is the per-tick boundary between detection and the
// observation core.
//
// Responsibilities: the detector contract, synchronising the scene model
// from one detection set, the "no observation" short-circuits, and
// dispatching the encoder for every controlled robot. Replay of recorded
// detections is provided for offline runs and tests.
// Key types: Frame, Detections, Detector, Orchestrator, Result, Replay.
//
// Dependency rule: frame may depend on the arena packages only. The
// orchestrator itself never blocks; Replay reads from an io.Reader.
package frame
