package frame

import (
	"fmt"

	"github.com/banshee-data/arena.observer/internal/arena/observation"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// Frame is one decoded camera image. The orchestrator treats Data as opaque.
type Frame struct {
	Seq    uint64
	Width  int
	Height int
	Data   []byte
}

// Detections is the output of the detection collaborators for one frame,
// in scene coordinates. Robots holds the controlled robots keyed by marker
// id; Objects holds every other dynamic category.
type Detections struct {
	Robots  map[scene.ObjectID]scene.Pose
	Objects map[scene.Category]map[scene.ObjectID]scene.Pose
}

// objectCount returns the number of non-robot detections.
func (d Detections) objectCount() int {
	n := 0
	for _, ids := range d.Objects {
		n += len(ids)
	}
	return n
}

// Detector turns a frame into detections.
type Detector interface {
	Detect(f Frame) (Detections, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(Frame) (Detections, error)

func (fn DetectorFunc) Detect(f Frame) (Detections, error) { return fn(f) }

// Outcome classifies a tick.
type Outcome int

const (
	Observed Outcome = iota
	MissingRobotPose
	EmptyDetectionSet
)

func (o Outcome) String() string {
	switch o {
	case Observed:
		return "observed"
	case MissingRobotPose:
		return "missing_robot_pose"
	case EmptyDetectionSet:
		return "empty_detection_set"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Result is the outcome of one tick. Observations is nil unless Outcome is
// Observed; callers must stop actuation on any other outcome.
type Result struct {
	Seq          uint64
	Outcome      Outcome
	Robots       map[scene.ObjectID]scene.Pose
	Observations map[scene.ObjectID]observation.Pair
}

// Observed reports whether the tick produced vectors.
func (r Result) Observed() bool { return r.Outcome == Observed }

// Orchestrator owns the scene model for a session and runs one tick at a
// time. It is not safe for concurrent use.
type Orchestrator struct {
	detector Detector
	model    *scene.Model
	encoder  *observation.Encoder
}

// NewOrchestrator wires a detector, a model and an encoder. The model must
// have a FriendlyRobot pool.
func NewOrchestrator(d Detector, m *scene.Model, e *observation.Encoder) (*Orchestrator, error) {
	if !m.HasPool(scene.FriendlyRobot) {
		return nil, fmt.Errorf("orchestrator: %w: model has no %v pool", scene.ErrUnknownCategory, scene.FriendlyRobot)
	}
	return &Orchestrator{detector: d, model: m, encoder: e}, nil
}

// Model returns the owned scene model.
func (o *Orchestrator) Model() *scene.Model { return o.model }

// Encoder returns the observation encoder.
func (o *Orchestrator) Encoder() *observation.Encoder { return o.encoder }

// Step detects on f and applies the detections.
func (o *Orchestrator) Step(f Frame) (Result, error) {
	d, err := o.detector.Detect(f)
	if err != nil {
		return Result{Seq: f.Seq}, fmt.Errorf("detect frame %d: %w", f.Seq, err)
	}
	res, err := o.Apply(d)
	res.Seq = f.Seq
	return res, err
}

// Apply synchronises the model with d and encodes every controlled robot.
// The model is synchronised even when the tick short-circuits, so objects
// that vanished are tombstoned. Before the model is touched, a detection for
// a category without a pool fails with scene.ErrUnknownCategory and a
// friendly robot listed under Objects fails with scene.ErrCategoryMismatch.
func (o *Orchestrator) Apply(d Detections) (Result, error) {
	for c := range d.Objects {
		if c == scene.FriendlyRobot {
			return Result{}, fmt.Errorf("detections: %w: %v belongs in Robots", scene.ErrCategoryMismatch, c)
		}
		if !o.model.HasPool(c) {
			return Result{}, fmt.Errorf("detections: %w: no pool for %v", scene.ErrUnknownCategory, c)
		}
	}
	for _, c := range o.model.PoolCategories() {
		dets := d.Objects[c]
		if c == scene.FriendlyRobot {
			dets = d.Robots
		}
		if err := o.model.SyncDynamic(c, dets); err != nil {
			return Result{}, fmt.Errorf("sync %v: %w", c, err)
		}
	}

	res := Result{Robots: d.Robots}
	switch {
	case len(d.Robots) == 0:
		res.Outcome = MissingRobotPose
	case d.objectCount() == 0:
		res.Outcome = EmptyDetectionSet
	default:
		res.Outcome = Observed
		res.Observations = o.encoder.EncodeRobots(o.model, d.Robots)
	}
	return res, nil
}
