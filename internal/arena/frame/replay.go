package frame

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// ErrOutOfSequence is returned when Detect is asked for a frame other than
// the one Replay last produced.
var ErrOutOfSequence = errors.New("frame out of sequence")

type replayPose struct {
	ID          *int    `json:"id,omitempty"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	RotationDeg float64 `json:"rotation_deg"`
}

type replayLine struct {
	Seq     *uint64                 `json:"seq,omitempty"`
	Robots  map[string]replayPose   `json:"robots"`
	Objects map[string][]replayPose `json:"objects"`
}

// Replay reads recorded detections, one JSON object per line, in image
// coordinates:
//
//	{"seq":1,"robots":{"3":{"x":320,"y":240,"rotation_deg":90}},
//	 "objects":{"positive_energy_core":[{"x":100,"y":80}]}}
//
// It is both the frame source and the detector for the frames it emits.
// Objects without an id are keyed by their index in the list.
type Replay struct {
	scanner *bufio.Scanner
	image   scene.ImageFrame
	line    int
	seq     uint64
	current Detections
}

// NewReplay reads detections from r and converts them with image.
func NewReplay(r io.Reader, image scene.ImageFrame) *Replay {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &Replay{scanner: sc, image: image}
}

// Next advances to the next recorded frame. It returns io.EOF when the input
// is exhausted. Blank lines are skipped.
func (r *Replay) Next() (Frame, error) {
	for r.scanner.Scan() {
		r.line++
		raw := r.scanner.Bytes()
		if len(bytes.TrimSpace(raw)) == 0 {
			continue
		}
		var l replayLine
		if err := json.Unmarshal(raw, &l); err != nil {
			return Frame{}, fmt.Errorf("replay line %d: %w", r.line, err)
		}
		d, err := r.convert(l)
		if err != nil {
			return Frame{}, fmt.Errorf("replay line %d: %w", r.line, err)
		}
		if l.Seq != nil {
			r.seq = *l.Seq
		} else {
			r.seq++
		}
		r.current = d
		return Frame{Seq: r.seq, Width: int(r.image.Width), Height: int(r.image.Height)}, nil
	}
	if err := r.scanner.Err(); err != nil {
		return Frame{}, fmt.Errorf("replay read: %w", err)
	}
	return Frame{}, io.EOF
}

// Detect returns the detections recorded for f.
func (r *Replay) Detect(f Frame) (Detections, error) {
	if f.Seq != r.seq {
		return Detections{}, fmt.Errorf("%w: have %d, asked for %d", ErrOutOfSequence, r.seq, f.Seq)
	}
	return r.current, nil
}

func (r *Replay) convert(l replayLine) (Detections, error) {
	d := Detections{
		Robots:  make(map[scene.ObjectID]scene.Pose, len(l.Robots)),
		Objects: make(map[scene.Category]map[scene.ObjectID]scene.Pose, len(l.Objects)),
	}
	for key, p := range l.Robots {
		id, err := strconv.Atoi(key)
		if err != nil {
			return Detections{}, fmt.Errorf("robot id %q: %w", key, err)
		}
		d.Robots[scene.ObjectID(id)] = r.image.Pose(p.X, p.Y, p.RotationDeg)
	}
	for name, list := range l.Objects {
		c, err := scene.ParseCategory(name)
		if err != nil {
			return Detections{}, err
		}
		ids := make(map[scene.ObjectID]scene.Pose, len(list))
		for i, p := range list {
			id := scene.ObjectID(i)
			if p.ID != nil {
				id = scene.ObjectID(*p.ID)
			}
			if _, dup := ids[id]; dup {
				return Detections{}, fmt.Errorf("%v: duplicate id %d", c, id)
			}
			ids[id] = r.image.Pose(p.X, p.Y, p.RotationDeg)
		}
		d.Objects[c] = ids
	}
	return d, nil
}
