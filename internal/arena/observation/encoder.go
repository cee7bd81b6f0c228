package observation

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/banshee-data/arena.observer/internal/arena/raycast"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// Vector is a flat observation: one feature group per ray sector.
type Vector []float32

// Pair holds the two vectors produced for one robot pose.
type Pair struct {
	Lower Vector
	Upper Vector
}

// DefaultLowerFilter sees every category. The upper sensor is mounted above
// the energy cores, so DefaultUpperFilter keeps their slots but never fills
// them.
var (
	DefaultLowerFilter = raycast.MustFilter(
		scene.FriendlyGoal, scene.EnemyGoal,
		scene.FriendlyRobot, scene.EnemyRobot,
		scene.PositiveCore, scene.NegativeCore,
		scene.Wall,
	)
	DefaultUpperFilter = raycast.MustFilter(
		scene.FriendlyGoal, scene.EnemyGoal,
		scene.FriendlyRobot, scene.EnemyRobot,
		scene.Skip, scene.Skip,
		scene.Wall,
	)
)

// ErrInvalidVector is returned by Check.
var ErrInvalidVector = errors.New("invalid observation vector")

// Encoder produces observation pairs with a shared caster.
type Encoder struct {
	caster *raycast.Caster
	lower  raycast.Filter
	upper  raycast.Filter
}

// NewEncoder returns an encoder for the two filters.
func NewEncoder(caster *raycast.Caster, lower, upper raycast.Filter) *Encoder {
	return &Encoder{caster: caster, lower: lower, upper: upper}
}

// Caster returns the underlying caster.
func (e *Encoder) Caster() *raycast.Caster { return e.caster }

// Filters returns the lower and upper filters.
func (e *Encoder) Filters() (lower, upper raycast.Filter) { return e.lower, e.upper }

// LowerLen and UpperLen return the fixed vector lengths.
func (e *Encoder) LowerLen() int { return Len(e.caster.Angles(), e.lower) }
func (e *Encoder) UpperLen() int { return Len(e.caster.Angles(), e.upper) }

// Encode casts both filters from pose against the same scene state. The
// scene must not change while Encode runs.
func (e *Encoder) Encode(sc raycast.Scene, pose scene.Pose) Pair {
	return Pair{
		Lower: e.caster.Observe(sc, pose, e.lower),
		Upper: e.caster.Observe(sc, pose, e.upper),
	}
}

// EncodeRobots encodes every controlled robot against one snapshot of m.
func (e *Encoder) EncodeRobots(m *scene.Model, poses map[scene.ObjectID]scene.Pose) map[scene.ObjectID]Pair {
	if len(poses) == 0 {
		return nil
	}
	snap := m.Snapshot()
	out := make(map[scene.ObjectID]Pair, len(poses))
	for id, p := range poses {
		out[id] = e.Encode(snap, p)
	}
	return out
}

// Len returns the vector length for a set of angles and a filter.
func Len(angles []float64, f raycast.Filter) int { return len(angles) * f.Width() }

// Check verifies that every group of width values is well formed: a miss
// group has no one-hot set and distance 1, a hit group has exactly one
// one-hot set and distance in [0, 1].
func Check(vec Vector, width int) error {
	if width < 3 {
		return fmt.Errorf("%w: group width %d", ErrInvalidVector, width)
	}
	if len(vec)%width != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of %d", ErrInvalidVector, len(vec), width)
	}
	for g := 0; g*width < len(vec); g++ {
		group := vec[g*width : (g+1)*width]
		hot := 0
		for _, v := range group[:width-2] {
			switch v {
			case 0:
			case 1:
				hot++
			default:
				return fmt.Errorf("%w: sector %d one-hot value %g", ErrInvalidVector, g, v)
			}
		}
		miss, dist := group[width-2], group[width-1]
		if math.IsNaN(float64(dist)) || dist < 0 || dist > 1 {
			return fmt.Errorf("%w: sector %d distance %g out of range", ErrInvalidVector, g, dist)
		}
		switch miss {
		case 1:
			if hot != 0 || dist != 1 {
				return fmt.Errorf("%w: sector %d miss with %d one-hot slots and distance %g", ErrInvalidVector, g, hot, dist)
			}
		case 0:
			if hot != 1 {
				return fmt.Errorf("%w: sector %d hit with %d one-hot slots", ErrInvalidVector, g, hot)
			}
		default:
			return fmt.Errorf("%w: sector %d miss flag %g", ErrInvalidVector, g, miss)
		}
	}
	return nil
}

// Format renders one line per sector for debugging, e.g.
//
//	+30.0° [0 0 0 0 0 0 1 | 0] 0.600
func Format(vec Vector, angles []float64, width int) string {
	var b strings.Builder
	for g, a := range angles {
		if (g+1)*width > len(vec) {
			break
		}
		group := vec[g*width : (g+1)*width]
		fmt.Fprintf(&b, "%+6.1f° [", a*180/math.Pi)
		for i, v := range group[:width-2] {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%g", v)
		}
		fmt.Fprintf(&b, " | %g] %.3f\n", group[width-2], group[width-1])
	}
	return b.String()
}
