package scene

import (
	"math"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
)

// ObjectID identifies an entity within its category: the marker id for
// robots, the pool index for untagged blobs such as energy cores.
type ObjectID int

// Pose is a position in scene units and a heading in radians, normalised to
// (-π, π].
type Pose struct {
	Position geom.Vec
	Heading  float64
}

// NewPose returns a pose with its heading normalised.
func NewPose(x, y, heading float64) Pose {
	return Pose{Position: geom.V(x, y), Heading: NormalizeAngle(heading)}
}

// NormalizeAngle wraps a into (-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// Transform returns the rigid transform that places local shapes at this pose.
func (p Pose) Transform() geom.Transform {
	return geom.Transform{Translation: p.Position, Rotation: p.Heading}
}

// ImageFrame converts camera image coordinates (origin top-left, y down,
// rotation in degrees clockwise) into scene coordinates (origin at the image
// centre, y up, heading in radians counter-clockwise).
type ImageFrame struct {
	Width, Height float64
}

// Point converts an image pixel position.
func (f ImageFrame) Point(x, y float64) geom.Vec {
	return geom.V(x-f.Width/2, -y+f.Height/2)
}

// Points converts a list of [x, y] pairs.
func (f ImageFrame) Points(coords [][2]float64) []geom.Vec {
	out := make([]geom.Vec, len(coords))
	for i, c := range coords {
		out[i] = f.Point(c[0], c[1])
	}
	return out
}

// Pose converts an image position and a marker rotation in degrees.
func (f ImageFrame) Pose(x, y, rotationDeg float64) Pose {
	p := f.Point(x, y)
	return NewPose(p.X, p.Y, -rotationDeg*math.Pi/180)
}
