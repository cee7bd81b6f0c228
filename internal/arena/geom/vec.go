package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidGeometry is returned by shape constructors for degenerate input
// (zero-length segments, empty or collinear polygons, non-finite coordinates).
var ErrInvalidGeometry = errors.New("invalid geometry")

// Epsilon is the tolerance used for parallelism and containment tests.
const Epsilon = 1e-9

// Vec is a point or direction in scene units.
type Vec = r2.Vec

// Box is an axis-aligned bounding box.
type Box = r2.Box

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// FromAngle returns the vector of the given length pointing along angle
// (radians, counter-clockwise from +X).
func FromAngle(angle, length float64) Vec {
	return Vec{X: length * math.Cos(angle), Y: length * math.Sin(angle)}
}

// Transform is a rigid 2-D transform: rotate about the origin, then translate.
type Transform struct {
	Translation Vec
	Rotation    float64 // radians, counter-clockwise
}

// Apply maps p from the local frame into the transformed frame.
func (t Transform) Apply(p Vec) Vec {
	if t.Rotation != 0 {
		p = r2.Rotate(p, t.Rotation, Vec{})
	}
	return r2.Add(p, t.Translation)
}

func applyAll(t Transform, pts []Vec) []Vec {
	out := make([]Vec, len(pts))
	for i, p := range pts {
		out[i] = t.Apply(p)
	}
	return out
}

func finite(p Vec) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

func boundsOf(pts []Vec) Box {
	b := Box{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		b.Min.X = math.Min(b.Min.X, p.X)
		b.Min.Y = math.Min(b.Min.Y, p.Y)
		b.Max.X = math.Max(b.Max.X, p.X)
		b.Max.Y = math.Max(b.Max.Y, p.Y)
	}
	return b
}

func inflate(b Box, r float64) Box {
	return Box{Min: Vec{X: b.Min.X - r, Y: b.Min.Y - r}, Max: Vec{X: b.Max.X + r, Y: b.Max.Y + r}}
}

// Overlaps reports whether two bounding boxes share any point.
func Overlaps(a, b Box) bool {
	return a.Min.X <= b.Max.X && b.Min.X <= a.Max.X &&
		a.Min.Y <= b.Max.Y && b.Min.Y <= a.Max.Y
}
