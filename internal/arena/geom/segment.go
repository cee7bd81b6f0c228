package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Segment is a directed line segment from A to B.
type Segment struct {
	A, B Vec
}

// NewSegment returns the segment a→b, rejecting zero-length input.
func NewSegment(a, b Vec) (Segment, error) {
	if !finite(a) || !finite(b) {
		return Segment{}, fmt.Errorf("%w: non-finite segment endpoint", ErrInvalidGeometry)
	}
	if r2.Norm(r2.Sub(b, a)) <= Epsilon {
		return Segment{}, fmt.Errorf("%w: zero-length segment at (%g, %g)", ErrInvalidGeometry, a.X, a.Y)
	}
	return Segment{A: a, B: b}, nil
}

// Ray returns the segment starting at origin with the given absolute angle
// and length. It is used for ray casts, which never take a zero length.
func Ray(origin Vec, angle, length float64) Segment {
	return Segment{A: origin, B: r2.Add(origin, FromAngle(angle, length))}
}

// Direction returns B - A.
func (s Segment) Direction() Vec { return r2.Sub(s.B, s.A) }

// Length returns the segment length.
func (s Segment) Length() float64 { return r2.Norm(s.Direction()) }

// At returns the point at fraction t along the segment.
func (s Segment) At(t float64) Vec { return r2.Add(s.A, r2.Scale(t, s.Direction())) }

// Offset returns the segment translated by d.
func (s Segment) Offset(d Vec) Segment { return Segment{A: r2.Add(s.A, d), B: r2.Add(s.B, d)} }

// Bounds returns the segment's bounding box.
func (s Segment) Bounds() Box { return boundsOf([]Vec{s.A, s.B}) }

// closestFraction returns the fraction along s of the point nearest p.
func (s Segment) closestFraction(p Vec) float64 {
	d := s.Direction()
	l2 := r2.Dot(d, d)
	if l2 == 0 {
		return 0
	}
	t := r2.Dot(r2.Sub(p, s.A), d) / l2
	return math.Max(0, math.Min(1, t))
}

// DistanceTo returns the distance from p to the nearest point of s.
func (s Segment) DistanceTo(p Vec) float64 {
	return r2.Norm(r2.Sub(p, s.At(s.closestFraction(p))))
}

// castSegment intersects ray s with edge e and returns the fraction along s.
// Parallel and collinear edges never report a hit.
func castSegment(s, e Segment) (float64, bool) {
	d := s.Direction()
	f := e.Direction()
	denom := r2.Cross(d, f)
	if math.Abs(denom) < Epsilon {
		return 0, false
	}
	w := r2.Sub(e.A, s.A)
	t := r2.Cross(w, f) / denom
	u := r2.Cross(w, d) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return 0, false
	}
	return t, true
}

// castCircle intersects ray s with the circle boundary. An origin strictly
// inside the circle does not report a hit.
func castCircle(s Segment, c Vec, r float64) (float64, bool) {
	m := r2.Sub(s.A, c)
	cc := r2.Dot(m, m) - r*r
	if cc < 0 {
		return 0, false
	}
	d := s.Direction()
	a := r2.Dot(d, d)
	b := r2.Dot(m, d)
	disc := b*b - a*cc
	if a == 0 || disc < 0 {
		return 0, false
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return 0, false
	}
	return t, true
}

func segmentsCross(a, b Segment) bool {
	d1 := r2.Cross(b.Direction(), r2.Sub(a.A, b.A))
	d2 := r2.Cross(b.Direction(), r2.Sub(a.B, b.A))
	d3 := r2.Cross(a.Direction(), r2.Sub(b.A, a.A))
	d4 := r2.Cross(a.Direction(), r2.Sub(b.B, a.A))
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

// segmentDistance returns the minimum distance between two segments.
func segmentDistance(a, b Segment) float64 {
	if segmentsCross(a, b) {
		return 0
	}
	return math.Min(
		math.Min(b.DistanceTo(a.A), b.DistanceTo(a.B)),
		math.Min(a.DistanceTo(b.A), a.DistanceTo(b.B)),
	)
}
