package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Buffer builds the shape described by a coordinate list and a buffer
// distance: one point becomes a disc, two points a capsule (or a single-edge
// line chain when radius is 0) and three or more points a polygon.
func Buffer(points []Vec, radius float64) (Shape, error) {
	if radius < 0 || math.IsNaN(radius) {
		return nil, fmt.Errorf("%w: negative buffer distance %g", ErrInvalidGeometry, radius)
	}
	switch n := len(points); {
	case n == 0:
		return nil, fmt.Errorf("%w: no coordinates", ErrInvalidGeometry)
	case n == 1:
		return NewDisc(points[0], radius)
	case n == 2 && radius > 0:
		return NewCapsule(points[0], points[1], radius)
	case n == 2:
		return NewLineChain(points)
	case radius > 0:
		return nil, fmt.Errorf("%w: buffered polygons are not supported", ErrInvalidGeometry)
	default:
		return NewPolygon(points)
	}
}

// Intersects reports whether a and b overlap or touch.
func Intersects(a, b Shape) bool {
	if !Overlaps(a.Bounds(), b.Bounds()) {
		return false
	}
	sa, sb := a.skeleton(), b.skeleton()
	if skeletonDistance(sa, sb) <= sa.radius+sb.radius+Epsilon {
		return true
	}
	// Disjoint boundaries can still overlap when one shape lies wholly inside
	// a polygon.
	if sa.area != nil && len(sb.points) > 0 && sa.area.inside(sb.points[0]) {
		return true
	}
	if sb.area != nil && len(sa.points) > 0 && sb.area.inside(sa.points[0]) {
		return true
	}
	return false
}

func skeletonDistance(a, b skeleton) float64 {
	best := math.Inf(1)
	for _, ea := range a.edges {
		for _, eb := range b.edges {
			best = math.Min(best, segmentDistance(ea, eb))
		}
		if len(b.edges) == 0 {
			for _, p := range b.points {
				best = math.Min(best, ea.DistanceTo(p))
			}
		}
	}
	if len(a.edges) == 0 {
		for _, p := range a.points {
			for _, eb := range b.edges {
				best = math.Min(best, eb.DistanceTo(p))
			}
			if len(b.edges) == 0 {
				for _, q := range b.points {
					best = math.Min(best, r2.Norm(r2.Sub(p, q)))
				}
			}
		}
	}
	return best
}

// IntersectionPoint returns the first point along s that lies on shape. A
// segment starting inside the shape returns its start point.
func IntersectionPoint(s Segment, shape Shape) (Vec, bool) {
	if shape.Contains(s.A) {
		return s.A, true
	}
	t, ok := shape.RayCast(s)
	if !ok {
		return Vec{}, false
	}
	return s.At(t), true
}

// Distance returns the distance from p to shape.
func Distance(p Vec, shape Shape) float64 { return shape.Distance(p) }
