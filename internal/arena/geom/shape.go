package geom

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Kind identifies the concrete shape type.
type Kind int

const (
	KindDisc Kind = iota
	KindCapsule
	KindPolygon
	KindLineChain
)

func (k Kind) String() string {
	switch k {
	case KindDisc:
		return "disc"
	case KindCapsule:
		return "capsule"
	case KindPolygon:
		return "polygon"
	case KindLineChain:
		return "line_chain"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Shape is an immutable, validated 2-D shape.
type Shape interface {
	Kind() Kind
	// RayCast returns the fraction along s of the first boundary crossing.
	// Rays starting inside a closed shape do not hit it.
	RayCast(s Segment) (fraction float64, ok bool)
	// Distance returns the distance from p to the shape; 0 inside closed shapes.
	Distance(p Vec) float64
	// Contains reports whether p lies inside or on the shape.
	Contains(p Vec) bool
	Bounds() Box
	Transform(t Transform) Shape

	skeleton() skeleton
}

// skeleton is the zero-width core of a shape plus its buffer radius. Closed
// polygons also carry themselves as an area for containment tests.
type skeleton struct {
	points []Vec
	edges  []Segment
	radius float64
	area   *Polygon
}

// Disc is a point buffered by a radius.
type Disc struct {
	Center Vec
	Radius float64
}

// NewDisc validates and returns a disc.
func NewDisc(center Vec, radius float64) (Disc, error) {
	if !finite(center) {
		return Disc{}, fmt.Errorf("%w: non-finite disc centre", ErrInvalidGeometry)
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Disc{}, fmt.Errorf("%w: disc radius must be positive, got %g", ErrInvalidGeometry, radius)
	}
	return Disc{Center: center, Radius: radius}, nil
}

func (d Disc) Kind() Kind { return KindDisc }

func (d Disc) RayCast(s Segment) (float64, bool) { return castCircle(s, d.Center, d.Radius) }

func (d Disc) Distance(p Vec) float64 {
	return math.Max(0, r2.Norm(r2.Sub(p, d.Center))-d.Radius)
}

func (d Disc) Contains(p Vec) bool { return r2.Norm(r2.Sub(p, d.Center)) <= d.Radius+Epsilon }

func (d Disc) Bounds() Box { return inflate(Box{Min: d.Center, Max: d.Center}, d.Radius) }

func (d Disc) Transform(t Transform) Shape {
	return Disc{Center: t.Apply(d.Center), Radius: d.Radius}
}

func (d Disc) skeleton() skeleton {
	return skeleton{points: []Vec{d.Center}, radius: d.Radius}
}

// Capsule is a segment buffered by a radius with round caps.
type Capsule struct {
	Spine  Segment
	Radius float64
}

// NewCapsule validates and returns a capsule around a→b.
func NewCapsule(a, b Vec, radius float64) (Capsule, error) {
	spine, err := NewSegment(a, b)
	if err != nil {
		return Capsule{}, err
	}
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Capsule{}, fmt.Errorf("%w: capsule radius must be positive, got %g", ErrInvalidGeometry, radius)
	}
	return Capsule{Spine: spine, Radius: radius}, nil
}

func (c Capsule) Kind() Kind { return KindCapsule }

// RayCast takes the earliest hit over the two end circles and the two side
// edges; together they bound the capsule for any exterior origin.
func (c Capsule) RayCast(s Segment) (float64, bool) {
	if c.Spine.DistanceTo(s.A) < c.Radius {
		return 0, false
	}
	dir := c.Spine.Direction()
	n := r2.Scale(c.Radius/r2.Norm(dir), Vec{X: -dir.Y, Y: dir.X})
	best, hit := math.Inf(1), false
	consider := func(t float64, ok bool) {
		if ok && t < best {
			best, hit = t, true
		}
	}
	consider(castCircle(s, c.Spine.A, c.Radius))
	consider(castCircle(s, c.Spine.B, c.Radius))
	consider(castSegment(s, c.Spine.Offset(n)))
	consider(castSegment(s, c.Spine.Offset(r2.Scale(-1, n))))
	return best, hit
}

func (c Capsule) Distance(p Vec) float64 { return math.Max(0, c.Spine.DistanceTo(p)-c.Radius) }

func (c Capsule) Contains(p Vec) bool { return c.Spine.DistanceTo(p) <= c.Radius+Epsilon }

func (c Capsule) Bounds() Box { return inflate(c.Spine.Bounds(), c.Radius) }

func (c Capsule) Transform(t Transform) Shape {
	return Capsule{Spine: Segment{A: t.Apply(c.Spine.A), B: t.Apply(c.Spine.B)}, Radius: c.Radius}
}

func (c Capsule) skeleton() skeleton {
	return skeleton{points: []Vec{c.Spine.A, c.Spine.B}, edges: []Segment{c.Spine}, radius: c.Radius}
}

// Polygon is a closed simple polygon. The closing edge is implicit.
type Polygon struct {
	vertices []Vec
	bounds   Box
}

// NewPolygon validates and returns a polygon. A repeated closing vertex is
// dropped.
func NewPolygon(vertices []Vec) (*Polygon, error) {
	pts := append([]Vec(nil), vertices...)
	if len(pts) > 1 && pts[0] == pts[len(pts)-1] {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidGeometry, len(pts))
	}
	for _, p := range pts {
		if !finite(p) {
			return nil, fmt.Errorf("%w: non-finite polygon vertex", ErrInvalidGeometry)
		}
	}
	if math.Abs(signedArea(pts)) <= Epsilon {
		return nil, fmt.Errorf("%w: polygon has zero area", ErrInvalidGeometry)
	}
	return &Polygon{vertices: pts, bounds: boundsOf(pts)}, nil
}

// Rect returns the axis-aligned rectangle centred on the origin with the given
// half extents.
func Rect(halfWidth, halfHeight float64) (*Polygon, error) {
	return NewPolygon([]Vec{
		{X: halfWidth, Y: halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: -halfWidth, Y: -halfHeight},
		{X: -halfWidth, Y: halfHeight},
	})
}

func signedArea(pts []Vec) float64 {
	var a float64
	for i := range pts {
		a += r2.Cross(pts[i], pts[(i+1)%len(pts)])
	}
	return a / 2
}

// Vertices returns a copy of the polygon vertices.
func (p *Polygon) Vertices() []Vec { return append([]Vec(nil), p.vertices...) }

// Edges returns the polygon edges, including the closing edge.
func (p *Polygon) Edges() []Segment {
	edges := make([]Segment, len(p.vertices))
	for i := range p.vertices {
		edges[i] = Segment{A: p.vertices[i], B: p.vertices[(i+1)%len(p.vertices)]}
	}
	return edges
}

func (p *Polygon) Kind() Kind { return KindPolygon }

func (p *Polygon) RayCast(s Segment) (float64, bool) {
	if p.inside(s.A) {
		return 0, false
	}
	return castEdges(s, p.Edges())
}

func (p *Polygon) Distance(q Vec) float64 {
	if p.inside(q) {
		return 0
	}
	return edgesDistance(q, p.Edges())
}

func (p *Polygon) Contains(q Vec) bool {
	return p.inside(q) || edgesDistance(q, p.Edges()) <= Epsilon
}

// inside is the even-odd crossing test.
func (p *Polygon) inside(q Vec) bool {
	in := false
	n := len(p.vertices)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := p.vertices[i], p.vertices[j]
		if (a.Y > q.Y) != (b.Y > q.Y) &&
			q.X < (b.X-a.X)*(q.Y-a.Y)/(b.Y-a.Y)+a.X {
			in = !in
		}
	}
	return in
}

func (p *Polygon) Bounds() Box { return p.bounds }

func (p *Polygon) Transform(t Transform) Shape {
	pts := applyAll(t, p.vertices)
	return &Polygon{vertices: pts, bounds: boundsOf(pts)}
}

func (p *Polygon) skeleton() skeleton {
	return skeleton{points: p.vertices, edges: p.Edges(), area: p}
}

// LineChain is an open polyline. Its edges are two-sided and it has no
// interior.
type LineChain struct {
	vertices []Vec
	bounds   Box
}

// NewLineChain validates and returns a chain through the given vertices.
func NewLineChain(vertices []Vec) (*LineChain, error) {
	if len(vertices) < 2 {
		return nil, fmt.Errorf("%w: line chain needs at least 2 vertices, got %d", ErrInvalidGeometry, len(vertices))
	}
	for i := 1; i < len(vertices); i++ {
		if _, err := NewSegment(vertices[i-1], vertices[i]); err != nil {
			return nil, fmt.Errorf("line chain edge %d: %w", i-1, err)
		}
	}
	pts := append([]Vec(nil), vertices...)
	return &LineChain{vertices: pts, bounds: boundsOf(pts)}, nil
}

// Vertices returns a copy of the chain vertices.
func (c *LineChain) Vertices() []Vec { return append([]Vec(nil), c.vertices...) }

// Edges returns the chain edges in order.
func (c *LineChain) Edges() []Segment {
	edges := make([]Segment, len(c.vertices)-1)
	for i := range edges {
		edges[i] = Segment{A: c.vertices[i], B: c.vertices[i+1]}
	}
	return edges
}

func (c *LineChain) Kind() Kind { return KindLineChain }

func (c *LineChain) RayCast(s Segment) (float64, bool) { return castEdges(s, c.Edges()) }

func (c *LineChain) Distance(p Vec) float64 { return edgesDistance(p, c.Edges()) }

func (c *LineChain) Contains(p Vec) bool { return c.Distance(p) <= Epsilon }

func (c *LineChain) Bounds() Box { return c.bounds }

func (c *LineChain) Transform(t Transform) Shape {
	pts := applyAll(t, c.vertices)
	return &LineChain{vertices: pts, bounds: boundsOf(pts)}
}

func (c *LineChain) skeleton() skeleton {
	return skeleton{points: c.vertices, edges: c.Edges()}
}

func castEdges(s Segment, edges []Segment) (float64, bool) {
	best, hit := math.Inf(1), false
	for _, e := range edges {
		if t, ok := castSegment(s, e); ok && t < best {
			best, hit = t, true
		}
	}
	return best, hit
}

func edgesDistance(p Vec, edges []Segment) float64 {
	best := math.Inf(1)
	for _, e := range edges {
		best = math.Min(best, e.DistanceTo(p))
	}
	return best
}
