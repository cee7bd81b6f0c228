package raycast

import (
	"iter"
	"math"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// Scene is the object source a cast runs against. Both *scene.Model and
// scene.Snapshot satisfy it.
type Scene interface {
	Active() iter.Seq[*scene.Object]
}

// Hit is the resolved result of one ray bundle.
type Hit struct {
	Category scene.Category
	Fraction float64 // cast fraction along the ray, before offset and clamping
	Miss     bool
}

// MissHit returns the "nothing hit" result.
func MissHit() Hit { return Hit{Miss: true, Fraction: 1} }

// beats reports whether candidate should replace best: any real hit beats a
// miss, otherwise only a strictly smaller fraction wins. Exact ties keep the
// first object examined.
func (candidate Hit) beats(best Hit) bool {
	if candidate.Miss {
		return false
	}
	return best.Miss || candidate.Fraction < best.Fraction
}

// Caster casts the configured ray bundles from a robot pose.
type Caster struct {
	cfg    Config
	angles []float64
}

// NewCaster validates cfg and precomputes the ray angles.
func NewCaster(cfg Config) (*Caster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Caster{cfg: cfg, angles: RayAngles(cfg.MaxAnglePerSide, cfg.RaysPerSide)}, nil
}

// Config returns the caster configuration.
func (c *Caster) Config() Config { return c.cfg }

// Angles returns a copy of the ray angles in sector order.
func (c *Caster) Angles() []float64 { return append([]float64(nil), c.angles...) }

// Sectors returns the number of ray bundles per cast.
func (c *Caster) Sectors() int { return len(c.angles) }

// Bundle returns the centre, left and right sub-rays for the relative angle
// theta. The absolute angle adds π/2 so that a zero heading points along +Y.
func (c *Caster) Bundle(pose scene.Pose, theta float64) [3]geom.Segment {
	abs := pose.Heading + theta + math.Pi/2
	width := c.cfg.RayWidth
	if theta == 0 {
		width = c.cfg.FrontRayWidth
	}
	centre := geom.Ray(pose.Position, abs, c.cfg.RayLength)
	return [3]geom.Segment{
		centre,
		centre.Offset(geom.FromAngle(abs-math.Pi/2, width)),
		centre.Offset(geom.FromAngle(abs+math.Pi/2, width)),
	}
}

// CastSector resolves one bundle: the nearest hit over all three sub-rays
// decides both category and distance.
func (c *Caster) CastSector(sc Scene, pose scene.Pose, theta float64, f Filter) Hit {
	best := MissHit()
	for _, ray := range c.Bundle(pose, theta) {
		if h := castRay(sc, ray, f); h.beats(best) {
			best = h
		}
	}
	return best
}

// Cast resolves every bundle in sector order.
func (c *Caster) Cast(sc Scene, pose scene.Pose, f Filter) []Hit {
	hits := make([]Hit, len(c.angles))
	for i, theta := range c.angles {
		hits[i] = c.CastSector(sc, pose, theta, f)
	}
	return hits
}

// Observe casts and encodes in one step.
func (c *Caster) Observe(sc Scene, pose scene.Pose, f Filter) []float32 {
	return EncodeHits(c.Cast(sc, pose, f), f, c.cfg.HitOffset)
}

func castRay(sc Scene, ray geom.Segment, f Filter) Hit {
	best := MissHit()
	rayBounds := ray.Bounds()
	for o := range sc.Active() {
		if !f.Tracks(o.Category) {
			continue
		}
		shape := o.Shape()
		if !geom.Overlaps(rayBounds, shape.Bounds()) {
			continue
		}
		frac, ok := shape.RayCast(ray)
		if !ok {
			continue
		}
		if h := (Hit{Category: o.Category, Fraction: frac}); h.beats(best) {
			best = h
		}
	}
	return best
}

// EncodeHits lays out one feature group per hit: one-hot slots, miss flag,
// normalised distance. A hit's distance is its fraction minus offset, clamped
// to [0, 1]; a miss sets the flag and distance 1. A hit on a category the
// filter does not track encodes as a miss.
func EncodeHits(hits []Hit, f Filter, offset float64) []float32 {
	width := f.Width()
	out := make([]float32, len(hits)*width)
	for i, h := range hits {
		group := out[i*width : (i+1)*width]
		slot, tracked := f.Index(h.Category)
		if h.Miss || !tracked {
			group[width-2] = 1
			group[width-1] = 1
			continue
		}
		group[slot] = 1
		group[width-1] = float32(math.Max(0, math.Min(1, h.Fraction-offset)))
	}
	return out
}
