package scene

import (
	"fmt"
	"iter"
	"slices"

	"github.com/banshee-data/arena.observer/internal/arena/geom"
)

// TombstonePosition is where deactivated dynamic objects are parked, far
// outside any playable area.
var TombstonePosition = geom.V(5000, 5000)

// Object is a named, typed, positioned scene entity.
type Object struct {
	Handle   int // index in the model, stable for the session
	ID       ObjectID
	Category Category
	Active   bool
	Pose     Pose

	local geom.Shape
	world geom.Shape
}

// Shape returns the object's shape in scene coordinates.
func (o *Object) Shape() geom.Shape { return o.world }

func (o *Object) place(p Pose) {
	o.Pose = p
	o.world = o.local.Transform(p.Transform())
}

// PoolSpec declares a dynamic object pool and the local-frame shape every
// object in it takes.
type PoolSpec struct {
	Category Category
	Template geom.Shape
}

type pool struct {
	spec  PoolSpec
	slots []*Object // first-appearance order
	byID  map[ObjectID]*Object
}

// Model owns the static and pooled dynamic objects of one session. It is not
// safe for concurrent use; hand other goroutines a Snapshot instead.
type Model struct {
	statics []*Object
	pools   []*pool
	byCat   map[Category]*pool
	handles int
}

// NewModel creates an empty model with one pool per spec. Pools are iterated
// in the order given.
func NewModel(specs ...PoolSpec) (*Model, error) {
	m := &Model{byCat: make(map[Category]*pool, len(specs))}
	for _, s := range specs {
		if !s.Category.Valid() {
			return nil, fmt.Errorf("pool: %w: %v", ErrUnknownCategory, s.Category)
		}
		if s.Category.Static() {
			return nil, fmt.Errorf("pool: %w: %v is a static category", ErrCategoryMismatch, s.Category)
		}
		if s.Template == nil {
			return nil, fmt.Errorf("pool %v: %w: missing template shape", s.Category, geom.ErrInvalidGeometry)
		}
		if _, dup := m.byCat[s.Category]; dup {
			return nil, fmt.Errorf("pool: duplicate category %v", s.Category)
		}
		p := &pool{spec: s, byID: make(map[ObjectID]*Object)}
		m.pools = append(m.pools, p)
		m.byCat[s.Category] = p
	}
	return m, nil
}

// CreateStatic adds an immutable wall or goal. Static objects are always
// active and never move.
func (m *Model) CreateStatic(c Category, shape geom.Shape) (*Object, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownCategory, c)
	}
	if !c.Static() {
		return nil, fmt.Errorf("%w: %v is not a static category", ErrCategoryMismatch, c)
	}
	if shape == nil {
		return nil, fmt.Errorf("static %v: %w: missing shape", c, geom.ErrInvalidGeometry)
	}
	var id ObjectID
	for _, o := range m.statics {
		if o.Category == c {
			id++
		}
	}
	o := &Object{Handle: m.nextHandle(), ID: id, Category: c, Active: true, local: shape, world: shape}
	m.statics = append(m.statics, o)
	return o, nil
}

func (m *Model) nextHandle() int {
	h := m.handles
	m.handles++
	return h
}

// SyncDynamic makes the active set of one pool equal the given detections.
// Known ids are moved, new ids get a new slot (allocated in ascending id
// order), and previously active ids that are absent are parked at the
// tombstone position.
func (m *Model) SyncDynamic(c Category, detections map[ObjectID]Pose) error {
	p, ok := m.byCat[c]
	if !ok {
		return fmt.Errorf("sync: %w: no pool for %v", ErrUnknownCategory, c)
	}

	for _, o := range p.slots {
		if pose, seen := detections[o.ID]; seen {
			o.Active = true
			o.place(pose)
		} else if o.Active {
			o.Active = false
			o.place(Pose{Position: TombstonePosition})
		}
	}

	var fresh []ObjectID
	for id := range detections {
		if _, known := p.byID[id]; !known {
			fresh = append(fresh, id)
		}
	}
	slices.Sort(fresh)
	for _, id := range fresh {
		o := &Object{Handle: m.nextHandle(), ID: id, Category: c, Active: true, local: p.spec.Template}
		o.place(detections[id])
		p.slots = append(p.slots, o)
		p.byID[id] = o
	}
	return nil
}

// HasPool reports whether c has a dynamic pool.
func (m *Model) HasPool(c Category) bool {
	_, ok := m.byCat[c]
	return ok
}

// PoolCategories returns the pooled categories in registration order.
func (m *Model) PoolCategories() []Category {
	out := make([]Category, len(m.pools))
	for i, p := range m.pools {
		out[i] = p.spec.Category
	}
	return out
}

// Lookup returns the dynamic object for id, active or not.
func (m *Model) Lookup(c Category, id ObjectID) (*Object, bool) {
	p, ok := m.byCat[c]
	if !ok {
		return nil, false
	}
	o, ok := p.byID[id]
	return o, ok
}

// PoolSize returns the number of slots ever allocated for c.
func (m *Model) PoolSize(c Category) int {
	if p, ok := m.byCat[c]; ok {
		return len(p.slots)
	}
	return 0
}

// ActiveCount returns the number of active objects of category c.
func (m *Model) ActiveCount(c Category) int {
	n := 0
	for o := range m.Active() {
		if o.Category == c {
			n++
		}
	}
	return n
}

// Active yields every active object: statics in creation order, then each
// pool in registration order, each in first-appearance order.
func (m *Model) Active() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, o := range m.statics {
			if !yield(o) {
				return
			}
		}
		for _, p := range m.pools {
			for _, o := range p.slots {
				if o.Active && !yield(o) {
					return
				}
			}
		}
	}
}

// Snapshot copies the active objects so they can be read elsewhere while the
// model keeps being synchronised.
func (m *Model) Snapshot() Snapshot {
	var s Snapshot
	for o := range m.Active() {
		s.objects = append(s.objects, *o)
	}
	return s
}

// Snapshot is an immutable copy of a model's active objects.
type Snapshot struct {
	objects []Object
}

// Active yields the copied objects in model iteration order.
func (s Snapshot) Active() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for i := range s.objects {
			if !yield(&s.objects[i]) {
				return
			}
		}
	}
}

// Len returns the number of objects in the snapshot.
func (s Snapshot) Len() int { return len(s.objects) }

// IndexedDetections keys untagged detections by their position in the list.
func IndexedDetections(poses []Pose) map[ObjectID]Pose {
	out := make(map[ObjectID]Pose, len(poses))
	for i, p := range poses {
		out[ObjectID(i)] = p
	}
	return out
}
