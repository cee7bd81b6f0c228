package raycast

import (
	"fmt"
	"strings"

	"github.com/banshee-data/arena.observer/internal/arena/scene"
)

// Filter is the ordered list of tracked categories for one cast. Each entry
// owns a one-hot slot; scene.Skip holds a slot without matching anything.
// Categories absent from the filter are transparent to the rays.
type Filter struct {
	slots []scene.Category
	index map[scene.Category]int
}

// NewFilter validates the slot list. Unknown categories and repeated real
// categories are rejected.
func NewFilter(slots ...scene.Category) (Filter, error) {
	f := Filter{slots: append([]scene.Category(nil), slots...), index: make(map[scene.Category]int, len(slots))}
	for i, c := range slots {
		if c == scene.Skip {
			continue
		}
		if !c.Valid() {
			return Filter{}, fmt.Errorf("filter slot %d: %w: %v", i, scene.ErrUnknownCategory, c)
		}
		if _, dup := f.index[c]; dup {
			return Filter{}, fmt.Errorf("filter slot %d: duplicate category %v", i, c)
		}
		f.index[c] = i
	}
	return f, nil
}

// ParseFilter builds a filter from category names.
func ParseFilter(names []string) (Filter, error) {
	slots := make([]scene.Category, len(names))
	for i, n := range names {
		c, err := scene.ParseCategory(n)
		if err != nil {
			return Filter{}, fmt.Errorf("filter slot %d: %w", i, err)
		}
		slots[i] = c
	}
	return NewFilter(slots...)
}

// MustFilter is NewFilter for package-level defaults; it panics on error.
func MustFilter(slots ...scene.Category) Filter {
	f, err := NewFilter(slots...)
	if err != nil {
		panic(err)
	}
	return f
}

// Len returns the number of one-hot slots.
func (f Filter) Len() int { return len(f.slots) }

// Width returns the feature group width: slots plus miss flag and distance.
func (f Filter) Width() int { return len(f.slots) + 2 }

// Slots returns a copy of the slot list.
func (f Filter) Slots() []scene.Category { return append([]scene.Category(nil), f.slots...) }

// Index returns the one-hot slot of c.
func (f Filter) Index(c scene.Category) (int, bool) {
	i, ok := f.index[c]
	return i, ok
}

// Tracks reports whether rays can hit objects of category c.
func (f Filter) Tracks(c scene.Category) bool {
	_, ok := f.index[c]
	return ok
}

func (f Filter) String() string {
	names := make([]string, len(f.slots))
	for i, c := range f.slots {
		names[i] = c.String()
	}
	return strings.Join(names, "|")
}
