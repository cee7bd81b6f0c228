package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned when a detection, pool or filter entry names
// a category the model does not know. It is a configuration error and must
// not be ignored: dropping it would shift one-hot indices.
var ErrUnknownCategory = errors.New("unknown category")

// ErrCategoryMismatch is returned when a category is used in the wrong role,
// e.g. a dynamic category passed to CreateStatic.
var ErrCategoryMismatch = errors.New("category mismatch")

// Category tags every scene object.
type Category int

const (
	Wall Category = iota
	FriendlyGoal
	EnemyGoal
	FriendlyRobot
	EnemyRobot
	PositiveCore
	NegativeCore

	// Skip holds a slot in an observation filter without matching any object.
	Skip
)

var categoryNames = [...]string{
	Wall:          "wall",
	FriendlyGoal:  "friendly_goal",
	EnemyGoal:     "enemy_goal",
	FriendlyRobot: "friendly_robot",
	EnemyRobot:    "enemy_robot",
	PositiveCore:  "positive_energy_core",
	NegativeCore:  "negative_energy_core",
	Skip:          "skip",
}

// Categories lists every real object category in canonical order.
func Categories() []Category {
	return []Category{Wall, FriendlyGoal, EnemyGoal, FriendlyRobot, EnemyRobot, PositiveCore, NegativeCore}
}

func (c Category) String() string {
	if c.Valid() || c == Skip {
		return categoryNames[c]
	}
	return fmt.Sprintf("category(%d)", int(c))
}

// Valid reports whether c is a real object category (Skip is not).
func (c Category) Valid() bool { return c >= Wall && c <= NegativeCore }

// Static reports whether objects of this category are created once from
// configuration and never move.
func (c Category) Static() bool { return c == Wall || c == FriendlyGoal || c == EnemyGoal }

// ParseCategory maps a canonical name to its Category. "skip" and the legacy
// "skip_this_for_upper" both resolve to Skip.
func ParseCategory(name string) (Category, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "skip_this_for_upper" {
		return Skip, nil
	}
	for c, cn := range categoryNames {
		if cn == n {
			return Category(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() && c != Skip {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
