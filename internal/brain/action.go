package brain

import "fmt"

// Action is a robot movement command chosen by the policy.
type Action int32

const (
	Stop Action = iota
	Forward
	Backward
	TurnClockwise
	TurnAntiClockwise
	ForwardRight
	ForwardLeft
)

// NumActions is the size of the action space.
const NumActions = 7

var actionNames = [NumActions]string{
	"stop", "forward", "backward", "turn_clockwise", "turn_anticlockwise", "forward_right", "forward_left",
}

func (a Action) String() string {
	if a.Valid() {
		return actionNames[a]
	}
	return fmt.Sprintf("action(%d)", int32(a))
}

// Valid reports whether a is a known action code.
func (a Action) Valid() bool { return a >= Stop && a < NumActions }
