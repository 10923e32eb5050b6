package mapper

import "fmt"

// State is a phase of a mapping run.
//
//	Idle -> Disconnecting(0..n-1) -> Waiting -> Connecting -> Done | Aborted
type State int

const (
	Idle State = iota
	Disconnecting
	Waiting
	Connecting
	Done
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Disconnecting:
		return "disconnecting"
	case Waiting:
		return "waiting"
	case Connecting:
		return "connecting"
	case Done:
		return "done"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == Done || s == Aborted
}

// Transition is emitted on every state change. Index is the command index
// within the current phase, or -1 when the phase has no command.
type Transition struct {
	RunID string
	Key   string
	From  State
	To    State
	Index int
}
