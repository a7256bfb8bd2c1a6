// FILE: internal/core/player.go
package core

type PlayerType int

const (
	PlayerHuman PlayerType = iota + 1
	PlayerEngine
)

func (t PlayerType) String() string {
	switch t {
	case PlayerHuman:
		return "human"
	case PlayerEngine:
		return "engine"
	default:
		return "unknown"
	}
}

// Assignment maps the human to one color and the engine to the other,
// fixed for the lifetime of a game session
type Assignment struct {
	human Color
}

func NewAssignment(human Color) Assignment {
	if human != ColorBlack {
		human = ColorWhite
	}
	return Assignment{human: human}
}

func (a Assignment) Human() Color {
	return a.human
}

func (a Assignment) Engine() Color {
	return OppositeColor(a.human)
}

// PlayerFor returns who controls the given color
func (a Assignment) PlayerFor(c Color) PlayerType {
	if c == a.human {
		return PlayerHuman
	}
	return PlayerEngine
}

// SelectionState is either empty or pending on a square
type SelectionState struct {
	pending bool
	square  Square
}

func EmptySelection() SelectionState {
	return SelectionState{}
}

func PendingSelection(sq Square) SelectionState {
	return SelectionState{pending: true, square: sq}
}

func (s SelectionState) Pending() (Square, bool) {
	return s.square, s.pending
}

func (s SelectionState) IsEmpty() bool {
	return !s.pending
}

func (s SelectionState) String() string {
	if !s.pending {
		return "empty"
	}
	return "pending(" + s.square.String() + ")"
}
