package game

import (
	"chessclick/internal/core"
)

type EventType int

const (
	EventClick EventType = iota + 1
	EventRestart
)

// Event is one user input waiting to be consumed by Tick
type Event struct {
	Type   EventType
	Square core.Square // EventClick only
}

func Click(sq core.Square) Event {
	return Event{Type: EventClick, Square: sq}
}

func Restart() Event {
	return Event{Type: EventRestart}
}

// Notifier receives presentation effects. It is called outside the session
// lock, so it may call back into the session.
type Notifier interface {
	Notify(e core.Effect)
}

type NotifierFunc func(e core.Effect)

func (f NotifierFunc) Notify(e core.Effect) {
	f(e)
}
