// FILE: internal/game/game.go
package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"chessclick/internal/board"
	"chessclick/internal/core"
	"chessclick/internal/engine"
	"chessclick/internal/scheduler"
	"chessclick/internal/selection"

	"github.com/google/uuid"
)

// EventBuffer is the number of inputs that can wait between two ticks
const EventBuffer = 64

// Options configure a session
type Options struct {
	HumanColor core.Color
	ThinkTime  time.Duration
	Promote    selection.PromotionFunc // nil always promotes to a queen
	Notifier   Notifier
}

// Snapshot is a read-only copy of everything a front-end draws
type Snapshot struct {
	ID         string
	Board      core.Board
	Selection  core.SelectionState
	Highlights []core.Square
	Terminal   core.TerminalState
	SideToMove core.Color
	Human      core.Color
	LastMove   *core.Move
	InCheck    bool
	Thinking   bool
	Moves      []core.Move
	Eval       *engine.SearchResult
}

// Game is one interactive session: a board, the human's click controller and
// the engine scheduler, advanced one Tick at a time by the front-end loop
type Game struct {
	id        string
	mu        sync.Mutex
	board     *board.Model
	assign    core.Assignment
	selection *selection.Controller
	scheduler *scheduler.Scheduler
	events    chan Event
	notifier  Notifier
	terminal  core.TerminalState // Last evaluated terminal state
	queued    []core.Effect      // Effects produced outside Tick
	failed    error
}

// New starts a session on b. The engine is owned by the caller.
func New(b *board.Model, eng scheduler.Engine, opts Options) *Game {
	assign := core.NewAssignment(opts.HumanColor)
	g := &Game{
		id:        uuid.New().String(),
		board:     b,
		assign:    assign,
		selection: selection.New(b, assign.Human(), opts.Promote),
		scheduler: scheduler.New(b, eng, assign.Engine(), opts.ThinkTime),
		events:    make(chan Event, EventBuffer),
		notifier:  opts.Notifier,
		terminal:  b.TerminalState(),
		queued:    []core.Effect{core.EffectStart},
	}
	log.Printf("game %s: human plays %s", g.id, assign.Human())
	return g
}

func (g *Game) ID() string {
	return g.id
}

// Submit queues an input for the next Tick. It never blocks; inputs arriving
// faster than the loop consumes them are dropped.
func (g *Game) Submit(ev Event) bool {
	select {
	case g.events <- ev:
		return true
	default:
		log.Printf("game %s: input queue full, dropping event", g.id)
		return false
	}
}

// Tick consumes queued inputs, advances the engine without blocking and
// evaluates the game state. A non-nil error is fatal and is returned by
// every later Tick.
func (g *Game) Tick(ctx context.Context) error {
	g.mu.Lock()
	fx, err := g.tick(ctx)
	g.mu.Unlock()
	g.emit(fx)
	return err
}

// Settle is Tick followed by waiting for the engine's reply when it is the
// engine's turn. Used by front-ends without a frame loop.
func (g *Game) Settle(ctx context.Context) error {
	g.mu.Lock()
	fx, err := g.tick(ctx)
	if err == nil {
		var move *core.Move
		move, err = g.scheduler.Await(ctx)
		fx, err = g.engineMoved(ctx, move, err, fx)
	}
	g.mu.Unlock()
	g.emit(fx)
	return err
}

func (g *Game) tick(ctx context.Context) ([]core.Effect, error) {
	fx := g.queued
	g.queued = nil
	if g.failed != nil {
		return fx, g.failed
	}

	for {
		var ev Event
		select {
		case ev = <-g.events:
		default:
			move, err := g.scheduler.Step(ctx)
			return g.engineMoved(ctx, move, err, fx)
		}

		var err error
		if fx, err = g.handle(ev, fx); err != nil {
			return fx, g.fail(err)
		}
	}
}

func (g *Game) handle(ev Event, fx []core.Effect) ([]core.Effect, error) {
	switch ev.Type {
	case EventRestart:
		g.reset()
		return append(fx, core.EffectStart), nil
	case EventClick:
		outcome, move, err := g.selection.Click(ev.Square)
		if err != nil {
			return fx, err
		}
		switch {
		case outcome == selection.Applied:
			fx = g.moved(core.PlayerHuman, move, fx)
		case outcome == selection.Ignored && g.scheduler.Busy():
			log.Printf("game %s: click on %s ignored, engine is thinking", g.id, ev.Square)
		}
		return fx, nil
	default:
		log.Printf("game %s: unknown event type %d", g.id, ev.Type)
		return fx, nil
	}
}

func (g *Game) engineMoved(ctx context.Context, move *core.Move, err error, fx []core.Effect) ([]core.Effect, error) {
	if err != nil {
		if ctx.Err() != nil {
			// Shutting down, not an engine failure
			return fx, err
		}
		return fx, g.fail(err)
	}
	if move != nil {
		fx = g.moved(core.PlayerEngine, *move, fx)
	}
	return fx, nil
}

// moved records effects for an applied move and evaluates the result
func (g *Game) moved(by core.PlayerType, m core.Move, fx []core.Effect) []core.Effect {
	log.Printf("game %s: %s played %s", g.id, by, m)
	g.selection.Clear()
	fx = append(fx, core.EffectMove)

	ts := g.board.TerminalState()
	if g.board.InCheck() && !ts.Over() {
		fx = append(fx, core.EffectCheck)
	}
	if ts.Over() && !g.terminal.Over() {
		g.scheduler.Cancel()
		log.Printf("game %s: %s", g.id, ts)
		if ts.Kind == core.Stalemate {
			fx = append(fx, core.EffectStalemate)
		} else {
			fx = append(fx, core.EffectGameOver)
		}
	}
	g.terminal = ts
	return fx
}

func (g *Game) fail(err error) error {
	if g.failed == nil {
		g.failed = err
		log.Printf("game %s: fatal: %v", g.id, err)
	}
	return g.failed
}

func (g *Game) reset() {
	g.scheduler.Reset()
	g.board.Reset()
	g.selection.Clear()
	g.terminal = g.board.TerminalState()
	log.Printf("game %s: restarted", g.id)
}

// Reset starts a new game immediately, abandoning any engine search
func (g *Game) Reset() error {
	g.mu.Lock()
	if g.failed != nil {
		err := g.failed
		g.mu.Unlock()
		return err
	}
	g.reset()
	g.mu.Unlock()
	g.emit([]core.Effect{core.EffectStart})
	return nil
}

func (g *Game) IsGameOver() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.terminal.Over()
}

// Err returns the fatal error, if any
func (g *Game) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.failed
}

func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		ID:         g.id,
		Board:      g.board.Board(),
		Selection:  g.selection.State(),
		Highlights: g.selection.HighlightSquares(),
		Terminal:   g.terminal,
		SideToMove: g.board.SideToMove(),
		Human:      g.assign.Human(),
		InCheck:    g.board.InCheck(),
		Thinking:   g.scheduler.Busy(),
		Moves:      g.board.Moves(),
	}
	if m, ok := g.board.LastMove(); ok {
		snap.LastMove = &m
	}
	if last := g.scheduler.LastSearch(); last != nil {
		eval := *last
		snap.Eval = &eval
	}
	return snap
}

// Close stops the engine worker. The engine process itself is closed by its owner.
func (g *Game) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.scheduler.Close(); err != nil {
		return fmt.Errorf("close scheduler: %w", err)
	}
	return nil
}

func (g *Game) emit(fx []core.Effect) {
	if g.notifier == nil {
		return
	}
	for _, e := range fx {
		g.notifier.Notify(e)
	}
}

// IsFatal reports whether err ends the session
func IsFatal(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
