// Package scheduler decides when the engine moves and applies its replies.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"chessclick/internal/core"
	"chessclick/internal/engine"
)

const (
	DefaultThinkTime = time.Second
	shutdownTimeout  = 5 * time.Second
)

// Engine is the move-generating engine capability
type Engine interface {
	Search(ctx context.Context, req engine.Request) (*engine.SearchResult, error)
}

// Board is the part of the board model the scheduler needs
type Board interface {
	SideToMove() core.Color
	TerminalState() core.TerminalState
	ApplyMove(m core.Move) error
	InitialFEN() string
	Moves() []core.Move
	Generation() uint64
	Ply() int
}

type search struct {
	cancel     context.CancelFunc
	done       <-chan EngineResult
	generation uint64
	ply        int
}

// Scheduler holds no turn state of its own: whose turn it is always comes
// from the board's side to move
type Scheduler struct {
	board     Board
	color     core.Color // The engine's color
	thinkTime time.Duration
	queue     *EngineQueue
	pending   *search
	fresh     bool
	last      *engine.SearchResult
}

func New(b Board, eng Engine, engineColor core.Color, thinkTime time.Duration) *Scheduler {
	if thinkTime <= 0 {
		thinkTime = DefaultThinkTime
	}
	return &Scheduler{
		board:     b,
		color:     engineColor,
		thinkTime: thinkTime,
		queue:     NewEngineQueue(eng, 1),
		fresh:     true,
	}
}

// engineTurn is true when the game is ongoing and the engine's color is to move
func (s *Scheduler) engineTurn() bool {
	return !s.board.TerminalState().Over() && s.board.SideToMove() == s.color
}

// Busy reports whether a search is in flight
func (s *Scheduler) Busy() bool {
	return s.pending != nil
}

// LastSearch is the most recent applied engine result
func (s *Scheduler) LastSearch() *engine.SearchResult {
	return s.last
}

// Step collects a finished search or dispatches a new one. It never blocks.
// ctx is the parent of the search and must outlive it.
func (s *Scheduler) Step(ctx context.Context) (*core.Move, error) {
	if s.pending != nil {
		select {
		case res := <-s.pending.done:
			return s.finish(res)
		default:
			return nil, nil
		}
	}
	if !s.engineTurn() {
		return nil, nil
	}
	return nil, s.dispatch(ctx)
}

// Await dispatches if needed and blocks until the engine's move is applied
func (s *Scheduler) Await(ctx context.Context) (*core.Move, error) {
	if s.pending == nil {
		if !s.engineTurn() {
			return nil, nil
		}
		if err := s.dispatch(ctx); err != nil {
			return nil, err
		}
	}
	select {
	case res := <-s.pending.done:
		return s.finish(res)
	case <-ctx.Done():
		s.Cancel()
		return nil, ctx.Err()
	}
}

func (s *Scheduler) dispatch(ctx context.Context) error {
	searchCtx, cancel := context.WithCancel(ctx)
	resp := make(chan EngineResult, 1)

	task := EngineTask{
		Ctx: searchCtx,
		Request: engine.Request{
			InitialFEN: s.board.InitialFEN(),
			Moves:      s.board.Moves(),
			NewGame:    s.fresh,
			MoveTime:   s.thinkTime,
		},
		Generation: s.board.Generation(),
		Ply:        s.board.Ply(),
		Response:   resp,
	}
	if err := s.queue.Submit(task); err != nil {
		cancel()
		return fmt.Errorf("%w: %v", core.ErrEngineBusy, err)
	}

	s.pending = &search{
		cancel:     cancel,
		done:       resp,
		generation: task.Generation,
		ply:        task.Ply,
	}
	s.fresh = false
	return nil
}

// finish applies a search result. The engine is trusted to return a legal
// move, anything else is a protocol violation.
func (s *Scheduler) finish(res EngineResult) (*core.Move, error) {
	s.pending.cancel()
	s.pending = nil

	if res.Generation != s.board.Generation() || res.Ply != s.board.Ply() {
		log.Printf("scheduler: discarding engine result for a stale position")
		return nil, nil
	}

	if res.Error != nil {
		if errors.Is(res.Error, context.Canceled) || errors.Is(res.Error, core.ErrEngineProtocol) {
			return nil, fmt.Errorf("engine search: %w", res.Error)
		}
		return nil, fmt.Errorf("%w: %v", core.ErrEngineProtocol, res.Error)
	}

	move, err := core.ParseMove(res.Search.BestMove)
	if err != nil {
		return nil, fmt.Errorf("%w: engine returned %q", core.ErrEngineProtocol, res.Search.BestMove)
	}
	if err := s.board.ApplyMove(move); err != nil {
		return nil, fmt.Errorf("%w: engine move %s: %v", core.ErrEngineProtocol, move, err)
	}

	s.last = res.Search
	return &move, nil
}

// Cancel aborts the in-flight search and discards its eventual result
func (s *Scheduler) Cancel() {
	if s.pending == nil {
		return
	}
	s.pending.cancel()
	s.pending = nil
	log.Printf("scheduler: engine search cancelled")
}

// Reset cancels any search; the next one starts a new engine game
func (s *Scheduler) Reset() {
	s.Cancel()
	s.fresh = true
	s.last = nil
}

// Close cancels any search and stops the worker
func (s *Scheduler) Close() error {
	s.Cancel()
	return s.queue.Shutdown(shutdownTimeout)
}
