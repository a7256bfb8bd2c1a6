// Package enginetest provides an in-memory move-generating engine for tests.
package enginetest

import (
	"context"
	"sync"
	"time"

	"chessclick/internal/board"
	"chessclick/internal/engine"
)

// Scripted answers searches from a queue of UCI moves. When the queue is
// empty it plays the first legal move of the requested position.
type Scripted struct {
	mu       sync.Mutex
	replies  []string
	requests []engine.Request
	gate     chan struct{}
	err      error
}

func New(replies ...string) *Scripted {
	return &Scripted{replies: replies}
}

// Hold makes searches block until Release or until their context is done
func (s *Scripted) Hold() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
}

func (s *Scripted) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gate != nil {
		close(s.gate)
		s.gate = nil
	}
}

// Fail makes every later search return err
func (s *Scripted) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Scripted) Search(ctx context.Context, req engine.Request) (*engine.SearchResult, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	gate := s.gate
	s.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if len(s.replies) > 0 {
		move := s.replies[0]
		s.replies = s.replies[1:]
		return &engine.SearchResult{BestMove: move, Depth: 1}, nil
	}
	return &engine.SearchResult{BestMove: firstLegal(req), Depth: 1}, nil
}

func firstLegal(req engine.Request) string {
	fen := req.InitialFEN
	if fen == "" {
		fen = board.StartingFEN
	}
	b, err := board.FromFEN(fen)
	if err != nil {
		return ""
	}
	for _, m := range req.Moves {
		if err := b.ApplyMove(m); err != nil {
			return ""
		}
	}
	legal := b.LegalMoves()
	if len(legal) == 0 {
		return "(none)"
	}
	return legal[0].String()
}

// Calls returns how many searches were requested
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *Scripted) Requests() []engine.Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// WaitCalls reports whether n searches were requested within timeout
func (s *Scripted) WaitCalls(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for s.Calls() < n {
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(time.Millisecond)
	}
	return true
}
