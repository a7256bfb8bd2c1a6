// Package app wires a configured engine and session for the binaries.
package app

import (
	"context"
	"fmt"
	"log"

	"chessclick/internal/board"
	"chessclick/internal/config"
	"chessclick/internal/engine"
	"chessclick/internal/game"
)

// Session is a running game with its engine process
type Session struct {
	Game   *game.Game
	engine *engine.UCI
}

// Start launches the engine and opens a session on the standard position.
// The engine handshake is bounded by ctx.
func Start(ctx context.Context, cfg config.Config, n game.Notifier) (*Session, error) {
	eng, err := engine.New(ctx, cfg.EngineOptions())
	if err != nil {
		return nil, fmt.Errorf("start engine %q: %w", cfg.EnginePath, err)
	}

	g := game.New(board.New(), eng, game.Options{
		HumanColor: cfg.HumanColor(),
		ThinkTime:  cfg.ThinkDuration(),
		Notifier:   n,
	})
	log.Printf("session %s: engine %s, think %v", g.ID(), cfg.EnginePath, cfg.ThinkDuration())
	return &Session{Game: g, engine: eng}, nil
}

// Close stops the scheduler before the engine it drives
func (s *Session) Close() error {
	if err := s.Game.Close(); err != nil {
		log.Printf("Warning: %v", err)
	}
	if err := s.engine.Close(); err != nil {
		return fmt.Errorf("close engine: %w", err)
	}
	return nil
}
