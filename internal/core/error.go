package core

import "errors"

var (
	// ErrIllegalMove is returned when a move is not in the legal-move set
	ErrIllegalMove = errors.New("illegal move")
	// ErrEngineProtocol covers every move-generating engine failure, none are recoverable
	ErrEngineProtocol = errors.New("engine protocol violation")
	ErrGameOver       = errors.New("game is over")
	ErrEngineBusy     = errors.New("engine queue unavailable")
)
