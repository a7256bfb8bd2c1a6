// FILE: internal/board/board.go
package board

import (
	"fmt"

	"chessclick/internal/core"

	"github.com/notnil/chess"
)

const (
	StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
)

// Model owns the single live position. It is the only authority on legality.
type Model struct {
	game       *chess.Game
	initialFEN string
	moves      []core.Move
	terminal   core.TerminalState
	generation uint64
}

// New creates a model at the standard starting position
func New() *Model {
	m := &Model{}
	m.Reset()
	return m
}

// FromFEN creates a model at an arbitrary position. Reset still returns to
// the standard starting position.
func FromFEN(fen string) (*Model, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("invalid FEN: %w", err)
	}
	m := &Model{
		game:       chess.NewGame(opt),
		initialFEN: fen,
	}
	m.terminal = m.evaluate()
	return m, nil
}

// Reset restores the standard starting position and clears any terminal condition
func (m *Model) Reset() {
	m.game = chess.NewGame()
	m.initialFEN = StartingFEN
	m.moves = nil
	m.terminal = core.TerminalState{Kind: core.Ongoing}
	m.generation++
}

// Generation changes on every reset
func (m *Model) Generation() uint64 {
	return m.generation
}

// Ply is the number of moves applied since the last reset
func (m *Model) Ply() int {
	return len(m.moves)
}

func (m *Model) SideToMove() core.Color {
	return fromChessColor(m.game.Position().Turn())
}

func (m *Model) PieceAt(sq core.Square) core.Piece {
	if !sq.Valid() {
		return core.Piece{}
	}
	return fromChessPiece(m.game.Position().Board().Piece(toChessSquare(sq)))
}

func (m *Model) IsOwnPiece(sq core.Square, c core.Color) bool {
	p := m.PieceAt(sq)
	return !p.Empty() && p.Color == c
}

// LegalMovesFrom returns every legal move with origin sq, empty for an empty
// square or a piece of the side not to move
func (m *Model) LegalMovesFrom(sq core.Square) []core.Move {
	if !sq.Valid() {
		return nil
	}
	from := toChessSquare(sq)
	var moves []core.Move
	for _, mv := range m.game.ValidMoves() {
		if mv.S1() == from {
			moves = append(moves, fromChessMove(mv))
		}
	}
	return moves
}

// LegalMoves returns the full legal-move set of the current position
func (m *Model) LegalMoves() []core.Move {
	valid := m.game.ValidMoves()
	moves := make([]core.Move, 0, len(valid))
	for _, mv := range valid {
		moves = append(moves, fromChessMove(mv))
	}
	return moves
}

// ApplyMove advances the position one ply if move is a member of the legal-move set
func (m *Model) ApplyMove(move core.Move) error {
	if m.terminal.Over() {
		return fmt.Errorf("%w: %s", core.ErrGameOver, m.terminal)
	}
	legal := m.find(move)
	if legal == nil {
		return fmt.Errorf("%w: %s", core.ErrIllegalMove, move)
	}
	// A member of ValidMoves can only be refused by a broken rules engine
	if err := m.game.Move(legal); err != nil {
		panic(fmt.Sprintf("board: rules engine refused its own legal move %s: %v", move, err))
	}
	m.moves = append(m.moves, move)
	m.terminal = m.evaluate()
	return nil
}

func (m *Model) find(move core.Move) *chess.Move {
	for _, mv := range m.game.ValidMoves() {
		if fromChessMove(mv) == move {
			return mv
		}
	}
	return nil
}

// RequiresPromotion reports whether from-to is legal only with a promotion piece
func (m *Model) RequiresPromotion(from, to core.Square) bool {
	for _, mv := range m.LegalMovesFrom(from) {
		if mv.To == to && mv.Promotion != core.NoKind {
			return true
		}
	}
	return false
}

// TerminalState is recomputed after every applied move
func (m *Model) TerminalState() core.TerminalState {
	return m.terminal
}

// InCheck reports whether the side to move is in check. Before any move the
// position itself is inspected, so a FEN start can already be in check.
func (m *Model) InCheck() bool {
	moves := m.game.Moves()
	if len(moves) == 0 {
		return kingAttacked(m.Board(), m.SideToMove())
	}
	return moves[len(moves)-1].HasTag(chess.Check)
}

// evaluate checks checkmate before stalemate, anything else the rules engine
// ends the game for is an other draw
func (m *Model) evaluate() core.TerminalState {
	pos := m.game.Position()
	switch pos.Status() {
	case chess.Checkmate:
		return core.TerminalState{
			Kind:   core.Checkmate,
			Winner: core.OppositeColor(fromChessColor(pos.Turn())),
		}
	case chess.Stalemate:
		return core.TerminalState{Kind: core.Stalemate}
	}
	if m.game.Outcome() != chess.NoOutcome {
		return core.TerminalState{Kind: core.OtherDraw, Reason: m.game.Method().String()}
	}
	return core.TerminalState{Kind: core.Ongoing}
}

// FEN returns the current position
func (m *Model) FEN() string {
	return m.game.Position().String()
}

// InitialFEN is the position the move list starts from
func (m *Model) InitialFEN() string {
	return m.initialFEN
}

// Moves returns a copy of the moves applied since the last reset
func (m *Model) Moves() []core.Move {
	out := make([]core.Move, len(m.moves))
	copy(out, m.moves)
	return out
}

// LastMove returns the most recent move, if any
func (m *Model) LastMove() (core.Move, bool) {
	if len(m.moves) == 0 {
		return core.Move{}, false
	}
	return m.moves[len(m.moves)-1], true
}

// Board copies the piece placement so callers never alias the position
func (m *Model) Board() core.Board {
	var b core.Board
	cb := m.game.Position().Board()
	for i := 0; i < 64; i++ {
		b[i] = fromChessPiece(cb.Piece(chess.Square(i)))
	}
	return b
}
