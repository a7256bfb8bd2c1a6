// Package selection maps board clicks to moves for the human side.
package selection

import (
	"errors"
	"log"

	"chessclick/internal/core"
)

// Board is the part of the board model the controller needs
type Board interface {
	IsOwnPiece(sq core.Square, c core.Color) bool
	LegalMovesFrom(sq core.Square) []core.Move
	RequiresPromotion(from, to core.Square) bool
	ApplyMove(m core.Move) error
	SideToMove() core.Color
	TerminalState() core.TerminalState
	Generation() uint64
	Ply() int
}

// PromotionFunc chooses the promotion piece for a move that needs one
type PromotionFunc func(from, to core.Square) core.PieceKind

// AlwaysQueen is the default promotion choice
func AlwaysQueen(from, to core.Square) core.PieceKind {
	return core.Queen
}

// Outcome reports what a click did
type Outcome int

const (
	Ignored Outcome = iota
	Selected
	Applied
	Deselected
)

func (o Outcome) String() string {
	switch o {
	case Selected:
		return "selected"
	case Applied:
		return "applied"
	case Deselected:
		return "deselected"
	default:
		return "ignored"
	}
}

// Controller is the two-state machine over {Empty, Pending(square)}
type Controller struct {
	board   Board
	human   core.Color
	promote PromotionFunc
	state   core.SelectionState
	// Position stamp taken when the selection was made
	generation uint64
	ply        int
}

func New(b Board, human core.Color, promote PromotionFunc) *Controller {
	if promote == nil {
		promote = AlwaysQueen
	}
	return &Controller{
		board:   b,
		human:   human,
		promote: promote,
	}
}

// Click consumes one click on sq. The move, when one was applied, is returned
// with the Applied outcome.
func (c *Controller) Click(sq core.Square) (Outcome, core.Move, error) {
	if !c.active() {
		c.Clear()
		return Ignored, core.Move{}, nil
	}

	from, pending := c.pending()
	if !pending {
		c.Clear()
		if c.board.IsOwnPiece(sq, c.human) {
			c.state = core.PendingSelection(sq)
			c.generation = c.board.Generation()
			c.ply = c.board.Ply()
			return Selected, core.Move{}, nil
		}
		return Ignored, core.Move{}, nil
	}

	move := core.Move{From: from, To: sq}
	if c.board.RequiresPromotion(from, sq) {
		move.Promotion = c.promote(from, sq)
	}

	// Success or not, a completed attempt always clears the selection
	c.Clear()
	if err := c.board.ApplyMove(move); err != nil {
		if errors.Is(err, core.ErrIllegalMove) {
			log.Printf("selection: rejected %s", move)
			return Deselected, core.Move{}, nil
		}
		return Deselected, core.Move{}, err
	}
	return Applied, move, nil
}

// Clear forces the controller back to Empty
func (c *Controller) Clear() {
	c.state = core.EmptySelection()
}

// State never reports a selection made against an earlier position
func (c *Controller) State() core.SelectionState {
	if sq, ok := c.pending(); ok {
		return core.PendingSelection(sq)
	}
	return core.EmptySelection()
}

// HighlightSquares returns the destinations of the pending piece, each once
func (c *Controller) HighlightSquares() []core.Square {
	from, pending := c.pending()
	if !pending {
		return nil
	}
	seen := make(map[core.Square]bool)
	var out []core.Square
	for _, m := range c.board.LegalMovesFrom(from) {
		if !seen[m.To] {
			seen[m.To] = true
			out = append(out, m.To)
		}
	}
	return out
}

// active is true only on the human's turn of an ongoing game
func (c *Controller) active() bool {
	return !c.board.TerminalState().Over() && c.board.SideToMove() == c.human
}

// pending returns the selected square unless the position moved on since
func (c *Controller) pending() (core.Square, bool) {
	sq, ok := c.state.Pending()
	if !ok {
		return core.Square{}, false
	}
	if c.generation != c.board.Generation() || c.ply != c.board.Ply() || !c.active() {
		return core.Square{}, false
	}
	return sq, true
}
