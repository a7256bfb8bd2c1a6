// Package view holds the presentation geometry shared by the front-ends.
package view

import (
	"fmt"

	"chessclick/internal/core"
	"chessclick/internal/game"
)

// Geometry lays an 8x8 grid over a drawing surface. Row 0 is rank 8.
type Geometry struct {
	Left, Top        int
	SquareW, SquareH int
}

// Square returns a geometry of size x size squares anchored at the origin
func Square(size int) Geometry {
	return Geometry{SquareW: size, SquareH: size}
}

func (g Geometry) Width() int  { return 8 * g.SquareW }
func (g Geometry) Height() int { return 8 * g.SquareH }

// SquareAt maps a pointer position to a square. Displayed row R, column C is
// file C, rank 7-R.
func (g Geometry) SquareAt(x, y int) (core.Square, bool) {
	if g.SquareW <= 0 || g.SquareH <= 0 {
		return core.Square{}, false
	}
	x -= g.Left
	y -= g.Top
	if x < 0 || y < 0 {
		return core.Square{}, false
	}
	col, row := x/g.SquareW, y/g.SquareH
	if col > 7 || row > 7 {
		return core.Square{}, false
	}
	return core.NewSquare(col, 7-row), true
}

// Origin is the top-left corner of sq
func (g Geometry) Origin(sq core.Square) (x, y int) {
	return g.Left + sq.File*g.SquareW, g.Top + (7-sq.Rank)*g.SquareH
}

// Center is the middle of sq
func (g Geometry) Center(sq core.Square) (x, y int) {
	x, y = g.Origin(sq)
	return x + g.SquareW/2, y + g.SquareH/2
}

// IsLight reports the color of the square drawn at sq
func IsLight(sq core.Square) bool {
	row := 7 - sq.Rank
	return (row+sq.File)%2 == 0
}

type Button struct {
	X, Y, W, H int
	Label      string
}

// Contains is the hit-test for a pointer position
func (b Button) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// RestartButton sits centred under the game over headline of a w x h surface
func RestartButton(w, h int) Button {
	return Button{X: w/2 - 50, Y: h/2 + 50, W: 100, H: 50, Label: "Restart"}
}

// Headline is the game over message for a finished game
func Headline(t core.TerminalState) string {
	switch t.Kind {
	case core.Checkmate:
		return fmt.Sprintf("Checkmate! %s wins!", t.Winner)
	case core.Stalemate:
		return "Draw by Stalemate!"
	default:
		return "Game Over"
	}
}

// Status is a one-line summary of a session for text front-ends
func Status(s game.Snapshot) string {
	if s.Terminal.Over() {
		return Headline(s.Terminal)
	}
	var line string
	switch {
	case s.Thinking:
		line = fmt.Sprintf("%s (engine) is thinking...", s.SideToMove)
	case s.SideToMove == s.Human:
		line = fmt.Sprintf("%s to move", s.SideToMove)
	default:
		line = fmt.Sprintf("%s (engine) to move", s.SideToMove)
	}
	if s.InCheck {
		line += ", check"
	}
	if s.LastMove != nil {
		line += fmt.Sprintf(" | last %s", s.LastMove)
	}
	if s.Eval != nil {
		line += " | " + Eval(s.Eval.Score, s.Eval.IsMate, s.Eval.MateIn)
	}
	return line
}

// Eval formats an engine score from the engine's point of view
func Eval(score int, isMate bool, mateIn int) string {
	if isMate {
		return fmt.Sprintf("mate in %d", mateIn)
	}
	return fmt.Sprintf("eval %+.2f", float64(score)/100)
}
