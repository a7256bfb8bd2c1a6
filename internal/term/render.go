package term

import (
	"fmt"

	"chessclick/internal/core"
	"chessclick/internal/game"
	"chessclick/internal/view"

	"github.com/gdamore/tcell/v2"
)

const (
	leftMargin = 4
	topMargin  = 4
	boxLeft    = leftMargin + 22
	statusRow  = topMargin + 10
	buttonRow  = topMargin + 12
	movesShown = 5
)

// boardGeometry maps screen cells to squares, each square two cells wide
var boardGeometry = view.Geometry{Left: leftMargin + 2, Top: topMargin, SquareW: 2, SquareH: 1}

var restartButton = view.Button{X: leftMargin, Y: buttonRow, W: 11, H: 1, Label: "[ Restart ]"}

var glyphs = map[core.PieceKind]rune{
	core.Pawn:   '♟',
	core.Knight: '♞',
	core.Bishop: '♝',
	core.Rook:   '♜',
	core.Queen:  '♛',
	core.King:   '♚',
}

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawSquare fills both cells of a square, the piece in the left one
func drawSquare(s tcell.Screen, col, row int, p core.Piece, bg tcell.Color, target bool, t Theme) {
	style := tcell.StyleDefault.Background(bg)
	left := ' '
	switch {
	case !p.Empty():
		left = glyphs[p.Kind]
		if p.Color == core.ColorWhite {
			style = style.Foreground(t.White)
		} else {
			style = style.Foreground(t.Black)
		}
	case target:
		left = '•'
		style = style.Foreground(t.Target)
	}
	s.SetContent(col, row, left, nil, style)
	right := ' '
	if target && !p.Empty() {
		right = '•'
		style = style.Foreground(t.Target)
	}
	s.SetContent(col+1, row, right, nil, style)
}

func drawBoard(s tcell.Screen, snap game.Snapshot, t Theme) {
	pending, hasPending := snap.Selection.Pending()
	targets := make(map[core.Square]bool, len(snap.Highlights))
	for _, sq := range snap.Highlights {
		targets[sq] = true
	}

	rankStyle := tcell.StyleDefault.Foreground(t.Rank)
	for rank := 7; rank >= 0; rank-- {
		sq := core.NewSquare(0, rank)
		_, y := boardGeometry.Origin(sq)
		s.SetContent(leftMargin, y, rune('1'+rank), nil, rankStyle)

		for file := 0; file < 8; file++ {
			sq = core.NewSquare(file, rank)
			x, y := boardGeometry.Origin(sq)

			bg := t.SquareDark
			if view.IsLight(sq) {
				bg = t.SquareLight
			}
			if snap.LastMove != nil && (snap.LastMove.From == sq || snap.LastMove.To == sq) {
				bg = t.SquareHigh
			}
			if hasPending && sq == pending {
				bg = t.SquareSel
			}
			drawSquare(s, x, y, snap.Board.At(sq), bg, targets[sq], t)
		}
	}
	fileStyle := tcell.StyleDefault.Foreground(t.File)
	drawText(s, boardGeometry.Left, boardGeometry.Top+8, fileStyle, "a b c d e f g h")
}

// drawMoveLabel displays whose turn it is above the board
func drawMoveLabel(s tcell.Screen, snap game.Snapshot, t Theme) {
	label := fmt.Sprintf(" %s to Move ", snap.SideToMove)
	if snap.Thinking {
		label = fmt.Sprintf(" %s thinking ", snap.SideToMove)
	}
	style := tcell.StyleDefault.Background(t.MoveLabelBg).Foreground(t.MoveLabelFg)
	drawText(s, leftMargin+2, topMargin-2, style, fmt.Sprintf("%-16s", label))
}

// drawMoves displays the most recent move pairs
func drawMoves(s tcell.Screen, snap game.Snapshot, t Theme) {
	style := tcell.StyleDefault.Foreground(t.MoveBox)
	drawText(s, boxLeft, topMargin, style, "┏━━━━━━━━━━━━━━━━━━━━━┓")

	pairs := (len(snap.Moves) + 1) / 2
	offset := 0
	if pairs > movesShown {
		offset = pairs - movesShown
	}
	for i := 0; i < movesShown; i++ {
		idx, white, black := "", "", ""
		if p := offset + i; p < pairs {
			idx = fmt.Sprintf("%d.", p+1)
			white = snap.Moves[2*p].String()
			if 2*p+1 < len(snap.Moves) {
				black = snap.Moves[2*p+1].String()
			}
		}
		drawText(s, boxLeft, topMargin+i+1, style, fmt.Sprintf("┃ %-3v %-7v %-7v ┃", idx, white, black))
	}
	drawText(s, boxLeft, topMargin+movesShown+1, style, "┗━━━━━━━━━━━━━━━━━━━━━┛")
}

func drawStatus(s tcell.Screen, snap game.Snapshot, msg string, t Theme) {
	style := tcell.StyleDefault.Foreground(t.Msg)
	drawText(s, leftMargin, statusRow, style, fmt.Sprintf("%-60s", view.Status(snap)))
	drawText(s, leftMargin, statusRow+1, tcell.StyleDefault, fmt.Sprintf("%-60s", msg))

	if snap.Terminal.Over() {
		b := restartButton
		drawText(s, b.X, b.Y, tcell.StyleDefault.Background(t.Button).Foreground(tcell.ColorBlack), b.Label)
	}
}

// Render draws the screen
func Render(s tcell.Screen, snap game.Snapshot, msg string, t Theme) {
	s.Clear()
	drawMoveLabel(s, snap, t)
	drawBoard(s, snap, t)
	drawMoves(s, snap, t)
	drawStatus(s, snap, msg, t)
	s.Show()
}
