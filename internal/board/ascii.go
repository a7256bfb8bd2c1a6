package board

import (
	"fmt"
	"strings"

	"chessclick/internal/core"
)

// ToASCII creates an ASCII representation of a board, rank 8 on top
func ToASCII(b core.Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 7; r >= 0; r-- {
		sb.WriteString(fmt.Sprintf("%d ", r+1))
		for f := 0; f < 8; f++ {
			p := b.At(core.NewSquare(f, r))
			if p.Empty() {
				sb.WriteString(". ")
			} else {
				sb.WriteString(p.FEN() + " ")
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", r+1))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
