// FILE: internal/cli/theme.go
package cli

import (
	"fmt"
	"strings"

	"chessclick/internal/core"
	"chessclick/internal/game"
	"chessclick/internal/view"
)

type ColorTheme string

const (
	ThemeOff   ColorTheme = "off"
	ThemeBrown ColorTheme = "brown"
	ThemeGreen ColorTheme = "green"
	ThemeGray  ColorTheme = "gray"
)

type themeColors struct {
	lightBg string
	darkBg  string
	markBg  string // Pending square
	white   string
	black   string
	reset   string
}

var themes = map[ColorTheme]themeColors{
	ThemeOff: {},
	ThemeBrown: {
		lightBg: "\033[48;5;230m", // Beige
		darkBg:  "\033[48;5;94m",  // Brown
		markBg:  "\033[48;5;226m", // Yellow
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGreen: {
		lightBg: "\033[48;5;230m", // Cream, the GUI's light square
		darkBg:  "\033[48;5;65m",  // Olive green
		markBg:  "\033[48;5;226m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
	ThemeGray: {
		lightBg: "\033[48;5;251m", // Light gray
		darkBg:  "\033[48;5;240m", // Dark gray
		markBg:  "\033[48;5;226m",
		white:   "\033[97m",
		black:   "\033[30m",
		reset:   "\033[0m",
	},
}

// ParseTheme accepts any case
func ParseTheme(s string) (ColorTheme, error) {
	theme := ColorTheme(strings.ToLower(s))
	if _, ok := themes[theme]; !ok {
		return ThemeOff, fmt.Errorf("invalid theme: %s (use: off, brown, green, gray)", s)
	}
	return theme, nil
}

// RenderBoard draws the snapshot with rank 8 on top. The pending square is
// marked with '<' and its destinations with '+', colors permitting.
func RenderBoard(s game.Snapshot, theme ColorTheme) string {
	colors := themes[theme]
	pending, hasPending := s.Selection.Pending()
	targets := make(map[core.Square]bool, len(s.Highlights))
	for _, sq := range s.Highlights {
		targets[sq] = true
	}

	var sb strings.Builder
	sb.WriteString("\n  a b c d e f g h\n")
	for row := 0; row < 8; row++ {
		rank := 7 - row
		sb.WriteString(fmt.Sprintf("%d ", rank+1))
		for file := 0; file < 8; file++ {
			sq := core.NewSquare(file, rank)
			piece := s.Board.At(sq)

			glyph := " "
			if !piece.Empty() {
				glyph = piece.FEN()
			}
			mark := " "
			switch {
			case hasPending && sq == pending:
				mark = "<"
			case targets[sq]:
				mark = "+"
			}

			if theme == ThemeOff {
				if glyph == " " && mark == " " {
					glyph = "."
				}
				sb.WriteString(glyph + mark)
				continue
			}

			bg := colors.darkBg
			if view.IsLight(sq) {
				bg = colors.lightBg
			}
			if hasPending && sq == pending {
				bg = colors.markBg
			}
			fg := colors.black
			if piece.Color == core.ColorWhite {
				fg = colors.white
			}
			sb.WriteString(bg + fg + glyph + mark + colors.reset)
		}
		sb.WriteString(fmt.Sprintf(" %d\n", rank+1))
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
