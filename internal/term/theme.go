package term

import (
	"github.com/gdamore/tcell/v2"
)

// Theme is used for coloring the terminal board
type Theme struct {
	Name        string
	SquareDark  tcell.Color
	SquareLight tcell.Color
	SquareSel   tcell.Color
	SquareHigh  tcell.Color // Last move
	Target      tcell.Color
	White       tcell.Color
	Black       tcell.Color
	Rank        tcell.Color
	File        tcell.Color
	Msg         tcell.Color
	MoveLabelBg tcell.Color
	MoveLabelFg tcell.Color
	MoveBox     tcell.Color
	Button      tcell.Color
}

var classic = Theme{
	Name:        "green",
	SquareDark:  tcell.NewRGBColor(118, 150, 86),
	SquareLight: tcell.NewRGBColor(238, 238, 210),
	SquareSel:   tcell.NewRGBColor(255, 255, 0),
	SquareHigh:  tcell.NewRGBColor(186, 202, 68),
	Target:      tcell.NewRGBColor(0, 128, 0),
	White:       tcell.ColorWhite,
	Black:       tcell.ColorBlack,
	Rank:        tcell.ColorTeal,
	File:        tcell.ColorTeal,
	Msg:         tcell.ColorYellow,
	MoveLabelBg: tcell.ColorNavy,
	MoveLabelFg: tcell.ColorWhite,
	MoveBox:     tcell.ColorGray,
	Button:      tcell.ColorSilver,
}

var themes = map[string]Theme{
	"green": classic,
	"off":   classic,
	"brown": {
		Name:        "brown",
		SquareDark:  tcell.PaletteColor(94),
		SquareLight: tcell.PaletteColor(230),
		SquareSel:   tcell.PaletteColor(226),
		SquareHigh:  tcell.PaletteColor(179),
		Target:      tcell.PaletteColor(28),
		White:       tcell.ColorWhite,
		Black:       tcell.ColorBlack,
		Rank:        tcell.ColorOlive,
		File:        tcell.ColorOlive,
		Msg:         tcell.ColorYellow,
		MoveLabelBg: tcell.PaletteColor(94),
		MoveLabelFg: tcell.ColorWhite,
		MoveBox:     tcell.ColorGray,
		Button:      tcell.PaletteColor(230),
	},
	"gray": {
		Name:        "gray",
		SquareDark:  tcell.PaletteColor(240),
		SquareLight: tcell.PaletteColor(251),
		SquareSel:   tcell.PaletteColor(226),
		SquareHigh:  tcell.PaletteColor(245),
		Target:      tcell.PaletteColor(28),
		White:       tcell.ColorWhite,
		Black:       tcell.ColorBlack,
		Rank:        tcell.ColorSilver,
		File:        tcell.ColorSilver,
		Msg:         tcell.ColorYellow,
		MoveLabelBg: tcell.PaletteColor(240),
		MoveLabelFg: tcell.ColorWhite,
		MoveBox:     tcell.ColorGray,
		Button:      tcell.PaletteColor(251),
	},
}

// ThemeNamed falls back to the classic green board
func ThemeNamed(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return classic
}
