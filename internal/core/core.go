// FILE: internal/core/core.go
package core

type Color byte

const (
	ColorWhite Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorWhite:
		return "White"
	case ColorBlack:
		return "Black"
	default:
		return "-"
	}
}

// Short returns the FEN side letter
func (c Color) Short() string {
	if c == ColorWhite {
		return "w"
	} else if c == ColorBlack {
		return "b"
	}
	return "-"
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// ParseColor accepts "white"/"w" and "black"/"b"
func ParseColor(s string) (Color, bool) {
	switch s {
	case "white", "w", "White":
		return ColorWhite, true
	case "black", "b", "Black":
		return ColorBlack, true
	}
	return 0, false
}

type PieceKind byte

const (
	NoKind PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return ""
	}
}

// Letter returns the lowercase algebraic letter, "p" for pawns
func (k PieceKind) Letter() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	default:
		return ""
	}
}

func kindFromLetter(b byte) PieceKind {
	switch b {
	case 'p':
		return Pawn
	case 'n':
		return Knight
	case 'b':
		return Bishop
	case 'r':
		return Rook
	case 'q':
		return Queen
	case 'k':
		return King
	}
	return NoKind
}

// Piece is absent when Kind is NoKind
type Piece struct {
	Kind  PieceKind
	Color Color
}

func (p Piece) Empty() bool {
	return p.Kind == NoKind
}

// FEN returns the piece letter, uppercase for white, or "" when empty
func (p Piece) FEN() string {
	l := p.Kind.Letter()
	if p.Color == ColorWhite && l != "" {
		return string(l[0] - 'a' + 'A')
	}
	return l
}

// Board maps every square index (see Square.Index) to an optional piece
type Board [64]Piece

func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b[sq.Index()]
}

type TerminalKind int

const (
	Ongoing TerminalKind = iota
	Checkmate
	Stalemate
	OtherDraw
)

// TerminalState is derived from the position after every applied move
type TerminalState struct {
	Kind   TerminalKind
	Winner Color // Only set for Checkmate
	Reason string
}

func (t TerminalState) Over() bool {
	return t.Kind != Ongoing
}

func (t TerminalState) String() string {
	switch t.Kind {
	case Checkmate:
		return t.Winner.String() + " wins by checkmate"
	case Stalemate:
		return "draw by stalemate"
	case OtherDraw:
		if t.Reason != "" {
			return "draw (" + t.Reason + ")"
		}
		return "draw"
	default:
		return "ongoing"
	}
}

// Effect is an output-only notification for sound and redraw
type Effect int

const (
	EffectStart Effect = iota
	EffectMove
	EffectCheck
	EffectGameOver
	EffectStalemate
)

func (e Effect) String() string {
	switch e {
	case EffectStart:
		return "start"
	case EffectMove:
		return "move"
	case EffectCheck:
		return "check"
	case EffectGameOver:
		return "game over"
	case EffectStalemate:
		return "stalemate"
	default:
		return "unknown"
	}
}
