package core

import "fmt"

// Square is a (file, rank) pair, a1 is {0, 0}
type Square struct {
	File int
	Rank int
}

func NewSquare(file, rank int) Square {
	return Square{File: file, Rank: rank}
}

func (s Square) Valid() bool {
	return s.File >= 0 && s.File < 8 && s.Rank >= 0 && s.Rank < 8
}

// Index returns rank*8+file, a1 is 0 and h8 is 63
func (s Square) Index() int {
	return s.Rank*8 + s.File
}

func SquareFromIndex(i int) Square {
	return Square{File: i % 8, Rank: i / 8}
}

func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+s.File, '1'+s.Rank)
}

func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return Square{File: int(s[0] - 'a'), Rank: int(s[1] - '1')}, nil
}

// Move equality is by From, To and Promotion
type Move struct {
	From      Square
	To        Square
	Promotion PieceKind
}

// String returns the move in UCI notation, e.g. e2e4 or a7a8q
func (m Move) String() string {
	return m.From.String() + m.To.String() + m.Promotion.Letter()
}

// ParseMove parses a UCI move: [a-h][1-8][a-h][1-8][qrbn]?
func ParseMove(s string) (Move, error) {
	if len(s) < 4 || len(s) > 5 {
		return Move{}, fmt.Errorf("invalid move %q", s)
	}
	from, err := ParseSquare(s[0:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	m := Move{From: from, To: to}
	if len(s) == 5 {
		switch k := kindFromLetter(s[4]); k {
		case Queen, Rook, Bishop, Knight:
			m.Promotion = k
		default:
			return Move{}, fmt.Errorf("invalid promotion in move %q", s)
		}
	}
	return m, nil
}
