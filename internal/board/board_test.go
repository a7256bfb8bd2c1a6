package board

import (
	"errors"
	"sort"
	"testing"

	"chessclick/internal/core"
)

func sq(t *testing.T, s string) core.Square {
	t.Helper()
	v, err := core.ParseSquare(s)
	if err != nil {
		t.Fatalf("bad square %q: %v", s, err)
	}
	return v
}

func mv(t *testing.T, s string) core.Move {
	t.Helper()
	v, err := core.ParseMove(s)
	if err != nil {
		t.Fatalf("bad move %q: %v", s, err)
	}
	return v
}

func destinations(moves []core.Move) []string {
	var out []string
	for _, m := range moves {
		out = append(out, m.To.String())
	}
	sort.Strings(out)
	return out
}

func TestLegalMovesFrom(t *testing.T) {
	m := New()

	got := destinations(m.LegalMovesFrom(sq(t, "e2")))
	if len(got) != 2 || got[0] != "e3" || got[1] != "e4" {
		t.Fatalf("e2 destinations = %v", got)
	}
	got = destinations(m.LegalMovesFrom(sq(t, "g1")))
	if len(got) != 2 || got[0] != "f3" || got[1] != "h3" {
		t.Fatalf("g1 destinations = %v", got)
	}
	// Empty square, opponent piece, blocked piece
	for _, s := range []string{"e4", "e7", "a1"} {
		if moves := m.LegalMovesFrom(sq(t, s)); len(moves) != 0 {
			t.Errorf("%s should have no legal moves, got %v", s, moves)
		}
	}
	if len(m.LegalMoves()) != 20 {
		t.Fatalf("starting position should have 20 legal moves, got %d", len(m.LegalMoves()))
	}
}

func TestIsOwnPiece(t *testing.T) {
	m := New()
	if !m.IsOwnPiece(sq(t, "e2"), core.ColorWhite) {
		t.Errorf("e2 should be white")
	}
	if m.IsOwnPiece(sq(t, "e7"), core.ColorWhite) {
		t.Errorf("e7 should not be white")
	}
	if m.IsOwnPiece(sq(t, "e4"), core.ColorWhite) || m.IsOwnPiece(sq(t, "e4"), core.ColorBlack) {
		t.Errorf("e4 is empty")
	}
	if m.IsOwnPiece(core.NewSquare(8, 0), core.ColorWhite) {
		t.Errorf("off-board square cannot hold a piece")
	}
}

func TestApplyMove(t *testing.T) {
	m := New()
	if err := m.ApplyMove(mv(t, "e2e4")); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if m.SideToMove() != core.ColorBlack {
		t.Fatalf("side to move should flip to black")
	}
	if p := m.PieceAt(sq(t, "e4")); p.Kind != core.Pawn || p.Color != core.ColorWhite {
		t.Fatalf("e4 should hold a white pawn, got %+v", p)
	}
	if !m.PieceAt(sq(t, "e2")).Empty() {
		t.Fatalf("e2 should be empty")
	}
	if m.Ply() != 1 {
		t.Fatalf("ply = %d", m.Ply())
	}
	if last, ok := m.LastMove(); !ok || last.String() != "e2e4" {
		t.Fatalf("last move = %v %v", last, ok)
	}
}

func TestApplyMoveRejectsIllegal(t *testing.T) {
	m := New()
	before := m.FEN()
	for _, s := range []string{"e2a3", "e2e2", "e7e5", "e2e5"} {
		err := m.ApplyMove(mv(t, s))
		if !errors.Is(err, core.ErrIllegalMove) {
			t.Errorf("%s: expected ErrIllegalMove, got %v", s, err)
		}
	}
	if m.FEN() != before || m.Ply() != 0 {
		t.Fatalf("rejected moves must not change the position")
	}
}

func TestPromotionRequiresPiece(t *testing.T) {
	m, err := FromFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !m.RequiresPromotion(sq(t, "a7"), sq(t, "a8")) {
		t.Fatalf("a7a8 should require a promotion piece")
	}
	if m.RequiresPromotion(sq(t, "e1"), sq(t, "e2")) {
		t.Fatalf("king move is not a promotion")
	}
	if err := m.ApplyMove(mv(t, "a7a8")); !errors.Is(err, core.ErrIllegalMove) {
		t.Fatalf("promotion without piece should be rejected, got %v", err)
	}
	if err := m.ApplyMove(mv(t, "a7a8n")); err != nil {
		t.Fatalf("a7a8n: %v", err)
	}
	if p := m.PieceAt(sq(t, "a8")); p.Kind != core.Knight {
		t.Fatalf("a8 should hold a knight, got %+v", p)
	}
}

func TestCheckmate(t *testing.T) {
	m := New()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		if err := m.ApplyMove(mv(t, s)); err != nil {
			t.Fatalf("%s: %v", s, err)
		}
	}
	ts := m.TerminalState()
	if ts.Kind != core.Checkmate || ts.Winner != core.ColorBlack {
		t.Fatalf("expected black to win by checkmate, got %v", ts)
	}
	if !m.InCheck() {
		t.Fatalf("mated side is in check")
	}
	if err := m.ApplyMove(mv(t, "a2a3")); !errors.Is(err, core.ErrGameOver) {
		t.Fatalf("moves after mate should fail with ErrGameOver, got %v", err)
	}
}

func TestStalemate(t *testing.T) {
	// Black king on a8, white queen to b6 leaves no legal moves
	m, err := FromFEN("k7/8/2Q5/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.ApplyMove(mv(t, "c6b6")); err != nil {
		t.Fatalf("c6b6: %v", err)
	}
	if ts := m.TerminalState(); ts.Kind != core.Stalemate {
		t.Fatalf("expected stalemate, got %v", ts)
	}
}

func TestInsufficientMaterialIsOtherDraw(t *testing.T) {
	m, err := FromFEN("k7/8/8/8/8/8/1r6/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if err := m.ApplyMove(mv(t, "a1b2")); err != nil {
		t.Fatalf("a1b2: %v", err)
	}
	if ts := m.TerminalState(); ts.Kind != core.OtherDraw {
		t.Fatalf("expected other draw, got %v", ts)
	}
}

func TestReset(t *testing.T) {
	m, err := FromFEN("k7/8/2Q5/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	m.ApplyMove(mv(t, "c6b6"))
	gen := m.Generation()

	m.Reset()
	if m.FEN() != StartingFEN {
		t.Fatalf("reset FEN = %q", m.FEN())
	}
	if m.TerminalState().Over() {
		t.Fatalf("reset must clear the terminal state")
	}
	if m.Ply() != 0 || m.InitialFEN() != StartingFEN {
		t.Fatalf("reset must clear the move list")
	}
	if m.Generation() == gen {
		t.Fatalf("reset must bump the generation")
	}
}

func TestBoardCopyDoesNotAlias(t *testing.T) {
	m := New()
	b := m.Board()
	b[sq(t, "e2").Index()] = core.Piece{}
	if m.PieceAt(sq(t, "e2")).Empty() {
		t.Fatalf("mutating the copy changed the model")
	}
	if got := ToASCII(m.Board()); got[:17] != "  a b c d e f g h" {
		t.Fatalf("unexpected ascii header: %q", got[:17])
	}
}

func TestInCheckFromFEN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want bool
	}{
		{"rook on file", "4k3/8/8/8/8/8/8/4R1K1 b - - 0 1", true},
		{"rook blocked", "4k3/8/8/4p3/8/8/8/4R1K1 b - - 0 1", false},
		{"knight", "4k3/8/3N4/8/8/8/8/6K1 b - - 0 1", true},
		{"white pawn", "8/8/8/8/8/3k4/4P3/6K1 b - - 0 1", true},
		{"black pawn", "8/8/8/8/8/8/5p2/6K1 w - - 0 1", true},
		{"bishop", "4k3/8/8/8/8/8/8/B5K1 w - - 0 1", false},
		{"queen diagonal", "4k3/8/8/q7/8/8/8/4K3 w - - 0 1", true},
		{"start", StartingFEN, false},
	}
	for _, tt := range tests {
		m, err := FromFEN(tt.fen)
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if got := m.InCheck(); got != tt.want {
			t.Errorf("%s: InCheck = %v, want %v", tt.name, got, tt.want)
		}
	}
}
