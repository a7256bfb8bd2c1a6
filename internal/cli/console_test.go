package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"chessclick/internal/board"
	"chessclick/internal/core"
	"chessclick/internal/engine/enginetest"
	"chessclick/internal/game"
)

type scriptedReader struct {
	lines   []string
	prompts []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptedReader) SetPrompt(p string) { r.prompts = append(r.prompts, p) }
func (r *scriptedReader) Close() error       { return nil }

func newConsole(t *testing.T, eng *enginetest.Scripted, human core.Color, lines ...string) (*Console, *game.Game, *bytes.Buffer) {
	t.Helper()
	var con *Console
	g := game.New(board.New(), eng, game.Options{
		HumanColor: human,
		ThinkTime:  10 * time.Millisecond,
		Notifier: game.NotifierFunc(func(e core.Effect) {
			if con != nil {
				con.Notify(e)
			}
		}),
	})
	t.Cleanup(func() { g.Close() })
	out := &bytes.Buffer{}
	con = New(g, &scriptedReader{lines: lines}, out, ThemeOff, true)
	return con, g, out
}

func TestParseCommand(t *testing.T) {
	e2, _ := core.ParseSquare("e2")
	e4, _ := core.ParseSquare("e4")
	tests := []struct {
		input   string
		want    CommandType
		squares []core.Square
	}{
		{"", CmdNone, nil},
		{"  e2 ", CmdClick, []core.Square{e2}},
		{"E2", CmdClick, []core.Square{e2}},
		{"e2e4", CmdMove, []core.Square{e2, e4}},
		{"restart", CmdRestart, nil},
		{"new", CmdRestart, nil},
		{"board", CmdBoard, nil},
		{"color green", CmdColor, nil},
		{"history", CmdHistory, nil},
		{"?", CmdHelp, nil},
		{"exit", CmdQuit, nil},
		{"i9", CmdUnknown, nil},
		{"e2 e4", CmdUnknown, nil},
	}
	for _, tt := range tests {
		cmd := ParseCommand(tt.input)
		if cmd.Type != tt.want {
			t.Errorf("ParseCommand(%q).Type = %d, want %d", tt.input, cmd.Type, tt.want)
			continue
		}
		if len(cmd.Squares) != len(tt.squares) {
			t.Errorf("ParseCommand(%q).Squares = %v", tt.input, cmd.Squares)
			continue
		}
		for i := range tt.squares {
			if cmd.Squares[i] != tt.squares[i] {
				t.Errorf("ParseCommand(%q).Squares = %v", tt.input, cmd.Squares)
			}
		}
	}
}

func TestParseTheme(t *testing.T) {
	if th, err := ParseTheme("Brown"); err != nil || th != ThemeBrown {
		t.Fatalf("ParseTheme = %s, %v", th, err)
	}
	if _, err := ParseTheme("pink"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}

func TestRenderBoardMarksSelection(t *testing.T) {
	e2, _ := core.ParseSquare("e2")
	e3, _ := core.ParseSquare("e3")
	e4, _ := core.ParseSquare("e4")
	snap := game.Snapshot{
		Board:      board.New().Board(),
		Selection:  core.PendingSelection(e2),
		Highlights: []core.Square{e3, e4},
	}
	out := RenderBoard(snap, ThemeOff)
	lines := strings.Split(out, "\n")

	// Leading blank line and file header, then rank 8 down to rank 1
	rank2 := lines[2+6]
	rank3 := lines[2+5]
	rank4 := lines[2+4]
	if !strings.HasPrefix(rank2, "2 ") || !strings.Contains(rank2, "P<") {
		t.Errorf("rank 2 = %q", rank2)
	}
	if !strings.Contains(rank3, "+") || !strings.Contains(rank4, "+") {
		t.Errorf("targets not marked: %q %q", rank3, rank4)
	}
	if !strings.HasPrefix(lines[2], "8 r n b q k b n r") {
		t.Errorf("rank 8 = %q", lines[2])
	}

	colored := RenderBoard(snap, ThemeGreen)
	if !strings.Contains(colored, themes[ThemeGreen].markBg) {
		t.Errorf("pending square not colored")
	}
}

func TestExecuteMoveWaitsForEngine(t *testing.T) {
	con, g, out := newConsole(t, enginetest.New("e7e5"), core.ColorWhite)
	ctx := context.Background()

	if quit, err := con.Execute(ctx, ParseCommand("e2")); quit || err != nil {
		t.Fatalf("Execute e2: %v %v", quit, err)
	}
	if sq, ok := g.Snapshot().Selection.Pending(); !ok || sq.String() != "e2" {
		t.Fatalf("e2 should be selected")
	}
	if quit, err := con.Execute(ctx, ParseCommand("e4")); quit || err != nil {
		t.Fatalf("Execute e4: %v %v", quit, err)
	}

	moves := g.Snapshot().Moves
	if len(moves) != 2 || moves[0].String() != "e2e4" || moves[1].String() != "e7e5" {
		t.Fatalf("moves = %v", moves)
	}
	text := out.String()
	for _, want := range []string{"You (White): e2e4", "Engine (Black): e7e5"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestExecuteMoveWithPendingSelection(t *testing.T) {
	con, g, out := newConsole(t, enginetest.New("e7e5"), core.ColorWhite)
	ctx := context.Background()

	if _, err := con.Execute(ctx, ParseCommand("g1")); err != nil {
		t.Fatal(err)
	}
	if _, err := con.Execute(ctx, ParseCommand("e2e4")); err != nil {
		t.Fatal(err)
	}

	moves := g.Snapshot().Moves
	if len(moves) != 2 || moves[0].String() != "e2e4" {
		t.Fatalf("moves = %v", moves)
	}
	if strings.Contains(out.String(), "Illegal move") {
		t.Errorf("legal move reported illegal:\n%s", out.String())
	}
}

func TestExecuteIllegalMove(t *testing.T) {
	con, g, out := newConsole(t, enginetest.New(), core.ColorWhite)
	if _, err := con.Execute(context.Background(), ParseCommand("e2e5")); err != nil {
		t.Fatal(err)
	}
	if len(g.Snapshot().Moves) != 0 {
		t.Fatalf("illegal move was applied")
	}
	if !strings.Contains(out.String(), "Illegal move e2e5") {
		t.Errorf("output = %s", out.String())
	}
}

func TestRunFoolsMate(t *testing.T) {
	con, g, out := newConsole(t, enginetest.New("e7e5", "d8h4"), core.ColorWhite,
		"f2f3", "g2", "g4", "history", "restart", "quit")

	if err := con.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	text := out.String()
	for _, want := range []string{"Checkmate! Black wins!", "2. g2g4 | d8h4", "New game."} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if g.IsGameOver() || len(g.Snapshot().Moves) != 0 {
		t.Fatalf("restart should leave a fresh game")
	}
}

func TestRunEngineMovesFirst(t *testing.T) {
	con, g, out := newConsole(t, enginetest.New("d2d4"), core.ColorBlack)
	if err := con.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if moves := g.Snapshot().Moves; len(moves) != 1 || moves[0].String() != "d2d4" {
		t.Fatalf("moves = %v", moves)
	}
	if !strings.Contains(out.String(), "You play Black") {
		t.Errorf("output = %s", out.String())
	}
}
