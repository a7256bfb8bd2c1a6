package term

import (
	"context"
	"testing"
	"time"

	"chessclick/internal/board"
	"chessclick/internal/core"
	"chessclick/internal/engine/enginetest"
	"chessclick/internal/game"

	"github.com/gdamore/tcell/v2"
)

func newApp(t *testing.T, eng *enginetest.Scripted, human core.Color) (*App, *game.Game, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	s.SetSize(80, 25)
	t.Cleanup(s.Fini)

	app := New(s, ThemeNamed("green"))
	g := game.New(board.New(), eng, game.Options{
		HumanColor: human,
		ThinkTime:  10 * time.Millisecond,
		Notifier:   app,
	})
	t.Cleanup(func() { g.Close() })
	app.Attach(g)
	return app, g, s
}

func click(app *App, sq string) {
	v, _ := core.ParseSquare(sq)
	x, y := boardGeometry.Center(v)
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone))
}

func cell(s tcell.SimulationScreen, x, y int) rune {
	r, _, _, _ := s.GetContent(x, y)
	return r
}

func TestMouseClicksPlayMove(t *testing.T) {
	app, g, _ := newApp(t, enginetest.New("e7e5"), core.ColorWhite)

	click(app, "e2")
	click(app, "e4")
	if err := g.Settle(context.Background()); err != nil {
		t.Fatal(err)
	}

	moves := g.Snapshot().Moves
	if len(moves) != 2 || moves[0].String() != "e2e4" || moves[1].String() != "e7e5" {
		t.Fatalf("moves = %v", moves)
	}
}

func TestHeldButtonIsOneClick(t *testing.T) {
	app, g, _ := newApp(t, enginetest.New(), core.ColorWhite)
	e2, _ := core.ParseSquare("e2")
	x, y := boardGeometry.Center(e2)

	// Drag events with the button still down must not click again
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	app.HandleEvent(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone))
	if err := g.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sq, ok := g.Snapshot().Selection.Pending(); !ok || sq != e2 {
		t.Fatalf("selection = %s", g.Snapshot().Selection)
	}
}

func TestDrawShowsBoard(t *testing.T) {
	app, _, s := newApp(t, enginetest.New(), core.ColorWhite)
	if err := app.Draw(context.Background()); err != nil {
		t.Fatal(err)
	}

	e1, _ := core.ParseSquare("e1")
	x, y := boardGeometry.Origin(e1)
	if got := cell(s, x, y); got != '♚' {
		t.Errorf("e1 = %q, want king", got)
	}
	a8, _ := core.ParseSquare("a8")
	x, y = boardGeometry.Origin(a8)
	if got := cell(s, x, y); got != '♜' {
		t.Errorf("a8 = %q, want rook", got)
	}
	if got := cell(s, leftMargin, topMargin); got != '8' {
		t.Errorf("rank label = %q", got)
	}
}

func TestDrawMarksTargets(t *testing.T) {
	app, _, s := newApp(t, enginetest.New(), core.ColorWhite)
	click(app, "g1")
	if err := app.Draw(context.Background()); err != nil {
		t.Fatal(err)
	}
	f3, _ := core.ParseSquare("f3")
	x, y := boardGeometry.Origin(f3)
	if got := cell(s, x, y); got != '•' {
		t.Errorf("f3 = %q, want target dot", got)
	}
}

func TestRestartButtonAfterMate(t *testing.T) {
	app, g, s := newApp(t, enginetest.New("e7e5", "d8h4"), core.ColorWhite)
	for _, sq := range []string{"f2", "f3"} {
		click(app, sq)
	}
	if err := g.Settle(context.Background()); err != nil {
		t.Fatal(err)
	}
	for _, sq := range []string{"g2", "g4"} {
		click(app, sq)
	}
	if err := g.Settle(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !g.IsGameOver() {
		t.Fatalf("expected mate")
	}
	if err := app.Draw(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := cell(s, restartButton.X, restartButton.Y); got != '[' {
		t.Fatalf("restart button not drawn, got %q", got)
	}

	app.HandleEvent(tcell.NewEventMouse(restartButton.X+2, restartButton.Y, tcell.Button1, tcell.ModNone))
	if err := g.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if g.IsGameOver() || len(g.Snapshot().Moves) != 0 {
		t.Fatalf("restart button did not reset the game")
	}
}

func TestKeys(t *testing.T) {
	app, g, _ := newApp(t, enginetest.New("e7e5"), core.ColorWhite)
	click(app, "e2")
	click(app, "e4")
	if err := g.Settle(context.Background()); err != nil {
		t.Fatal(err)
	}

	if app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone)) {
		t.Fatalf("r must not quit")
	}
	if err := g.Tick(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(g.Snapshot().Moves) != 0 {
		t.Fatalf("r did not restart")
	}
	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)) {
		t.Errorf("q should quit")
	}
	if !app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)) {
		t.Errorf("Esc should quit")
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	app, _, s := newApp(t, enginetest.New(), core.ColorWhite)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after q")
	}
}
