// Package term plays a session in a terminal with mouse clicks.
package term

import (
	"context"
	"log"
	"time"

	"chessclick/internal/core"
	"chessclick/internal/game"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 33 * time.Millisecond

// App owns the screen. All drawing and ticking happen on the Run goroutine.
type App struct {
	screen  tcell.Screen
	game    *game.Game
	theme   Theme
	msg     string
	pressed bool // Left button state from the previous mouse event
}

func New(s tcell.Screen, theme Theme) *App {
	return &App{screen: s, theme: theme}
}

// Attach binds the session; the app must also be the session's notifier
func (a *App) Attach(g *game.Game) {
	a.game = g
}

// Notify rings the bell on moves and shows check and game over messages
func (a *App) Notify(e core.Effect) {
	switch e {
	case core.EffectStart:
		a.msg = "New game. Click a piece, then its destination."
	case core.EffectMove:
		a.msg = ""
		a.beep()
	case core.EffectCheck:
		a.msg = "Check!"
	case core.EffectGameOver, core.EffectStalemate:
		a.msg = "Press r or click Restart to play again, q to quit."
		a.beep()
	}
}

func (a *App) beep() {
	if err := a.screen.Beep(); err != nil {
		log.Printf("term: beep: %v", err)
	}
}

// HandleEvent turns one terminal event into session input
func (a *App) HandleEvent(ev tcell.Event) (quit bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return true
			case 'r', 'R':
				a.game.Submit(game.Restart())
			}
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		justPressed := down && !a.pressed
		a.pressed = down
		if !justPressed {
			return false
		}
		x, y := ev.Position()
		if a.game.IsGameOver() && restartButton.Contains(x, y) {
			a.game.Submit(game.Restart())
			return false
		}
		if sq, ok := boardGeometry.SquareAt(x, y); ok {
			a.game.Submit(game.Click(sq))
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return false
}

// Draw ticks the session once and repaints
func (a *App) Draw(ctx context.Context) error {
	if err := a.game.Tick(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}
	Render(a.screen, a.game.Snapshot(), a.msg, a.theme)
	return nil
}

// Run loops until the user quits, ctx is done or the session fails
func (a *App) Run(ctx context.Context) error {
	a.screen.EnableMouse()
	a.screen.HideCursor()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go a.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	if err := a.Draw(ctx); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if err := a.Draw(ctx); err != nil {
				return err
			}
		}
	}
}
