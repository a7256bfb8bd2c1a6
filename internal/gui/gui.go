// Package gui plays a session in a window with the mouse.
package gui

import (
	"context"
	"image/color"

	"chessclick/internal/core"
	"chessclick/internal/game"
	"chessclick/internal/view"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const Title = "Chess Game with Stockfish"

var (
	lightSquare   = color.RGBA{238, 238, 210, 255}
	darkSquare    = color.RGBA{118, 150, 86, 255}
	selectedColor = color.RGBA{255, 255, 0, 255}
	targetColor   = color.RGBA{0, 255, 0, 255}
	overlayColor  = color.RGBA{200, 200, 200, 128}
	buttonColor   = color.RGBA{255, 255, 255, 255}
	buttonHover   = color.RGBA{200, 200, 200, 255}
)

// Window implements ebiten.Game over a session
type Window struct {
	ctx     context.Context
	session *game.Game
	geom    view.Geometry
	sprites map[core.Piece]*ebiten.Image
	sounds  *Sounds
}

// New loads the assets; a missing file is an error
func New(ctx context.Context, assets string, squareSize int) (*Window, error) {
	if err := CheckAssets(assets); err != nil {
		return nil, err
	}
	sprites, err := LoadSprites(assets)
	if err != nil {
		return nil, err
	}
	sounds, err := LoadSounds(assets)
	if err != nil {
		return nil, err
	}
	return &Window{
		ctx:     ctx,
		geom:    view.Square(squareSize),
		sprites: sprites,
		sounds:  sounds,
	}, nil
}

// Attach binds the session; the window must also be the session's notifier
func (w *Window) Attach(g *game.Game) {
	w.session = g
}

func (w *Window) Notify(e core.Effect) {
	w.sounds.Play(e)
}

// Run opens the window and blocks until it is closed
func (w *Window) Run() error {
	ebiten.SetWindowSize(w.geom.Width(), w.geom.Height())
	ebiten.SetWindowTitle(Title)
	return ebiten.RunGame(w)
}

// Press turns a pointer press at (x, y) into session input
func (w *Window) Press(x, y int, over bool) {
	if over {
		if view.RestartButton(w.geom.Width(), w.geom.Height()).Contains(x, y) {
			w.session.Submit(game.Restart())
		}
		return
	}
	if sq, ok := w.geom.SquareAt(x, y); ok {
		w.session.Submit(game.Click(sq))
	}
}

func (w *Window) Update() error {
	select {
	case <-w.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		w.Press(x, y, w.session.IsGameOver())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		w.session.Submit(game.Restart())
	}
	return w.session.Tick(w.ctx)
}

func (w *Window) Draw(screen *ebiten.Image) {
	snap := w.session.Snapshot()
	w.drawBoard(screen, snap)
	w.drawTargets(screen, snap)
	if snap.Terminal.Over() {
		w.drawOverlay(screen, snap)
	}
}

func (w *Window) drawBoard(screen *ebiten.Image, snap game.Snapshot) {
	sw, sh := float32(w.geom.SquareW), float32(w.geom.SquareH)
	pending, hasPending := snap.Selection.Pending()

	for i := 0; i < 64; i++ {
		sq := core.SquareFromIndex(i)
		x, y := w.geom.Origin(sq)
		fx, fy := float32(x), float32(y)

		c := darkSquare
		if view.IsLight(sq) {
			c = lightSquare
		}
		vector.DrawFilledRect(screen, fx, fy, sw, sh, c, false)
		if hasPending && sq == pending {
			vector.StrokeRect(screen, fx+1.5, fy+1.5, sw-3, sh-3, 3, selectedColor, false)
		}

		p := snap.Board.At(sq)
		if p.Empty() {
			continue
		}
		img := w.sprites[p]
		op := &ebiten.DrawImageOptions{}
		b := img.Bounds()
		op.GeoM.Scale(float64(w.geom.SquareW)/float64(b.Dx()), float64(w.geom.SquareH)/float64(b.Dy()))
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, op)
	}
}

func (w *Window) drawTargets(screen *ebiten.Image, snap game.Snapshot) {
	r := float32(w.geom.SquareW) / 4
	for _, sq := range snap.Highlights {
		cx, cy := w.geom.Center(sq)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, targetColor, true)
	}
}

func (w *Window) drawOverlay(screen *ebiten.Image, snap game.Snapshot) {
	width, height := w.geom.Width(), w.geom.Height()
	vector.DrawFilledRect(screen, 0, 0, float32(width), float32(height), overlayColor, false)

	// The debug font is 6x16 per character
	text := view.Headline(snap.Terminal)
	ebitenutil.DebugPrintAt(screen, text, width/2-len(text)*3, height/2-50-8)

	b := view.RestartButton(width, height)
	fill := buttonColor
	if mx, my := ebiten.CursorPosition(); b.Contains(mx, my) {
		fill = buttonHover
	}
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), fill, false)
	ebitenutil.DebugPrintAt(screen, b.Label, b.X+b.W/2-len(b.Label)*3, b.Y+b.H/2-8)
}

func (w *Window) Layout(_, _ int) (int, int) {
	return w.geom.Width(), w.geom.Height()
}
