package gui

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chessclick/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	_ "image/png"
)

const sampleRate = 44100

var soundFiles = map[core.Effect]string{
	core.EffectStart:     "start_sound.mp3",
	core.EffectMove:      "move_sound.mp3",
	core.EffectCheck:     "check_sound.mp3",
	core.EffectGameOver:  "gameover_sound.mp3",
	core.EffectStalemate: "stalemate_sound.mp3",
}

var spriteKinds = []core.PieceKind{core.Pawn, core.Knight, core.Bishop, core.Rook, core.Queen, core.King}

// SpritePath is <dir>/imgs/<w|b>_<kind>.png
func SpritePath(dir string, p core.Piece) string {
	return filepath.Join(dir, "imgs", fmt.Sprintf("%s_%s.png", p.Color.Short(), p.Kind))
}

func SoundPath(dir string, e core.Effect) string {
	return filepath.Join(dir, "sounds", soundFiles[e])
}

// CheckAssets reports the first missing sprite or sound
func CheckAssets(dir string) error {
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, k := range spriteKinds {
			path := SpritePath(dir, core.Piece{Kind: k, Color: c})
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("missing sprite: %w", err)
			}
		}
	}
	for e := range soundFiles {
		if _, err := os.Stat(SoundPath(dir, e)); err != nil {
			return fmt.Errorf("missing sound: %w", err)
		}
	}
	return nil
}

// LoadSprites loads all twelve piece images
func LoadSprites(dir string) (map[core.Piece]*ebiten.Image, error) {
	sprites := make(map[core.Piece]*ebiten.Image, 12)
	for _, c := range []core.Color{core.ColorWhite, core.ColorBlack} {
		for _, k := range spriteKinds {
			p := core.Piece{Kind: k, Color: c}
			img, _, err := ebitenutil.NewImageFromFile(SpritePath(dir, p))
			if err != nil {
				return nil, fmt.Errorf("load sprite %s: %w", SpritePath(dir, p), err)
			}
			sprites[p] = img
		}
	}
	return sprites, nil
}

// Sounds plays one clip per effect
type Sounds struct {
	ctx   *audio.Context
	clips map[core.Effect][]byte
}

func LoadSounds(dir string) (*Sounds, error) {
	s := &Sounds{
		ctx:   audio.NewContext(sampleRate),
		clips: make(map[core.Effect][]byte, len(soundFiles)),
	}
	for e := range soundFiles {
		path := SoundPath(dir, e)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load sound: %w", err)
		}
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decode sound %s: %w", path, err)
		}
		pcm, err := io.ReadAll(stream)
		if err != nil {
			return nil, fmt.Errorf("decode sound %s: %w", path, err)
		}
		s.clips[e] = pcm
	}
	return s, nil
}

func (s *Sounds) Play(e core.Effect) {
	pcm, ok := s.clips[e]
	if !ok {
		return
	}
	s.ctx.NewPlayerFromBytes(pcm).Play()
}
