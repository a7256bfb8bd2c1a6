// Package config holds the command-line settings shared by the binaries.
package config

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"reflect"
	"strings"
	"time"

	"chessclick/internal/core"
	"chessclick/internal/engine"

	"github.com/go-playground/validator/v10"
)

const DefaultLogFile = "chess.log"

var validate = validator.New()

type Config struct {
	// Name is the binary name, used as the log prefix
	Name       string
	Color      string  `validate:"oneof=white black"`
	EnginePath string  `validate:"required"`
	ThinkTime  float64 `validate:"gt=0,lte=60"` // Seconds per engine move
	Skill      int     `validate:"min=-1,max=20"`
	LogFile    string
	Assets     string
	SquareSize int    `validate:"min=16,max=256"`
	Theme      string `validate:"oneof=off brown green gray"`
}

func Default() Config {
	return Config{
		Color:      "white",
		EnginePath: engine.DefaultPath,
		ThinkTime:  1.0,
		Skill:      -1,
		LogFile:    DefaultLogFile,
		Assets:     "assets",
		SquareSize: 64,
		Theme:      "off",
	}
}

// RegisterFlags binds the settings to fs with c's current values as defaults
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Color, "color", c.Color, "Side the human plays: white or black")
	fs.StringVar(&c.EnginePath, "engine", c.EnginePath, "Path to a UCI engine binary")
	fs.Float64Var(&c.ThinkTime, "think", c.ThinkTime, "Engine think time per move in seconds")
	fs.IntVar(&c.Skill, "skill", c.Skill, "Engine skill level 0-20, -1 keeps the engine default")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "Log file path, - logs to stderr")
	fs.StringVar(&c.Assets, "assets", c.Assets, "Directory holding imgs/ and sounds/")
	fs.IntVar(&c.SquareSize, "square", c.SquareSize, "Square size in pixels")
	fs.StringVar(&c.Theme, "theme", c.Theme, "Console board theme: off, brown, green or gray")
}

// Parse reads args into a default config and validates it
func Parse(name string, args []string) (Config, error) {
	c := Default()
	c.Name = name
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	c.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return c, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	c.Color = strings.ToLower(c.Color)
	c.Theme = strings.ToLower(c.Theme)
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	var details strings.Builder
	for _, e := range errs {
		if details.Len() > 0 {
			details.WriteString("; ")
		}
		switch e.Tag() {
		case "required":
			details.WriteString(fmt.Sprintf("%s is required", e.Field()))
		case "oneof":
			details.WriteString(fmt.Sprintf("%s must be one of [%s]", e.Field(), e.Param()))
		case "gt":
			details.WriteString(fmt.Sprintf("%s must be greater than %s", e.Field(), e.Param()))
		case "min":
			if e.Type().Kind() == reflect.String {
				details.WriteString(fmt.Sprintf("%s must be at least %s characters", e.Field(), e.Param()))
			} else {
				details.WriteString(fmt.Sprintf("%s must be at least %s", e.Field(), e.Param()))
			}
		case "max", "lte":
			details.WriteString(fmt.Sprintf("%s must be at most %s", e.Field(), e.Param()))
		default:
			details.WriteString(fmt.Sprintf("%s failed %s validation", e.Field(), e.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", details.String())
}

func (c Config) HumanColor() core.Color {
	if color, ok := core.ParseColor(strings.ToLower(c.Color)); ok {
		return color
	}
	return core.ColorWhite
}

func (c Config) ThinkDuration() time.Duration {
	return time.Duration(c.ThinkTime * float64(time.Second))
}

func (c Config) EngineOptions() engine.Options {
	return engine.Options{Path: c.EnginePath, SkillLevel: c.Skill}
}

// InitLog sends the standard logger to the configured file. Front-ends that
// own the terminal must not log to stderr.
func (c Config) InitLog() (io.Closer, error) {
	if c.LogFile == "" || c.LogFile == "-" {
		log.SetOutput(os.Stderr)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.SetOutput(f)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	if c.Name != "" {
		log.SetPrefix(c.Name + ": ")
	}
	return f, nil
}
