// Package main plays against a UCI engine in a full-screen terminal with mouse input.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chessclick/internal/app"
	"chessclick/internal/config"
	"chessclick/internal/term"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "chess-term: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse("chess-term", os.Args[1:])
	if err != nil {
		return err
	}
	if cfg.LogFile == "-" {
		// The screen owns stderr
		cfg.LogFile = config.DefaultLogFile
	}
	logFile, err := cfg.InitLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	ui := term.New(screen, term.ThemeNamed(cfg.Theme))
	sess, err := app.Start(ctx, cfg, ui)
	if err != nil {
		return err
	}
	defer sess.Close()

	ui.Attach(sess.Game)
	return ui.Run(ctx)
}
