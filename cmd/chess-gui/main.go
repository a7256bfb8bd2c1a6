// Package main plays against a UCI engine in a window, clicking a piece and then its destination.
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
	"chessclick/internal/gui"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "chess-gui: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse("chess-gui", os.Args[1:])
	if err != nil {
		return err
	}
	logFile, err := cfg.InitLog()
	if err != nil {
		return err
	}
	defer logFile.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Assets first, a missing sprite or sound should fail before the engine starts
	win, err := gui.New(ctx, cfg.Assets, cfg.SquareSize)
	if err != nil {
		return err
	}

	sess, err := app.Start(ctx, cfg, win)
	if err != nil {
		return err
	}
	defer sess.Close()

	win.Attach(sess.Game)
	return win.Run()
}
