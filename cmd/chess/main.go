// Package main plays against a UCI engine in a line console, one typed square per click.
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
	"chessclick/internal/cli"
	"chessclick/internal/config"
	"chessclick/internal/core"
	"chessclick/internal/game"

	"golang.org/x/term"
)

const historyFile = ".chess_history"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "chess: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse("chess", os.Args[1:])
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

	var console *cli.Console
	notify := game.NotifierFunc(func(e core.Effect) {
		if console != nil {
			console.Notify(e)
		}
	})

	sess, err := app.Start(ctx, cfg, notify)
	if err != nil {
		return err
	}
	defer sess.Close()

	rl, err := cli.NewReadline(historyFile)
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	theme, err := cli.ParseTheme(cfg.Theme)
	if err != nil {
		return err
	}
	plain := !term.IsTerminal(int(os.Stdout.Fd()))
	console = cli.New(sess.Game, rl, os.Stdout, theme, plain)
	return console.Run(ctx)
}
