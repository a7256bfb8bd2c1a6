// FILE: internal/engine/engine.go
package engine

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strings"
	"sync"
	"time"

	"chessclick/internal/core"
)

const (
	DefaultPath      = "stockfish"
	handshakeTimeout = 5 * time.Second
	quitTimeout      = 1 * time.Second
)

// stopDrainTimeout bounds the wait for the bestmove that answers stop
var stopDrainTimeout = 2 * time.Second

// Options configure the engine process
type Options struct {
	Path       string
	Args       []string
	Env        []string // Appended to the parent environment when set
	SkillLevel int      // 0-20, negative keeps the engine default
}

// Request is a single search request
type Request struct {
	InitialFEN string
	Moves      []core.Move
	NewGame    bool // Send ucinewgame before positioning
	MoveTime   time.Duration
}

type SearchResult struct {
	BestMove string
	Score    int
	Depth    int
	IsMate   bool
	MateIn   int
}

// UCI is a move-generating engine speaking the UCI line protocol over stdin/stdout
type UCI struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	lines chan string // Closed when the process stops writing
	mu    sync.Mutex
	name  string

	// Set when a stopped search was never drained; its bestmove may still arrive
	broken error
}

// New starts the engine process and completes the uci/isready handshake
func New(ctx context.Context, opts Options) (*UCI, error) {
	path := opts.Path
	if path == "" {
		path = DefaultPath
	}
	cmd := exec.Command(path, opts.Args...)
	if len(opts.Env) > 0 {
		cmd.Env = append(cmd.Environ(), opts.Env...)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err = cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: failed to start engine %q: %v", core.ErrEngineProtocol, path, err)
	}

	uci := &UCI{
		cmd:   cmd,
		stdin: stdin,
		lines: make(chan string, 64),
		name:  path,
	}
	go uci.readLoop(stdout)

	if err := uci.initialize(ctx, opts.SkillLevel); err != nil {
		uci.Close()
		return nil, err
	}

	log.Printf("engine: %s ready (pid %d)", uci.name, cmd.Process.Pid)
	return uci, nil
}

// readLoop is the only reader of stdout
func (u *UCI) readLoop(r io.Reader) {
	defer close(u.lines)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		u.lines <- scanner.Text()
	}
}

func (u *UCI) initialize(ctx context.Context, skill int) error {
	if err := u.sendCommand("uci"); err != nil {
		return err
	}
	if _, err := u.waitFor(ctx, handshakeTimeout, "uciok", func(line string) bool {
		return line == "uciok"
	}); err != nil {
		return err
	}

	if skill >= 0 {
		u.setSkillLevel(skill)
	}
	return u.waitReady(ctx)
}

// setSkillLevel sets the Stockfish skill level (0-20)
func (u *UCI) setSkillLevel(level int) {
	if level > 20 {
		level = 20
	}
	u.sendCommand(fmt.Sprintf("setoption name Skill Level value %d", level))
}

func (u *UCI) waitReady(ctx context.Context) error {
	if err := u.sendCommand("isready"); err != nil {
		return err
	}
	_, err := u.waitFor(ctx, handshakeTimeout, "readyok", func(line string) bool {
		return line == "readyok"
	})
	return err
}

// waitFor consumes lines until match accepts one, other lines are dropped
func (u *UCI) waitFor(ctx context.Context, timeout time.Duration, what string, match func(string) bool) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case line, ok := <-u.lines:
			if !ok {
				return "", fmt.Errorf("%w: engine closed unexpectedly waiting for %s", core.ErrEngineProtocol, what)
			}
			if match(line) {
				return line, nil
			}
		case <-timer.C:
			return "", fmt.Errorf("%w: timeout waiting for %s", core.ErrEngineProtocol, what)
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

func (u *UCI) sendCommand(cmd string) error {
	if _, err := fmt.Fprintln(u.stdin, cmd); err != nil {
		return fmt.Errorf("%w: write %q: %v", core.ErrEngineProtocol, cmd, err)
	}
	return nil
}

func positionCommand(fen string, moves []core.Move) string {
	cmd := "position startpos"
	if fen != "" {
		cmd = fmt.Sprintf("position fen %s", fen)
	}
	if len(moves) > 0 {
		uci := make([]string, len(moves))
		for i, m := range moves {
			uci[i] = m.String()
		}
		cmd += " moves " + strings.Join(uci, " ")
	}
	return cmd
}

// Search runs one timed search. Cancelling ctx stops the engine, drains the
// pending bestmove and returns ctx.Err().
func (u *UCI) Search(ctx context.Context, req Request) (*SearchResult, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.broken != nil {
		return nil, u.broken
	}

	if req.NewGame {
		if err := u.sendCommand("ucinewgame"); err != nil {
			return nil, err
		}
		if err := u.waitReady(ctx); err != nil {
			return nil, err
		}
	}

	timeMs := req.MoveTime.Milliseconds()
	if timeMs <= 0 {
		timeMs = 1000
	}
	if err := u.sendCommand(positionCommand(req.InitialFEN, req.Moves)); err != nil {
		return nil, err
	}
	if err := u.sendCommand(fmt.Sprintf("go movetime %d", timeMs)); err != nil {
		return nil, err
	}

	result := &SearchResult{}

	// Timeout protection (2x the search time + buffer)
	timeout := time.Duration(timeMs*2+1000) * time.Millisecond
	line, err := u.waitFor(ctx, timeout, "bestmove", func(line string) bool {
		if strings.HasPrefix(line, "info ") {
			parseInfo(line, result)
			return false
		}
		return strings.HasPrefix(line, "bestmove")
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if serr := u.stop(); serr != nil {
				u.broken = serr
				log.Printf("engine: %s unusable: %v", u.name, serr)
			}
		}
		return nil, err
	}

	parts := strings.Fields(line)
	if len(parts) >= 2 {
		result.BestMove = parts[1]
	}
	return result, nil
}

// stop interrupts a running search and discards its bestmove. An error means
// the engine's output can no longer be matched to requests.
func (u *UCI) stop() error {
	if err := u.sendCommand("stop"); err != nil {
		return err
	}
	if _, err := u.waitFor(context.Background(), stopDrainTimeout, "bestmove", func(line string) bool {
		return strings.HasPrefix(line, "bestmove")
	}); err != nil {
		return fmt.Errorf("%w: drain after stop: %v", core.ErrEngineProtocol, err)
	}
	return nil
}

func parseInfo(line string, result *SearchResult) {
	fields := strings.Fields(line)
	for i := 0; i < len(fields)-1; i++ {
		switch fields[i] {
		case "depth":
			fmt.Sscanf(fields[i+1], "%d", &result.Depth)
		case "cp":
			fmt.Sscanf(fields[i+1], "%d", &result.Score)
			result.IsMate = false
		case "mate":
			fmt.Sscanf(fields[i+1], "%d", &result.MateIn)
			result.IsMate = true
			// Mate scores map onto a large centipawn value
			if result.MateIn > 0 {
				result.Score = 100000 - result.MateIn
			} else {
				result.Score = -100000 - result.MateIn
			}
		}
	}
}

// Close asks the engine to quit and kills it if it does not
func (u *UCI) Close() error {
	u.sendCommand("quit")

	done := make(chan error, 1)
	go func() {
		done <- u.cmd.Wait()
	}()

	select {
	case <-done:
		log.Printf("engine: %s exited", u.name)
		return nil
	case <-time.After(quitTimeout):
		log.Printf("engine: %s did not quit, killing", u.name)
		return u.cmd.Process.Kill()
	}
}
