// FILE: internal/cli/console.go
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"chessclick/internal/board"
	"chessclick/internal/core"
	"chessclick/internal/game"
	"chessclick/internal/view"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

type CommandType int

const (
	CmdNone CommandType = iota
	CmdClick
	CmdMove
	CmdRestart
	CmdBoard
	CmdColor
	CmdHistory
	CmdHelp
	CmdQuit
	CmdUnknown
)

type Command struct {
	Type    CommandType
	Squares []core.Square // CmdClick: one, CmdMove: from and to
	Args    []string
	Raw     string
}

// LineReader is the line editor the console reads from
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

// Console plays a session from typed squares. Every typed square is one click.
type Console struct {
	game   *game.Game
	rl     LineReader
	output io.Writer
	theme  ColorTheme
	plain  bool // No colors and no prompt decoration

	info  func(a ...interface{}) string
	warn  func(a ...interface{}) string
	alert func(a ...interface{}) string
}

// NewReadline opens an interactive line editor with history
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "chess > ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
}

func New(g *game.Game, rl LineReader, output io.Writer, theme ColorTheme, plain bool) *Console {
	c := &Console{
		game:   g,
		rl:     rl,
		output: output,
		theme:  theme,
		plain:  plain,
		info:   color.New(color.FgCyan).SprintFunc(),
		warn:   color.New(color.FgYellow).SprintFunc(),
		alert:  color.New(color.FgRed, color.Bold).SprintFunc(),
	}
	if plain {
		c.theme = ThemeOff
		c.info = fmt.Sprint
		c.warn = fmt.Sprint
		c.alert = fmt.Sprint
	}
	return c
}

// Notify prints effects as they happen. Register the console as the
// session's notifier to see them.
func (c *Console) Notify(e core.Effect) {
	switch e {
	case core.EffectCheck:
		c.ShowMessage(c.warn("Check!"))
	case core.EffectGameOver, core.EffectStalemate:
		c.ShowMessage(c.alert(view.Headline(c.game.Snapshot().Terminal)))
		c.ShowMessage("Type 'restart' to play again.")
	case core.EffectStart:
		c.ShowMessage(c.info("New game."))
	}
}

// Run reads commands until quit, EOF or a fatal session error
func (c *Console) Run(ctx context.Context) error {
	c.ShowWelcome()
	if err := c.game.Settle(ctx); err != nil {
		return err
	}
	c.DisplayBoard()

	for {
		c.rl.SetPrompt(c.prompt())
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			if line == "" {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}

		quit, err := c.Execute(ctx, ParseCommand(line))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Execute runs one command. Board-changing commands wait for the engine's
// reply before returning.
func (c *Console) Execute(ctx context.Context, cmd Command) (quit bool, err error) {
	switch cmd.Type {
	case CmdNone:
		return false, nil
	case CmdQuit:
		return true, nil
	case CmdHelp:
		c.ShowHelp()
		return false, nil
	case CmdBoard:
		c.DisplayBoard()
		return false, nil
	case CmdHistory:
		c.ShowHistory()
		return false, nil
	case CmdColor:
		if len(cmd.Args) != 1 {
			c.ShowMessage("Usage: color <off|brown|green|gray>")
			return false, nil
		}
		theme, err := ParseTheme(cmd.Args[0])
		if err != nil {
			c.ShowError(err)
			return false, nil
		}
		if !c.plain {
			c.theme = theme
		}
		c.DisplayBoard()
		return false, nil
	case CmdUnknown:
		c.ShowMessage(c.warn(fmt.Sprintf("Unknown command %q, type 'help'", cmd.Raw)))
		return false, nil
	case CmdRestart:
		c.game.Submit(game.Restart())
	case CmdClick, CmdMove:
		if pending, ok := c.game.Snapshot().Selection.Pending(); ok && cmd.Type == CmdMove {
			// Deselect first so the move's own first click selects
			c.game.Submit(game.Click(pending))
		}
		for _, sq := range cmd.Squares {
			c.game.Submit(game.Click(sq))
		}
	}

	before := len(c.game.Snapshot().Moves)
	if err := c.game.Settle(ctx); err != nil {
		if !game.IsFatal(err) {
			return true, nil
		}
		return true, err
	}
	snap := c.game.Snapshot()
	if cmd.Type == CmdMove && len(snap.Moves) == before {
		c.ShowMessage(c.warn(fmt.Sprintf("Illegal move %s", cmd.Raw)))
	}
	c.showMoves(snap, before)
	c.DisplayBoard()
	return false, nil
}

// ParseCommand turns an input line into a command. A square is a click and a
// UCI move is shorthand for two clicks.
func ParseCommand(input string) Command {
	input = strings.TrimSpace(input)
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return Command{Type: CmdNone}
	}

	word := strings.ToLower(parts[0])
	args := parts[1:]
	switch word {
	case "restart", "new":
		return Command{Type: CmdRestart, Raw: input}
	case "board", "b":
		return Command{Type: CmdBoard, Raw: input}
	case "color":
		return Command{Type: CmdColor, Args: args, Raw: input}
	case "history", "moves":
		return Command{Type: CmdHistory, Raw: input}
	case "help", "?":
		return Command{Type: CmdHelp, Raw: input}
	case "quit", "exit", "q":
		return Command{Type: CmdQuit, Raw: input}
	}

	if sq, err := core.ParseSquare(word); err == nil && len(args) == 0 {
		return Command{Type: CmdClick, Squares: []core.Square{sq}, Raw: input}
	}
	if m, err := core.ParseMove(word); err == nil && len(args) == 0 {
		// Promotion letters are not clicks, the controller picks the piece
		return Command{Type: CmdMove, Squares: []core.Square{m.From, m.To}, Raw: input}
	}
	return Command{Type: CmdUnknown, Raw: input}
}

func (c *Console) prompt() string {
	snap := c.game.Snapshot()
	p := "chess"
	if sq, ok := snap.Selection.Pending(); ok {
		p += " " + sq.String()
	}
	if c.plain {
		return p + " > "
	}
	return color.New(color.FgYellow).Sprint(p + " > ")
}

func (c *Console) showMoves(s game.Snapshot, from int) {
	if from > len(s.Moves) {
		return
	}
	for i := from; i < len(s.Moves); i++ {
		mover := core.ColorWhite
		if i%2 == 1 {
			mover = core.ColorBlack
		}
		who := "You"
		if mover != s.Human {
			who = "Engine"
		}
		c.ShowMessage(fmt.Sprintf("%s (%s): %s", who, mover, s.Moves[i]))
	}
}

func (c *Console) ShowMessage(msg string) {
	fmt.Fprintln(c.output, msg)
}

func (c *Console) ShowError(err error) {
	c.ShowMessage(c.alert(fmt.Sprintf("Error: %v", err)))
}

func (c *Console) DisplayBoard() {
	snap := c.game.Snapshot()
	if c.plain {
		c.ShowMessage(board.ToASCII(snap.Board))
	} else {
		c.ShowMessage(RenderBoard(snap, c.theme))
	}
	c.ShowMessage(c.info(view.Status(snap)))
}

func (c *Console) ShowHistory() {
	moves := c.game.Snapshot().Moves
	if len(moves) == 0 {
		c.ShowMessage("No moves yet.")
		return
	}
	for i := 0; i < len(moves); i += 2 {
		if i+1 < len(moves) {
			c.ShowMessage(fmt.Sprintf("%d. %s | %s", i/2+1, moves[i], moves[i+1]))
		} else {
			c.ShowMessage(fmt.Sprintf("%d. %s | ...", i/2+1, moves[i]))
		}
	}
}

func (c *Console) ShowHelp() {
	help := `Commands:
  <square>         - Click a square (e.g., e2 selects, e4 moves)
  <move>           - Two clicks at once (e.g., e2e4)
  restart/new      - Start a new game
  board            - Show the board
  history          - Show the moves played
  color <theme>    - Set board color theme (off|brown|green|gray)
  quit/exit        - Exit the program
  help/?           - Show this help message`

	c.ShowMessage(help)
}

func (c *Console) ShowWelcome() {
	c.ShowMessage(c.info("Welcome to Chess!"))
	c.ShowMessage(fmt.Sprintf("You play %s. Select a piece by typing its square, then type the destination.",
		c.game.Snapshot().Human))
	c.ShowMessage("Type 'help' for commands.")
}
