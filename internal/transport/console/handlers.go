package console

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

const helpText = `commands:
  move <row> <col>   place the current mark (or: move <index>, index = row*N+col)
  size <n>           new game on an n x n grid (3-13)
  k <n>              marks in a row needed to win (3-N)
  symbol <X|O>       symbol of player one, who then has the turn
  restart            new game, scores are kept
  board              show the board
  scores             show the scoreboard
  score <X|O|draw>   add a point
  reset-scores       zero the scoreboard
  save | load        write or read the saved game
  clear              delete the saved game
  quit
`

func (that *Server) handleMove(ctx context.Context, message *Message, out io.Writer) error {
	row, col, err := that.parseCell(message.Args)
	if err != nil {
		return err
	}

	reason := that.session.CheckMove(row, col)

	ok, err := that.session.PlayTurn(ctx, row, col)
	if err != nil {
		return fmt.Errorf("failed to play turn: %w", err)
	}

	if !ok {
		return writef(out, "move rejected: %s\n", reason)
	}

	return that.handleBoard(ctx, message, out)
}

func (that *Server) parseCell(args []string) (int, int, error) {
	switch len(args) {
	case 1:
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, 0, fmt.Errorf("%w: cell index %q", ErrBadArguments, args[0])
		}

		size := that.session.GetGridSize()
		if index < 0 || index >= size*size {
			return 0, 0, fmt.Errorf("%w: cell index %d is outside 0-%d", ErrBadArguments, index, size*size-1)
		}

		return index / size, index % size, nil
	case 2:
		row, rowErr := strconv.Atoi(args[0])
		col, colErr := strconv.Atoi(args[1])
		if rowErr != nil || colErr != nil {
			return 0, 0, fmt.Errorf("%w: row and col must be numbers", ErrBadArguments)
		}

		return row, col, nil
	default:
		return 0, 0, fmt.Errorf("%w: usage: move <row> <col>", ErrBadArguments)
	}
}

func (that *Server) handleSize(ctx context.Context, message *Message, out io.Writer) error {
	size, err := singleNumber(message.Args, "size <n>")
	if err != nil {
		return err
	}

	ok, err := that.session.ResizeBoard(ctx, size)
	if err != nil {
		return fmt.Errorf("failed to resize board: %w", err)
	}

	if !ok {
		return writef(out, "grid size must be between %d and %d\n", entity.MinGridSize, entity.MaxGridSize)
	}

	return that.handleBoard(ctx, message, out)
}

func (that *Server) handleAlignment(ctx context.Context, message *Message, out io.Writer) error {
	k, err := singleNumber(message.Args, "k <n>")
	if err != nil {
		return err
	}

	ok, err := that.session.SetKAlignment(ctx, k)
	if err != nil {
		return fmt.Errorf("failed to set alignment: %w", err)
	}

	if !ok {
		return writef(out, "alignment must be between %d and %d\n", entity.MinAlignment, that.session.GetGridSize())
	}

	return writef(out, "%d in a row wins\n", that.session.GetKAlignment())
}

func (that *Server) handleSymbol(ctx context.Context, message *Message, out io.Writer) error {
	if len(message.Args) != 1 {
		return fmt.Errorf("%w: usage: symbol <X|O>", ErrBadArguments)
	}

	symbol, err := entity.ParseMark(message.Args[0])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBadArguments, err)
	}

	if err = that.session.SetPlayerSymbol(ctx, symbol); err != nil {
		return fmt.Errorf("failed to set player symbol: %w", err)
	}

	return that.handleBoard(ctx, message, out)
}

func (that *Server) handleRestart(ctx context.Context, message *Message, out io.Writer) error {
	if err := that.session.RestartGame(ctx); err != nil {
		return fmt.Errorf("failed to restart game: %w", err)
	}

	return that.handleBoard(ctx, message, out)
}

func (that *Server) handleBoard(_ context.Context, _ *Message, out io.Writer) error {
	line, _ := that.session.GetWinningLine()

	view := View{
		Board:         that.session.GetBoard(),
		KAlignment:    that.session.GetKAlignment(),
		CurrentPlayer: that.session.GetCurrentPlayer(),
		Status:        that.session.GetGameStatus(),
		WinningLine:   line,
	}

	return writef(out, "%s", view.Render())
}

func (that *Server) handleScores(_ context.Context, _ *Message, out io.Writer) error {
	scores := that.session.GetScores()
	players := that.session.GetPlayerSymbols()

	return writef(out, "P1 (%s): %d  P2 (%s): %d  draws: %d\n",
		players.First, scores[string(players.First)],
		players.Second, scores[string(players.Second)],
		scores[entity.DrawKey])
}

func (that *Server) handleIncrementScore(ctx context.Context, message *Message, out io.Writer) error {
	if len(message.Args) != 1 {
		return fmt.Errorf("%w: usage: score <X|O|draw>", ErrBadArguments)
	}

	if err := that.session.IncrementScore(ctx, message.Args[0]); err != nil {
		return fmt.Errorf("failed to increment score: %w", err)
	}

	return that.handleScores(ctx, message, out)
}

func (that *Server) handleResetScores(ctx context.Context, message *Message, out io.Writer) error {
	if err := that.session.ResetScores(ctx); err != nil {
		return fmt.Errorf("failed to reset scores: %w", err)
	}

	return that.handleScores(ctx, message, out)
}

func (that *Server) handleSave(ctx context.Context, _ *Message, out io.Writer) error {
	if err := that.session.SaveState(ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	return writef(out, "game saved\n")
}

// handleLoad reports unreadable records to the user instead of stopping the console.
func (that *Server) handleLoad(ctx context.Context, message *Message, out io.Writer) error {
	loaded, err := that.session.LoadState(ctx)
	if err != nil {
		return writef(out, "saved game could not be loaded: %s\n", err)
	}

	if !loaded {
		return writef(out, "no saved game\n")
	}

	return that.handleBoard(ctx, message, out)
}

func (that *Server) handleClear(ctx context.Context, _ *Message, out io.Writer) error {
	if err := that.session.ClearState(ctx); err != nil {
		return fmt.Errorf("failed to clear saved game: %w", err)
	}

	return writef(out, "saved game deleted\n")
}

func (that *Server) handleHelp(_ context.Context, _ *Message, out io.Writer) error {
	return writef(out, "%s", helpText)
}

func (that *Server) handleQuit(_ context.Context, _ *Message, _ io.Writer) error {
	return errQuit
}

func singleNumber(args []string, usage string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: usage: %s", ErrBadArguments, usage)
	}

	value, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrBadArguments, args[0])
	}

	return value, nil
}
