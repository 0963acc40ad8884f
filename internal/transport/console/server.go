package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

var (
	ErrUnknownAction = errors.New("unknown action")
	ErrBadArguments  = errors.New("bad arguments")

	errQuit = errors.New("quit")
)

type gameSession interface {
	GetGridSize() int
	GetBoard() entity.Board
	GetCurrentPlayer() entity.Mark
	GetPlayerSymbols() entity.Players
	GetKAlignment() int
	GetGameStatus() entity.Outcome
	GetWinningLine() (entity.WinningLine, bool)
	GetScores() entity.Scores
	CheckMove(row, col int) error

	PlayTurn(ctx context.Context, row, col int) (bool, error)
	ResizeBoard(ctx context.Context, newSize int) (bool, error)
	SetKAlignment(ctx context.Context, k int) (bool, error)
	SetPlayerSymbol(ctx context.Context, symbol entity.Mark) error
	RestartGame(ctx context.Context) error
	IncrementScore(ctx context.Context, key string) error
	ResetScores(ctx context.Context) error

	SaveState(ctx context.Context) error
	LoadState(ctx context.Context) (bool, error)
	ClearState(ctx context.Context) error
}

// Message is one input line split into an action and its arguments.
type Message struct {
	Action string
	Args   []string
}

func ParseMessage(line string) (Message, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Message{}, false
	}

	return Message{Action: strings.ToLower(fields[0]), Args: fields[1:]}, true
}

// Server is a line-oriented front end for a game session.
type Server struct {
	logger   *slog.Logger
	session  gameSession
	handlers map[string]func(ctx context.Context, message *Message, out io.Writer) error
}

func New(logger *slog.Logger, session gameSession) *Server {
	server := &Server{
		logger:   logger.With("component", "console"),
		session:  session,
		handlers: make(map[string]func(context.Context, *Message, io.Writer) error),
	}

	server.handlers["move"] = server.handleMove
	server.handlers["size"] = server.handleSize
	server.handlers["k"] = server.handleAlignment
	server.handlers["symbol"] = server.handleSymbol
	server.handlers["restart"] = server.handleRestart
	server.handlers["board"] = server.handleBoard
	server.handlers["scores"] = server.handleScores
	server.handlers["score"] = server.handleIncrementScore
	server.handlers["reset-scores"] = server.handleResetScores
	server.handlers["save"] = server.handleSave
	server.handlers["load"] = server.handleLoad
	server.handlers["clear"] = server.handleClear
	server.handlers["help"] = server.handleHelp
	server.handlers["quit"] = server.handleQuit

	return server
}

// Serve reads commands from in until EOF, "quit" or ctx is done.
func (that *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log := that.logger.With("method", "Serve")

	if err := that.handleBoard(ctx, nil, out); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(in)
		defer func() {
			readErr <- scanner.Err()
			close(lines)
		}()

		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("context canceled, stopping console")
			return nil
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				return nil
			}

			if err := that.HandleLine(ctx, line, out); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				return err
			}
		}
	}
}

// HandleLine runs a single command. Input mistakes are printed to out and
// only output or storage failures are returned.
func (that *Server) HandleLine(ctx context.Context, line string, out io.Writer) error {
	message, ok := ParseMessage(line)
	if !ok {
		return nil
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		that.logger.Debug("unknown action", "action", message.Action)
		return writef(out, "%s: %q, type \"help\"\n", ErrUnknownAction, message.Action)
	}

	err := handler(ctx, &message, out)
	if errors.Is(err, ErrBadArguments) {
		return writef(out, "%s\n", err)
	}

	return err
}

func writef(out io.Writer, format string, args ...any) error {
	if _, err := fmt.Fprintf(out, format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return nil
}
