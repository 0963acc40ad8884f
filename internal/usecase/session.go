package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
	"github.com/rocketscienceinc/mnk-game/internal/tictactoe"
)

type stateRepo interface {
	Save(ctx context.Context, key string, state *entity.State) error
	GetByKey(ctx context.Context, key string) (*entity.State, error)
	DeleteByKey(ctx context.Context, key string) error
}

// GameSession drives one engine and keeps its record in a repository under a
// fixed key. Rule violations are reported as false results; errors are only
// returned for storage failures.
type GameSession struct {
	logger *slog.Logger
	repo   stateRepo
	key    string

	engine *tictactoe.Engine
}

func NewGameSession(logger *slog.Logger, repo stateRepo, key string, settings tictactoe.Settings) (*GameSession, error) {
	engine, err := tictactoe.NewEngine(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return &GameSession{
		logger: logger.With("component", "session", "key", key),
		repo:   repo,
		key:    key,
		engine: engine,
	}, nil
}

func (that *GameSession) GetGridSize() int {
	return that.engine.GetGridSize()
}

func (that *GameSession) GetBoard() entity.Board {
	return that.engine.GetBoard()
}

func (that *GameSession) GetCurrentPlayer() entity.Mark {
	return that.engine.GetCurrentPlayer()
}

func (that *GameSession) GetPlayerSymbols() entity.Players {
	return that.engine.GetPlayerSymbols()
}

func (that *GameSession) GetKAlignment() int {
	return that.engine.GetKAlignment()
}

func (that *GameSession) GetGameStatus() entity.Outcome {
	return that.engine.GetGameStatus()
}

func (that *GameSession) GetWinningLine() (entity.WinningLine, bool) {
	return that.engine.GetWinningLine()
}

func (that *GameSession) GetScores() entity.Scores {
	return that.engine.GetScores()
}

// CheckMove explains why PlayTurn would reject (row, col).
func (that *GameSession) CheckMove(row, col int) error {
	return that.engine.CheckMove(row, col)
}

// PlayTurn reports whether the move was accepted. Accepted moves are saved;
// a save failure is returned together with true.
func (that *GameSession) PlayTurn(ctx context.Context, row, col int) (bool, error) {
	log := that.logger.With("method", "PlayTurn")

	player := that.engine.GetCurrentPlayer()
	if err := that.engine.PlayTurn(row, col); err != nil {
		log.Debug("move rejected", "row", row, "col", col, "error", err)
		return false, nil
	}

	if status := that.engine.GetGameStatus(); status.GameWon {
		log.Info("game finished", "winner", status.Winner)
	} else {
		log.Debug("move played", "player", player, "row", row, "col", col)
	}

	return true, that.SaveState(ctx)
}

func (that *GameSession) ResizeBoard(ctx context.Context, newSize int) (bool, error) {
	if err := that.engine.ResizeBoard(newSize); err != nil {
		that.logger.Debug("resize rejected", "method", "ResizeBoard", "error", err)
		return false, nil
	}

	return true, that.SaveState(ctx)
}

func (that *GameSession) SetKAlignment(ctx context.Context, k int) (bool, error) {
	if err := that.engine.SetKAlignment(k); err != nil {
		that.logger.Debug("alignment rejected", "method", "SetKAlignment", "error", err)
		return false, nil
	}

	return true, that.SaveState(ctx)
}

// SetPlayerSymbol gives symbol to player one, who also takes the turn.
// Symbols other than X and O are ignored.
func (that *GameSession) SetPlayerSymbol(ctx context.Context, symbol entity.Mark) error {
	if err := that.engine.SetPlayerSymbol(symbol); err != nil {
		that.logger.Debug("symbol rejected", "method", "SetPlayerSymbol", "error", err)
		return nil
	}

	return that.SaveState(ctx)
}

func (that *GameSession) RestartGame(ctx context.Context) error {
	that.engine.RestartGame()

	return that.SaveState(ctx)
}

func (that *GameSession) IncrementScore(ctx context.Context, key string) error {
	if _, ok := that.engine.GetScores()[key]; !ok {
		return nil
	}

	that.engine.IncrementScore(key)

	return that.SaveState(ctx)
}

func (that *GameSession) ResetScores(ctx context.Context) error {
	that.engine.ResetScores()

	return that.SaveState(ctx)
}

func (that *GameSession) SaveState(ctx context.Context) error {
	if err := that.repo.Save(ctx, that.key, that.engine.State()); err != nil {
		that.logger.Error("failed to save game state", "method", "SaveState", "error", err)
		return fmt.Errorf("failed to save game state: %w", err)
	}

	return nil
}

// LoadState replaces the engine with the stored record. It returns false when
// nothing was loaded: the record is absent (nil error) or unreadable (error
// wrapping apperror.ErrCorruptState). In both cases the engine is untouched.
func (that *GameSession) LoadState(ctx context.Context) (bool, error) {
	log := that.logger.With("method", "LoadState")

	state, err := that.repo.GetByKey(ctx, that.key)
	if errors.Is(err, apperror.ErrStateNotFound) {
		log.Debug("no saved game")
		return false, nil
	}

	if err != nil {
		log.Error("failed to load game state", "error", err)
		return false, fmt.Errorf("failed to load game state: %w", err)
	}

	that.engine = tictactoe.FromState(state)
	log.Info("game resumed", "grid_size", state.GridSize, "k_alignment", state.KAlignment)

	return true, nil
}

// ClearState removes the stored record. The running game is kept.
func (that *GameSession) ClearState(ctx context.Context) error {
	if err := that.repo.DeleteByKey(ctx, that.key); err != nil {
		return fmt.Errorf("failed to clear game state: %w", err)
	}

	return nil
}
