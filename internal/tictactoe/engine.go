package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

// Settings is the configuration a new engine starts from.
type Settings struct {
	GridSize     int
	KAlignment   int
	PlayerSymbol entity.Mark
}

func DefaultSettings() Settings {
	return Settings{
		GridSize:     entity.DefaultGridSize,
		KAlignment:   entity.DefaultAlignment,
		PlayerSymbol: entity.PlayerX,
	}
}

func (that Settings) Validate() error {
	if !entity.ValidGridSize(that.GridSize) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidGridSize, that.GridSize)
	}

	if !entity.ValidAlignment(that.KAlignment, that.GridSize) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidAlignment, that.KAlignment)
	}

	if !that.PlayerSymbol.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, that.PlayerSymbol)
	}

	return nil
}

// Engine owns the board, the configuration, the turn, the outcome and the
// scoreboard of one game session. It is not safe for concurrent use; run one
// engine per session.
type Engine struct {
	board         entity.Board
	gridSize      int
	kAlignment    int
	players       entity.Players
	currentPlayer entity.Mark
	outcome       entity.Outcome
	winningLine   *entity.WinningLine
	scores        entity.Scores
}

func NewEngine(settings Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	players := entity.NewPlayers(settings.PlayerSymbol)

	return &Engine{
		board:         entity.NewBoard(settings.GridSize),
		gridSize:      settings.GridSize,
		kAlignment:    settings.KAlignment,
		players:       players,
		currentPlayer: players.First,
		scores:        entity.NewScores(),
	}, nil
}

// FromState restores an engine from a record. The record is normalized first,
// so any decoded state is accepted.
func FromState(state *entity.State) *Engine {
	restored := *state
	restored.Board = state.Board.Clone()
	restored.Scores = state.Scores.Clone()
	restored.Normalize()

	var line *entity.WinningLine
	if restored.WinningLine != nil {
		copied := *restored.WinningLine
		line = &copied
	}

	return &Engine{
		board:         restored.Board,
		gridSize:      restored.GridSize,
		kAlignment:    restored.KAlignment,
		players:       entity.Players{First: restored.Player1Symbol, Second: restored.Player2Symbol},
		currentPlayer: restored.CurrentPlayer,
		outcome:       entity.Outcome{GameWon: restored.GameWon, Winner: restored.Winner},
		winningLine:   line,
		scores:        restored.Scores,
	}
}

// State returns a snapshot for persistence. It shares nothing with the engine.
func (that *Engine) State() *entity.State {
	var line *entity.WinningLine
	if that.winningLine != nil {
		copied := *that.winningLine
		line = &copied
	}

	return &entity.State{
		Board:         that.board.Clone(),
		CurrentPlayer: that.currentPlayer,
		GridSize:      that.gridSize,
		Player1Symbol: that.players.First,
		Player2Symbol: that.players.Second,
		KAlignment:    that.kAlignment,
		GameWon:       that.outcome.GameWon,
		Winner:        that.outcome.Winner,
		WinningLine:   line,
		Scores:        that.scores.Clone(),
	}
}

func (that *Engine) GetGridSize() int {
	return that.gridSize
}

// GetBoard returns a copy of the board.
func (that *Engine) GetBoard() entity.Board {
	return that.board.Clone()
}

func (that *Engine) GetCurrentPlayer() entity.Mark {
	return that.currentPlayer
}

func (that *Engine) GetPlayerSymbols() entity.Players {
	return that.players
}

func (that *Engine) GetKAlignment() int {
	return that.kAlignment
}

func (that *Engine) GetGameStatus() entity.Outcome {
	return that.outcome
}

func (that *Engine) GetWinningLine() (entity.WinningLine, bool) {
	if that.winningLine == nil {
		return entity.WinningLine{}, false
	}

	return *that.winningLine, true
}

// GetScores returns a copy of the scoreboard.
func (that *Engine) GetScores() entity.Scores {
	return that.scores.Clone()
}

func (that *Engine) IsFinished() bool {
	return that.outcome.GameWon
}

// ResizeBoard starts a new game on a newSize grid. The alignment is lowered to
// newSize when it no longer fits. Scores are kept.
func (that *Engine) ResizeBoard(newSize int) error {
	if !entity.ValidGridSize(newSize) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidGridSize, newSize)
	}

	that.gridSize = newSize
	if that.kAlignment > newSize {
		that.kAlignment = newSize
	}

	that.RestartGame()

	return nil
}

// SetKAlignment changes the win condition. The outcome is cleared but the
// placed marks stay and are not checked again against the new alignment.
func (that *Engine) SetKAlignment(k int) error {
	if !entity.ValidAlignment(k, that.gridSize) {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidAlignment, k)
	}

	that.kAlignment = k
	that.clearOutcome()

	return nil
}

// SetPlayerSymbol gives symbol to player one and the other symbol to player two.
// Player one gets the turn even when marks are already on the board.
func (that *Engine) SetPlayerSymbol(symbol entity.Mark) error {
	if !symbol.IsPlayer() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, symbol)
	}

	that.players = entity.NewPlayers(symbol)
	that.currentPlayer = that.players.First

	return nil
}

// CheckMove reports why a move at (row, col) would be rejected, or nil.
func (that *Engine) CheckMove(row, col int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !that.board.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", apperror.ErrInvalidCell, row, col)
	}

	if that.board[row][col] != entity.EmptyCell {
		return apperror.ErrCellOccupied
	}

	return nil
}

// PlayTurn places the current player's mark at (row, col). A rejected move
// leaves the engine untouched.
func (that *Engine) PlayTurn(row, col int) error {
	if err := that.CheckMove(row, col); err != nil {
		return err
	}

	that.board[row][col] = that.currentPlayer
	that.updateGameStatus()

	return nil
}

func (that *Engine) updateGameStatus() {
	if line, found := CheckWin(that.board, that.kAlignment, that.currentPlayer); found {
		that.outcome = entity.Outcome{GameWon: true, Winner: string(that.currentPlayer)}
		that.winningLine = &line
		that.IncrementScore(string(that.currentPlayer))

		return
	}

	if that.board.IsFull() {
		that.outcome = entity.Outcome{GameWon: true, Winner: entity.DrawKey}
		that.IncrementScore(entity.DrawKey)

		return
	}

	that.currentPlayer = that.players.Other(that.currentPlayer)
}

// RestartGame starts a new game with the current configuration. Scores are kept.
func (that *Engine) RestartGame() {
	that.board = entity.NewBoard(that.gridSize)
	that.currentPlayer = that.players.First
	that.clearOutcome()
}

// IncrementScore bumps the counter of a player symbol or entity.DrawKey.
// Other keys are ignored.
func (that *Engine) IncrementScore(key string) {
	if _, ok := that.scores[key]; ok {
		that.scores[key]++
	}
}

func (that *Engine) ResetScores() {
	that.scores = entity.NewScores()
}

func (that *Engine) clearOutcome() {
	that.outcome = entity.Outcome{}
	that.winningLine = nil
}
