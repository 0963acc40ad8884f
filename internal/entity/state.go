package entity

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
)

// State is the persisted record of one game session.
type State struct {
	Board         Board        `json:"board"`
	CurrentPlayer Mark         `json:"currentPlayer"`
	GridSize      int          `json:"gridSize"`
	Player1Symbol Mark         `json:"player1Symbol"`
	Player2Symbol Mark         `json:"player2Symbol"`
	KAlignment    int          `json:"kAlignment"`
	GameWon       bool         `json:"gameWon"`
	Winner        string       `json:"winner"`
	WinningLine   *WinningLine `json:"winningLine"`
	Scores        Scores       `json:"scores"`
}

func DefaultState() State {
	return State{
		Board:         NewBoard(DefaultGridSize),
		CurrentPlayer: PlayerX,
		GridSize:      DefaultGridSize,
		Player1Symbol: PlayerX,
		Player2Symbol: PlayerO,
		KAlignment:    DefaultAlignment,
		Scores:        NewScores(),
	}
}

func (that *State) Encode() ([]byte, error) {
	data, err := json.Marshal(that)
	if err != nil {
		return nil, fmt.Errorf("could not marshal game state: %w", err)
	}

	return data, nil
}

// DecodeState parses a record. Fields missing from the record keep their default
// value and fields holding values the game cannot use are reset independently.
// Data that is not a JSON object yields apperror.ErrCorruptState.
func DecodeState(data []byte) (*State, error) {
	state := DefaultState()

	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptState, err)
	}

	state.Normalize()

	return &state, nil
}

// Normalize brings every field back inside the invariants of a game.
func (that *State) Normalize() {
	if !ValidGridSize(that.GridSize) {
		that.GridSize = DefaultGridSize
	}

	if !that.Player1Symbol.IsPlayer() {
		that.Player1Symbol = PlayerX
	}
	that.Player2Symbol = that.Player1Symbol.Opponent()

	switch {
	case that.KAlignment < MinAlignment:
		that.KAlignment = DefaultAlignment
	case that.KAlignment > that.GridSize:
		that.KAlignment = that.GridSize
	}

	that.normalizeBoard()

	if that.CurrentPlayer != that.Player1Symbol && that.CurrentPlayer != that.Player2Symbol {
		that.CurrentPlayer = that.Player1Symbol
	}

	that.normalizeOutcome()
	that.normalizeScores()
}

func (that *State) normalizeBoard() {
	if !that.Board.IsSquare(that.GridSize) {
		that.Board = NewBoard(that.GridSize)
		return
	}

	for _, row := range that.Board {
		for col, cell := range row {
			if cell != EmptyCell && !cell.IsPlayer() {
				row[col] = EmptyCell
			}
		}
	}
}

func (that *State) normalizeOutcome() {
	winner := Mark(that.Winner)

	switch {
	case !that.GameWon:
		that.Winner = ""
		that.WinningLine = nil
	case that.Winner == DrawKey:
		that.WinningLine = nil
	case winner == that.Player1Symbol || winner == that.Player2Symbol:
		if that.WinningLine != nil {
			if !that.WinningLine.Fits(that.GridSize) {
				that.WinningLine = nil
			} else {
				line := NewWinningLine(that.WinningLine.StartRow, that.WinningLine.StartCol, that.WinningLine.Direction, that.WinningLine.Length)
				that.WinningLine = &line
			}
		}
	default:
		that.GameWon = false
		that.Winner = ""
		that.WinningLine = nil
	}
}

func (that *State) normalizeScores() {
	scores := NewScores()
	for key := range scores {
		if value := that.Scores[key]; value > 0 {
			scores[key] = value
		}
	}

	that.Scores = scores
}
