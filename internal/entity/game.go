package entity

import (
	"fmt"

	"github.com/rocketscienceinc/mnk-game/internal/apperror"
)

const (
	MinGridSize  = 3
	MaxGridSize  = 13
	MinAlignment = 3

	DefaultGridSize  = 3
	DefaultAlignment = 3
)

// Mark is the content of a single cell.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// DrawKey is the scoreboard key for drawn games and the winner of a drawn game.
const DrawKey = "draw"

// IsPlayer reports whether the mark belongs to the two-symbol alphabet.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// ParseMark accepts "X" or "O".
func ParseMark(value string) (Mark, error) {
	mark := Mark(value)
	if !mark.IsPlayer() {
		return EmptyCell, fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, value)
	}

	return mark, nil
}

func ValidGridSize(size int) bool {
	return size >= MinGridSize && size <= MaxGridSize
}

func ValidAlignment(k, gridSize int) bool {
	return k >= MinAlignment && k <= gridSize
}

// Board is a square grid of marks indexed as board[row][col].
type Board [][]Mark

func NewBoard(size int) Board {
	board := make(Board, size)
	for row := range board {
		board[row] = make([]Mark, size)
	}

	return board
}

func (that Board) Size() int {
	return len(that)
}

func (that Board) Clone() Board {
	if that == nil {
		return nil
	}

	board := make(Board, len(that))
	for row := range that {
		board[row] = append([]Mark(nil), that[row]...)
	}

	return board
}

func (that Board) InBounds(row, col int) bool {
	return row >= 0 && row < len(that) && col >= 0 && col < len(that)
}

// IsFull reports whether no empty cell remains.
func (that Board) IsFull() bool {
	for _, row := range that {
		for _, cell := range row {
			if cell == EmptyCell {
				return false
			}
		}
	}

	return true
}

// IsSquare reports whether the board has exactly size rows of size cells.
func (that Board) IsSquare(size int) bool {
	if len(that) != size {
		return false
	}

	for _, row := range that {
		if len(row) != size {
			return false
		}
	}

	return true
}

// Outcome is terminal once GameWon is set. Winner is a player mark, DrawKey, or empty.
type Outcome struct {
	GameWon bool   `json:"gameWon"`
	Winner  string `json:"winner"`
}

func (that Outcome) IsDraw() bool {
	return that.GameWon && that.Winner == DrawKey
}

// Scores maps X, O and DrawKey to their counters.
type Scores map[string]int

func NewScores() Scores {
	return Scores{
		string(PlayerX): 0,
		string(PlayerO): 0,
		DrawKey:         0,
	}
}

func (that Scores) Clone() Scores {
	scores := make(Scores, len(that))
	for key, value := range that {
		scores[key] = value
	}

	return scores
}
