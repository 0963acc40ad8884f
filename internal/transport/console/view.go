package console

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/mnk-game/internal/entity"
)

// View is everything the console prints about a game.
type View struct {
	Board         entity.Board
	KAlignment    int
	CurrentPlayer entity.Mark
	Status        entity.Outcome
	WinningLine   entity.WinningLine
}

// Render draws the grid with row and column numbers. Cells of the winning
// line are wrapped in brackets.
func (that View) Render() string {
	var sb strings.Builder

	size := that.Board.Size()

	sb.WriteString("    ")
	for col := 0; col < size; col++ {
		fmt.Fprintf(&sb, "%2d ", col)
	}
	sb.WriteString("\n")

	for row := 0; row < size; row++ {
		fmt.Fprintf(&sb, "%2d  ", row)
		for col := 0; col < size; col++ {
			sb.WriteString(that.cell(row, col))
		}
		sb.WriteString("\n")
	}

	sb.WriteString(that.statusLine())
	sb.WriteString("\n")

	return sb.String()
}

func (that View) cell(row, col int) string {
	mark := string(that.Board[row][col])
	if mark == "" {
		mark = "."
	}

	if that.Status.GameWon && that.WinningLine.Length > 0 && that.WinningLine.Contains(row, col) {
		return "[" + mark + "]"
	}

	return " " + mark + " "
}

func (that View) statusLine() string {
	switch {
	case that.Status.IsDraw():
		return "draw"
	case that.Status.GameWon:
		return fmt.Sprintf("%s wins", that.Status.Winner)
	default:
		return fmt.Sprintf("%s to move, %d in a row wins", that.CurrentPlayer, that.KAlignment)
	}
}
