package tictactoe

import "github.com/rocketscienceinc/mnk-game/internal/entity"

// CheckWin looks for k consecutive cells holding symbol.
//
// Directions are scanned in entity.Directions order (horizontal, vertical,
// diagonal, anti-diagonal). Inside a direction, start cells are scanned row by
// row and then column by column, restricted to the starts whose run stays on
// the board. The first run found is returned, so simultaneous lines always
// resolve to the same one.
func CheckWin(board entity.Board, k int, symbol entity.Mark) (entity.WinningLine, bool) {
	size := board.Size()
	if k < 1 || k > size || !symbol.IsPlayer() {
		return entity.WinningLine{}, false
	}

	for _, direction := range entity.Directions {
		dr, dc := direction.Vector()
		minRow, maxRow := startRange(size, k, dr)
		minCol, maxCol := startRange(size, k, dc)

		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				if hasRun(board, row, col, dr, dc, k, symbol) {
					return entity.NewWinningLine(row, col, direction, k), true
				}
			}
		}
	}

	return entity.WinningLine{}, false
}

// startRange returns the inclusive range of start coordinates on one axis for
// runs of k cells stepping by delta.
func startRange(size, k, delta int) (int, int) {
	switch {
	case delta > 0:
		return 0, size - k
	case delta < 0:
		return k - 1, size - 1
	default:
		return 0, size - 1
	}
}

func hasRun(board entity.Board, row, col, dr, dc, k int, symbol entity.Mark) bool {
	for i := 0; i < k; i++ {
		if board[row+i*dr][col+i*dc] != symbol {
			return false
		}
	}

	return true
}
