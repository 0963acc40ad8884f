package entity

type Direction string

const (
	Horizontal   Direction = "horizontal"
	Vertical     Direction = "vertical"
	Diagonal     Direction = "diagonal"
	AntiDiagonal Direction = "anti-diagonal"
)

// Directions lists the scan order used by win detection.
var Directions = []Direction{Horizontal, Vertical, Diagonal, AntiDiagonal}

// Vector returns the (row, col) step of the direction.
func (that Direction) Vector() (int, int) {
	switch that {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	case AntiDiagonal:
		return 1, -1
	default:
		return 0, 0
	}
}

func (that Direction) Valid() bool {
	dr, dc := that.Vector()
	return dr != 0 || dc != 0
}

type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// WinningLine describes a run of Length cells starting at (StartRow, StartCol).
type WinningLine struct {
	StartRow  int       `json:"startRow"`
	StartCol  int       `json:"startCol"`
	EndRow    int       `json:"endRow"`
	EndCol    int       `json:"endCol"`
	Direction Direction `json:"direction"`
	Length    int       `json:"length"`
}

func NewWinningLine(startRow, startCol int, direction Direction, length int) WinningLine {
	dr, dc := direction.Vector()

	return WinningLine{
		StartRow:  startRow,
		StartCol:  startCol,
		EndRow:    startRow + (length-1)*dr,
		EndCol:    startCol + (length-1)*dc,
		Direction: direction,
		Length:    length,
	}
}

// Cells enumerates the cells of the line from start to end.
func (that WinningLine) Cells() []Cell {
	dr, dc := that.Direction.Vector()

	cells := make([]Cell, 0, that.Length)
	for i := 0; i < that.Length; i++ {
		cells = append(cells, Cell{Row: that.StartRow + i*dr, Col: that.StartCol + i*dc})
	}

	return cells
}

func (that WinningLine) Contains(row, col int) bool {
	for _, cell := range that.Cells() {
		if cell.Row == row && cell.Col == col {
			return true
		}
	}

	return false
}

// Fits reports whether every cell of the line lies on a board of the given size.
func (that WinningLine) Fits(size int) bool {
	if !that.Direction.Valid() || that.Length < 1 {
		return false
	}

	for _, cell := range []Cell{{that.StartRow, that.StartCol}, that.end()} {
		if cell.Row < 0 || cell.Row >= size || cell.Col < 0 || cell.Col >= size {
			return false
		}
	}

	return true
}

func (that WinningLine) end() Cell {
	dr, dc := that.Direction.Vector()
	return Cell{Row: that.StartRow + (that.Length-1)*dr, Col: that.StartCol + (that.Length-1)*dc}
}
