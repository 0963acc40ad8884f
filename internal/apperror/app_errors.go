package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell")
	ErrInvalidGridSize  = errors.New("invalid grid size")
	ErrInvalidAlignment = errors.New("invalid alignment")
	ErrInvalidSymbol    = errors.New("invalid player symbol")

	ErrStateNotFound = errors.New("game state not found")
	ErrCorruptState  = errors.New("game state is corrupt")
)
