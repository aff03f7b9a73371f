package apperror

import "errors"

var (
	ErrInvalidRow   = errors.New("invalid row")
	ErrInvalidCol   = errors.New("invalid col")
	ErrCellOccupied = errors.New("cell is already occupied")

	ErrBadInput = errors.New("bad user input")
	ErrRowParse = errors.New("row parsing failed")
	ErrColParse = errors.New("column parsing failed")

	ErrGameNotFound = errors.New("game not found")
	ErrGameFinished = errors.New("game is already finished")
	ErrInvalidGame  = errors.New("game state is inconsistent")
)
