package entity

import (
	"errors"
	"fmt"
	"strings"
)

const (
	columnSeparator = "|"
	rowSeparator    = "-----"
)

var ErrMalformedBoard = errors.New("malformed board")

// RenderBoard draws the board as three rows of marks split by "-----" lines.
func RenderBoard(board [BoardSize]Cell) string {
	rows := make([]string, 0, 2*BoardSide-1)

	for row := 0; row < BoardSide; row++ {
		if row > 0 {
			rows = append(rows, rowSeparator)
		}

		marks := make([]string, BoardSide)
		for col := 0; col < BoardSide; col++ {
			marks[col] = board[row*BoardSide+col].String()
		}
		rows = append(rows, strings.Join(marks, columnSeparator))
	}

	return strings.Join(rows, "\n")
}

func (that *Game) Render() string {
	return RenderBoard(that.Board)
}

// ParseBoard reads back a board produced by RenderBoard.
func ParseBoard(text string) ([BoardSize]Cell, error) {
	var board [BoardSize]Cell

	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) != 2*BoardSide-1 {
		return board, fmt.Errorf("%w: expected %d lines, got %d", ErrMalformedBoard, 2*BoardSide-1, len(lines))
	}

	for i, line := range lines {
		if i%2 == 1 {
			if line != rowSeparator {
				return board, fmt.Errorf("%w: line %d is not a row separator", ErrMalformedBoard, i+1)
			}
			continue
		}

		marks := strings.Split(line, columnSeparator)
		if len(marks) != BoardSide {
			return board, fmt.Errorf("%w: line %d has %d cells", ErrMalformedBoard, i+1, len(marks))
		}

		row := i / 2
		for col, mark := range marks {
			cell, err := parseCell(mark)
			if err != nil {
				return board, fmt.Errorf("%w: line %d: %w", ErrMalformedBoard, i+1, err)
			}
			board[row*BoardSide+col] = cell
		}
	}

	return board, nil
}

func parseCell(mark string) (Cell, error) {
	switch mark {
	case "X":
		return PlayerX, nil
	case "O":
		return PlayerO, nil
	case " ":
		return EmptyCell, nil
	default:
		return EmptyCell, fmt.Errorf("unknown mark %q", mark)
	}
}
