package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-console/internal/apperror"
)

const (
	BoardSide = 3
	BoardSize = BoardSide * BoardSide
)

// Cell is the content of one board position.
type Cell uint8

const (
	EmptyCell Cell = iota
	PlayerX
	PlayerO
)

func (that Cell) String() string {
	switch that {
	case PlayerX:
		return "X"
	case PlayerO:
		return "O"
	default:
		return " "
	}
}

// Opponent returns the mark that moves after this one.
func (that Cell) Opponent() Cell {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// Outcome is a terminal result of a game.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomePlayer1Wins
	OutcomePlayer2Wins
	OutcomeDraw
)

func (that Outcome) String() string {
	switch that {
	case OutcomePlayer1Wins:
		return "player1"
	case OutcomePlayer2Wins:
		return "player2"
	case OutcomeDraw:
		return "draw"
	default:
		return "none"
	}
}

// Game owns the board, the turn marker and the move counter.
type Game struct {
	ID          string          `json:"id"`
	Board       [BoardSize]Cell `json:"board"`
	Turn        Cell            `json:"turn"`
	TurnsPlayed int             `json:"turns_played"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:   id,
		Turn: PlayerX,
	}
}

// MakeTurn places the current player's mark at (row, col). Nothing changes on failure.
func (that *Game) MakeTurn(row, col int) error {
	if row < 0 || row >= BoardSide {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidRow, row)
	}

	if col < 0 || col >= BoardSide {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidCol, col)
	}

	cell := row*BoardSide + col
	if that.Board[cell] != EmptyCell {
		return fmt.Errorf("%w: position (%d, %d) already taken", apperror.ErrCellOccupied, row, col)
	}

	that.Board[cell] = that.Turn
	that.TurnsPlayed++
	that.Turn = that.Turn.Opponent()

	return nil
}

// GameOver reports the terminal outcome, or false while the game is in progress.
// A full board is a draw even when the last move completed a line.
func (that *Game) GameOver() (Outcome, bool) {
	if that.TurnsPlayed == BoardSize {
		return OutcomeDraw, true
	}

	b := that.Board
	for i := 0; i < BoardSide; i++ {
		if mark := lineWinner(b[i*3], b[i*3+1], b[i*3+2]); mark != EmptyCell {
			return outcomeFor(mark), true
		}
		if mark := lineWinner(b[i], b[3+i], b[6+i]); mark != EmptyCell {
			return outcomeFor(mark), true
		}
	}

	if mark := lineWinner(b[0], b[4], b[8]); mark != EmptyCell {
		return outcomeFor(mark), true
	}

	// reported from index 2, a cell of the anti-diagonal itself
	if mark := lineWinner(b[2], b[4], b[6]); mark != EmptyCell {
		return outcomeFor(mark), true
	}

	return OutcomeNone, false
}

// Validate checks a game read from outside: every cell holds a known mark, the counter matches
// the placed marks, X leads O by zero or one, and the turn follows from those counts.
func (that *Game) Validate() error {
	var xCount, oCount int

	for i, cell := range that.Board {
		switch cell {
		case EmptyCell:
		case PlayerX:
			xCount++
		case PlayerO:
			oCount++
		default:
			return fmt.Errorf("%w: unknown mark %d at %d", apperror.ErrInvalidGame, cell, i)
		}
	}

	if that.TurnsPlayed != xCount+oCount {
		return fmt.Errorf("%w: %d turns played but %d marks placed", apperror.ErrInvalidGame, that.TurnsPlayed, xCount+oCount)
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X marks against %d O marks", apperror.ErrInvalidGame, xCount, oCount)
	}

	expectedTurn := PlayerX
	if xCount > oCount {
		expectedTurn = PlayerO
	}

	if that.Turn != expectedTurn {
		return fmt.Errorf("%w: turn is %d, expected %s", apperror.ErrInvalidGame, that.Turn, expectedTurn)
	}

	return nil
}

func (that *Game) IsFinished() bool {
	_, over := that.GameOver()
	return over
}

func lineWinner(a, b, c Cell) Cell {
	if a != EmptyCell && a == b && b == c {
		return a
	}
	return EmptyCell
}

func outcomeFor(mark Cell) Outcome {
	if mark == PlayerX {
		return OutcomePlayer1Wins
	}
	return OutcomePlayer2Wins
}
