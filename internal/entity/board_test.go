package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard(t *testing.T) {
	t.Run("Empty board", func(t *testing.T) {
		// When: rendering a fresh board
		text := NewGame("123").Render()

		// Then: the grid has blank cells
		assert.Equal(t, " | | \n-----\n | | \n-----\n | | ", text)
	})

	t.Run("Board with marks", func(t *testing.T) {
		// Given: a game with a few moves
		game := NewGame("123")
		playMoves(t, game, [][2]int{{0, 0}, {1, 1}, {2, 2}})

		// When: rendering the board
		text := game.Render()

		// Then: X and O appear at their positions
		assert.Equal(t, "X| | \n-----\n |O| \n-----\n | |X", text)
	})
}

func TestParseBoard(t *testing.T) {
	t.Run("Round trip after every move", func(t *testing.T) {
		// Given: a full game played move by move
		game := NewGame("123")
		moves := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 1}, {1, 0}, {1, 2}, {2, 1}, {2, 0}, {2, 2}}

		for _, move := range moves {
			require.NoError(t, game.MakeTurn(move[0], move[1]))

			// When: the rendered board is parsed back
			board, err := ParseBoard(game.Render())

			// Then: the same cells come out
			require.NoError(t, err)
			require.Equal(t, game.Board, board)
		}
	})

	t.Run("Trailing newline is accepted", func(t *testing.T) {
		board, err := ParseBoard("X| | \n-----\n | | \n-----\n | |O\n")

		require.NoError(t, err)
		assert.Equal(t, [BoardSize]Cell{0: PlayerX, 8: PlayerO}, board)
	})

	t.Run("Wrong number of lines", func(t *testing.T) {
		_, err := ParseBoard("X| | \n-----\n | | ")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})

	t.Run("Bad row separator", func(t *testing.T) {
		_, err := ParseBoard("X| | \n=====\n | | \n-----\n | | ")

		require.ErrorIs(t, err, ErrMalformedBoard)
		assert.Contains(t, err.Error(), "line 2")
	})

	t.Run("Unknown mark", func(t *testing.T) {
		_, err := ParseBoard("X| | \n-----\n |Z| \n-----\n | | ")

		require.ErrorIs(t, err, ErrMalformedBoard)
		assert.Contains(t, err.Error(), `unknown mark "Z"`)
	})

	t.Run("Missing column", func(t *testing.T) {
		_, err := ParseBoard("X| \n-----\n | | \n-----\n | | ")

		require.ErrorIs(t, err, ErrMalformedBoard)
	})
}
