package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Winner(t *testing.T) {
	t.Run("Empty board", func(t *testing.T) {
		// Given: an empty board
		board := Board{}

		// Then: nobody has won
		require.Equal(t, EmptyCell, board.Winner())
		require.Equal(t, NoTriple, board.WinningTriple())
	})

	t.Run("No completed triple", func(t *testing.T) {
		// Given: a full board without three in a row
		board := Board{PlayerO, PlayerX, PlayerO, PlayerO, PlayerX, PlayerX, PlayerX, PlayerO, PlayerX}

		// Then: nobody has won
		assert.Equal(t, EmptyCell, board.Winner())
		assert.False(t, board.WinningTriple().IsSet())
	})

	t.Run("Mixed triple does not win", func(t *testing.T) {
		// Given: a row filled by both players
		board := Board{PlayerX, PlayerO, PlayerX}

		// Then: nobody has won
		assert.Equal(t, EmptyCell, board.Winner())
	})

	for _, combo := range WinCombos {
		for _, mark := range []Mark{PlayerX, PlayerO} {
			// Given: a board where a single line is completed by one mark
			var board Board
			for _, cell := range combo {
				board[cell] = mark
			}

			// Then: the mark wins on exactly that line
			assert.Equal(t, mark, board.Winner(), "combo %v", combo)
			assert.Equal(t, combo, board.WinningTriple(), "combo %v", combo)
		}
	}
}

func TestBoard_WinningTriple(t *testing.T) {
	t.Run("First combo in scan order wins", func(t *testing.T) {
		// Given: a constructed board with the top row and the left column completed
		board := Board{PlayerX, PlayerX, PlayerX, PlayerX, EmptyCell, EmptyCell, PlayerX, EmptyCell, EmptyCell}

		// Then: the top row is reported, it comes first in the scan
		require.Equal(t, Triple{0, 1, 2}, board.WinningTriple())
	})

	t.Run("Column before diagonal", func(t *testing.T) {
		// Given: the middle column and the anti-diagonal are both O
		board := Board{EmptyCell, PlayerO, PlayerO, EmptyCell, PlayerO, EmptyCell, PlayerO, PlayerO, EmptyCell}

		// Then: the middle column is found before the anti-diagonal
		require.Equal(t, Triple{1, 4, 7}, board.WinningTriple())
		require.Equal(t, PlayerO, board.Winner())
	})
}

func TestTriple_Contains(t *testing.T) {
	assert.True(t, Triple{2, 4, 6}.Contains(4))
	assert.False(t, Triple{2, 4, 6}.Contains(5))
	assert.False(t, NoTriple.Contains(NoCell))
	assert.False(t, NoTriple.IsSet())
}

func TestPositionLabel(t *testing.T) {
	expected := map[int]string{
		0: "(row 1, column 1)",
		1: "(row 1, column 2)",
		2: "(row 1, column 3)",
		3: "(row 2, column 1)",
		4: "(row 2, column 2)",
		5: "(row 2, column 3)",
		6: "(row 3, column 1)",
		7: "(row 3, column 2)",
		8: "(row 3, column 3)",
	}

	for cell, label := range expected {
		assert.Equal(t, label, PositionLabel(cell), "cell %d", cell)
	}

	t.Run("Out of range", func(t *testing.T) {
		assert.Empty(t, PositionLabel(-1))
		assert.Empty(t, PositionLabel(9))
	})
}
