package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

func TestGameController_Render(t *testing.T) {
	t.Run("New game", func(t *testing.T) {
		// Given: a new game
		controller := NewGameController(entity.NewGame("123"))

		// When: rendering
		view := controller.Render()

		// Then: X is next, only the start entry is listed and sort is hidden
		require.Equal(t, "Next player: X", view.Status)
		require.Equal(t, entity.PlayerX, view.NextPlayer)
		require.Equal(t, "in_progress", view.Phase)
		require.Equal(t, []Move{{Step: 0, Label: "Go to game start", Current: true}}, view.Moves)
		require.False(t, view.ShowSort)
		require.Empty(t, view.SortLabel)
	})

	t.Run("After moves", func(t *testing.T) {
		// Given: moves at 4 and 0
		controller := NewGameController(entity.NewGame("123"))
		playMoves(t, controller, 4, 0)

		// When: rendering
		view := controller.Render()

		// Then: the list carries positions and the sort toggle is visible
		expectedMoves := []Move{
			{Step: 0, Label: "Go to game start"},
			{Step: 1, Label: "Go to move #1 (row 2, column 2)"},
			{Step: 2, Label: "Go to move #2 (row 1, column 1)", Current: true},
		}

		require.Equal(t, expectedMoves, view.Moves)
		require.Equal(t, "Next player: X", view.Status)
		require.True(t, view.ShowSort)
		require.Equal(t, "Sort Steps ↓", view.SortLabel)

		// Then: the last move is flagged on the grid
		require.True(t, view.Grid.Rows[0][0].Current)
		require.False(t, view.Grid.Rows[1][1].Current)
		require.Equal(t, entity.PlayerX, view.Grid.Rows[1][1].Value)
	})

	t.Run("Descending label", func(t *testing.T) {
		controller := NewGameController(entity.NewGame("123"))
		playMoves(t, controller, 4)
		controller.ToggleSort()

		view := controller.Render()

		assert.Equal(t, "Sort Steps ↑", view.SortLabel)
		assert.True(t, view.SortDescending)
		assert.Equal(t, 1, view.Moves[0].Step)
	})

	t.Run("Viewing the past", func(t *testing.T) {
		// Given: moves at 4, 0, 8 and a jump to step 1
		controller := NewGameController(entity.NewGame("123"))
		playMoves(t, controller, 4, 0, 8)
		require.NoError(t, controller.JumpTo(1))

		// When: rendering
		view := controller.Render()

		// Then: step 1 is highlighted and O is next
		require.Equal(t, "viewing_past", view.Phase)
		require.Equal(t, "Next player: O", view.Status)
		require.True(t, view.Moves[1].Current)
		require.False(t, view.Moves[3].Current)
		require.Equal(t, 1, view.CurrentStep)
	})

	t.Run("Winner", func(t *testing.T) {
		// Given: X completes the top row
		controller := NewGameController(entity.NewGame("123"))
		playMoves(t, controller, 0, 4, 1, 5, 2)

		// When: rendering
		view := controller.Render()

		// Then: the winner and the winning cells are shown
		require.Equal(t, "Winner: X", view.Status)
		require.Equal(t, entity.PlayerX, view.Winner)
		require.Empty(t, view.NextPlayer)

		winners := make([]int, 0, 3)
		for _, cell := range view.Grid.Cells() {
			if cell.Winner {
				winners = append(winners, cell.Index)
			}
		}
		require.Equal(t, []int{0, 1, 2}, winners)
	})
}
