package tictactoe

import (
	"fmt"
	"slices"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	sortAscendingLabel  = "Sort Steps ↓"
	sortDescendingLabel = "Sort Steps ↑"
)

// Move - one line of the move list.
type Move struct {
	Step    int    `json:"step"`
	Label   string `json:"label"`
	Current bool   `json:"current"`
}

// View - everything a front-end needs to draw the game.
type View struct {
	Status         string      `json:"status"`
	Phase          string      `json:"phase"`
	Winner         entity.Mark `json:"winner,omitempty"`
	NextPlayer     entity.Mark `json:"next_player,omitempty"`
	Grid           Grid        `json:"grid"`
	Moves          []Move      `json:"moves"`
	CurrentStep    int         `json:"current_step"`
	SortDescending bool        `json:"sort_descending"`
	ShowSort       bool        `json:"show_sort"`
	SortLabel      string      `json:"sort_label,omitempty"`
}

// Render - derives the view of the step being looked at.
func (that *GameController) Render() *View {
	game := that.game
	current := game.Current()

	view := &View{
		Phase:          game.Phase().String(),
		Grid:           NewGrid(current.Board, current.LastMoved, current.WinningTriple),
		Moves:          moveList(game),
		CurrentStep:    game.CurrentStep,
		SortDescending: game.SortDescending,
		ShowSort:       len(game.History) > 1,
	}

	if winner := game.Winner(); winner != entity.EmptyCell {
		view.Winner = winner
		view.Status = "Winner: " + string(winner)
	} else {
		view.NextPlayer = game.NextMark()
		view.Status = "Next player: " + string(view.NextPlayer)
	}

	if view.ShowSort {
		view.SortLabel = sortAscendingLabel
		if game.SortDescending {
			view.SortLabel = sortDescendingLabel
		}
	}

	return view
}

func moveList(game *entity.Game) []Move {
	moves := make([]Move, 0, len(game.History))
	for step, entry := range game.History {
		moves = append(moves, Move{
			Step:    step,
			Label:   moveLabel(step, entry),
			Current: step == game.CurrentStep,
		})
	}

	if game.SortDescending {
		slices.Reverse(moves)
	}

	return moves
}

func moveLabel(step int, entry entity.HistoryEntry) string {
	if step == 0 {
		return "Go to game start"
	}
	if entry.Position == "" {
		return fmt.Sprintf("Go to move #%d", step)
	}
	return fmt.Sprintf("Go to move #%d %s", step, entry.Position)
}
