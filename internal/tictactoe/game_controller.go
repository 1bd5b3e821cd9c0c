package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

// GameController - owns one game's timeline and applies user actions to it.
type GameController struct {
	game *entity.Game
}

func NewGameController(game *entity.Game) *GameController {
	return &GameController{game: game}
}

func (that *GameController) Game() *entity.Game {
	return that.game
}

// HandleCellClick - plays the next mark at cell on the viewed board.
// Moves made while viewing the past discard the later entries.
func (that *GameController) HandleCellClick(cell int) error {
	if err := that.validateMove(cell); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	history := that.game.History[:that.game.CurrentStep+1]
	board := history[len(history)-1].Board
	board[cell] = that.game.NextMark()

	// capped so the append never writes into storage shared with other snapshots
	that.game.History = append(history[:len(history):len(history)], entity.HistoryEntry{
		Board:         board,
		LastMoved:     cell,
		Position:      entity.PositionLabel(cell),
		WinningTriple: board.WinningTriple(),
	})
	that.game.CurrentStep = len(that.game.History) - 1

	return nil
}

// validateMove - checks if the move is valid.
func (that *GameController) validateMove(cell int) error {
	if !entity.IsValidCell(cell) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	current := that.game.Current()

	if current.Board.Winner() != entity.EmptyCell {
		return apperror.ErrGameFinished
	}

	if current.Board.IsOccupied(cell) {
		return apperror.ErrCellOccupied
	}

	return nil
}

// JumpTo - views the entry at step without discarding anything.
func (that *GameController) JumpTo(step int) error {
	if !that.game.IsValidStep(step) {
		return fmt.Errorf("%w: step %d", apperror.ErrInvalidStep, step)
	}

	that.game.CurrentStep = step

	return nil
}

func (that *GameController) ToggleSort() {
	that.game.SortDescending = !that.game.SortDescending
}
