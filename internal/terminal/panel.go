package terminal

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	cellWidth  = 5
	cellHeight = 3

	currentMovePrefix = "▸ "
)

// Panel draws one game: the board on the left, status, sort toggle and moves on the right.
type Panel struct {
	logger     *slog.Logger
	controller *tictactoe.GameController

	cells      [entity.BoardSize]*tview.Button
	status     *tview.TextView
	sortButton *tview.Button
	moves      *tview.List
	sidebar    *tview.Flex
	root       *tview.Flex
}

func NewPanel(logger *slog.Logger, controller *tictactoe.GameController) *Panel {
	that := &Panel{
		logger:     logger.With("component", "terminal"),
		controller: controller,
	}

	board := tview.NewGrid().
		SetRows(cellHeight, cellHeight, cellHeight).
		SetColumns(cellWidth, cellWidth, cellWidth).
		SetBorders(true)

	for index := range that.cells {
		button := tview.NewButton("")
		button.SetSelectedFunc(func() {
			that.clickCell(index)
		})
		button.SetLabelColor(tcell.ColorBlack)

		that.cells[index] = button
		board.AddItem(button, index/entity.RowSize, index%entity.RowSize, 1, 1, 0, 0, false)
	}

	that.status = tview.NewTextView()

	that.sortButton = tview.NewButton("")
	that.sortButton.SetSelectedFunc(that.toggleSort)

	that.moves = tview.NewList()
	that.moves.ShowSecondaryText(false)
	that.moves.SetHighlightFullLine(true)

	that.sidebar = tview.NewFlex().SetDirection(tview.FlexRow)
	that.sidebar.SetBorder(true)
	that.sidebar.SetTitle(" Game ")
	that.sidebar.SetBorderPadding(0, 0, 1, 1)

	hint := tview.NewTextView().
		SetDynamicColors(true).
		SetText("  [dimgray]1-9[-] play  [dimgray]s[-] sort  [dimgray]enter[-] jump  [dimgray]q[-] quit")

	boardFrame := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(board, entity.RowSize*(cellHeight+1)+1, 0, false).
		AddItem(nil, 0, 1, false)

	top := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(boardFrame, entity.RowSize*(cellWidth+1)+1, 0, false).
		AddItem(that.sidebar, 0, 1, true)

	that.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, true).
		AddItem(hint, 1, 0, false)

	that.refresh()

	return that
}

func (that *Panel) Root() tview.Primitive {
	return that.root
}

// HandleKey - keyboard shortcuts; returns nil for consumed events.
func (that *Panel) HandleKey(event *tcell.EventKey, quit func()) *tcell.EventKey {
	if event.Key() != tcell.KeyRune {
		return event
	}

	switch r := event.Rune(); {
	case r >= '1' && r <= '9':
		that.clickCell(int(r - '1'))
	case r == 's':
		that.toggleSort()
	case r == 'q':
		quit()
	default:
		return event
	}

	return nil
}

func (that *Panel) clickCell(cell int) {
	err := that.controller.HandleCellClick(cell)
	if apperror.IsRejectedMove(err) {
		that.logger.Debug("move ignored", "cell", cell, "reason", err)
		return
	}

	if err != nil {
		that.logger.Error("failed to play", "cell", cell, "error", err)
		return
	}
	that.refresh()
}

func (that *Panel) jumpTo(step int) {
	if err := that.controller.JumpTo(step); err != nil {
		that.logger.Error("failed to jump", "step", step, "error", err)
		return
	}
	that.refresh()
}

func (that *Panel) toggleSort() {
	that.controller.ToggleSort()
	that.refresh()
}

// refresh - redraws every widget from the controller's view.
func (that *Panel) refresh() {
	view := that.controller.Render()

	for _, cell := range view.Grid.Cells() {
		button := that.cells[cell.Index]
		button.SetLabel(string(cell.Value))
		button.SetBackgroundColor(cellColor(cell))
	}

	that.status.SetText(view.Status)

	that.moves.Clear()
	current := 0
	for index, move := range view.Moves {
		label := move.Label
		if move.Current {
			label = currentMovePrefix + label
			current = index
		}

		step := move.Step
		that.moves.AddItem(label, "", 0, func() {
			that.jumpTo(step)
		})
	}
	that.moves.SetCurrentItem(current)

	that.sidebar.Clear()
	that.sidebar.AddItem(that.status, 1, 0, false)
	if view.ShowSort {
		that.sortButton.SetLabel(view.SortLabel)
		that.sidebar.AddItem(that.sortButton, 1, 0, false)
	}
	that.sidebar.AddItem(that.moves, 0, 1, true)
}

func cellColor(cell tictactoe.Cell) tcell.Color {
	switch {
	case cell.Winner:
		return tcell.ColorGreen
	case cell.Current:
		return tcell.ColorYellow
	default:
		return tcell.ColorWhite
	}
}
