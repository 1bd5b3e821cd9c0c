package tictactoe

import (
	"strings"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
)

const (
	classSquare        = "square"
	classSquareCurrent = "square_current"
	classSquareWinner  = "square_winner"
)

// Cell - one square as it should be displayed.
type Cell struct {
	Index   int         `json:"index"`
	Value   entity.Mark `json:"value"`
	Current bool        `json:"current"`
	Winner  bool        `json:"winner"`
}

func NewCell(index int, value entity.Mark, lastMoved int, triple entity.Triple) Cell {
	return Cell{
		Index:   index,
		Value:   value,
		Current: index == lastMoved,
		Winner:  triple.IsSet() && triple.Contains(index),
	}
}

// Classes - css classes flagging the most recent move and the winning line.
func (that Cell) Classes() string {
	classes := []string{classSquare}
	if that.Current {
		classes = append(classes, classSquareCurrent)
	}
	if that.Winner {
		classes = append(classes, classSquareWinner)
	}
	return strings.Join(classes, " ")
}

// Grid - the board laid out as three rows of three cells.
type Grid struct {
	Rows [entity.RowSize][entity.RowSize]Cell `json:"rows"`
}

func NewGrid(board entity.Board, lastMoved int, triple entity.Triple) Grid {
	var grid Grid
	for index, value := range board {
		grid.Rows[index/entity.RowSize][index%entity.RowSize] = NewCell(index, value, lastMoved, triple)
	}
	return grid
}

// Cells - cells in index order.
func (that Grid) Cells() []Cell {
	cells := make([]Cell, 0, entity.BoardSize)
	for _, row := range that.Rows {
		cells = append(cells, row[:]...)
	}
	return cells
}
