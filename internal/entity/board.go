package entity

import "fmt"

type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""
)

const (
	BoardSize = 9
	RowSize   = 3

	// NoCell marks the absence of a cell index.
	NoCell = -1
)

// Board - cell values in row-major order.
type Board [BoardSize]Mark

// Triple - three cell indices forming a win line.
type Triple [3]int

var (
	NoTriple = Triple{NoCell, NoCell, NoCell}

	// WinCombos - rows, columns and diagonals in scan order.
	WinCombos = [8]Triple{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}

func (that Board) IsOccupied(cell int) bool {
	return that[cell] != EmptyCell
}

// Winner - returns the mark of the first completed triple, or EmptyCell.
func (that Board) Winner() Mark {
	combo, ok := that.firstCompleted()
	if !ok {
		return EmptyCell
	}
	return that[combo[0]]
}

// WinningTriple - returns the first completed triple, or NoTriple.
func (that Board) WinningTriple() Triple {
	combo, ok := that.firstCompleted()
	if !ok {
		return NoTriple
	}
	return combo
}

func (that Board) firstCompleted() (Triple, bool) {
	for _, combo := range WinCombos {
		a, b, c := that[combo[0]], that[combo[1]], that[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return combo, true
		}
	}
	return NoTriple, false
}

func (that Triple) IsSet() bool {
	return that != NoTriple
}

func (that Triple) Contains(cell int) bool {
	if cell == NoCell {
		return false
	}
	for _, index := range that {
		if index == cell {
			return true
		}
	}
	return false
}

// PositionLabel - describes a cell as "(row R, column C)" where R is the 1-based
// index of the first win line containing the cell and C its place in that line.
func PositionLabel(cell int) string {
	for row, combo := range WinCombos {
		for column, index := range combo {
			if index == cell {
				return fmt.Sprintf("(row %d, column %d)", row+1, column+1)
			}
		}
	}
	return ""
}
