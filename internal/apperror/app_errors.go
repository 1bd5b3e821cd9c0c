package apperror

import "errors"

var (
	ErrGameFinished = errors.New("game is already finished")
	ErrCellOccupied = errors.New("cell is already occupied")
	ErrInvalidCell  = errors.New("invalid cell index")
	ErrInvalidStep  = errors.New("invalid history step")
)

// IsRejectedMove - reports whether err is one of the moves the rules silently ignore.
func IsRejectedMove(err error) bool {
	return errors.Is(err, ErrGameFinished) || errors.Is(err, ErrCellOccupied)
}
