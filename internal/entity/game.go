package entity

import (
	"errors"
	"fmt"
)

var ErrCorruptedGame = errors.New("corrupted game state")

type Phase int

const (
	// PhaseInProgress - the latest entry is viewed and nobody has won.
	PhaseInProgress Phase = iota
	// PhaseWon - the viewed board has a completed triple, no further moves.
	PhaseWon
	// PhaseViewingPast - an earlier entry is viewed; a move discards the later ones.
	PhaseViewingPast
)

func (that Phase) String() string {
	switch that {
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	case PhaseViewingPast:
		return "viewing_past"
	default:
		return fmt.Sprintf("phase(%d)", int(that))
	}
}

// HistoryEntry - board snapshot with the move that produced it. Never mutated once appended.
type HistoryEntry struct {
	Board         Board  `json:"board"`
	LastMoved     int    `json:"last_moved"`
	Position      string `json:"position,omitempty"`
	WinningTriple Triple `json:"winning_triple"`
}

func NewStartEntry() HistoryEntry {
	return HistoryEntry{
		LastMoved:     NoCell,
		WinningTriple: NoTriple,
	}
}

// Game - one session's timeline. The next player is derived from CurrentStep.
type Game struct {
	ID             string         `json:"id"`
	History        []HistoryEntry `json:"history"`
	CurrentStep    int            `json:"current_step"`
	SortDescending bool           `json:"sort_descending"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:      id,
		History: []HistoryEntry{NewStartEntry()},
	}
}

func (that *Game) Current() HistoryEntry {
	return that.History[that.CurrentStep]
}

// NextMark - X moves on even steps, O on odd ones.
func (that *Game) NextMark() Mark {
	if that.CurrentStep%2 == 0 {
		return PlayerX
	}
	return PlayerO
}

func (that *Game) Winner() Mark {
	return that.Current().Board.Winner()
}

func (that *Game) Phase() Phase {
	switch {
	case that.Winner() != EmptyCell:
		return PhaseWon
	case that.CurrentStep < len(that.History)-1:
		return PhaseViewingPast
	default:
		return PhaseInProgress
	}
}

func (that *Game) IsValidStep(step int) bool {
	return step >= 0 && step < len(that.History)
}

// Validate - checks a game that came from outside the process.
func (that *Game) Validate() error {
	if len(that.History) == 0 {
		return fmt.Errorf("%w: empty history", ErrCorruptedGame)
	}

	if !that.IsValidStep(that.CurrentStep) {
		return fmt.Errorf("%w: step %d out of %d entries", ErrCorruptedGame, that.CurrentStep, len(that.History))
	}

	if that.History[0].Board != (Board{}) {
		return fmt.Errorf("%w: history does not start from an empty board", ErrCorruptedGame)
	}

	return nil
}

// Clone - copies the game so the copy's history can be changed independently.
func (that *Game) Clone() *Game {
	clone := *that
	clone.History = append([]HistoryEntry(nil), that.History...)
	return &clone
}
