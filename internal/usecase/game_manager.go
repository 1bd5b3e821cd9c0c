package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var ErrEmptySessionID = errors.New("session id is empty")

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - runs controller actions against the game stored for a session.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo

	// actions run to completion one after another
	mu sync.Mutex
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo) *GameManager {
	return &GameManager{
		logger:   logger.With("component", "game_manager"),
		gameRepo: gameRepo,
	}
}

// View - renders the session's game, creating it on first access.
func (that *GameManager) View(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return tictactoe.NewGameController(game).Render(), nil
}

// ClickCell - plays cell for the side to move. Illegal moves leave the game as it was.
func (that *GameManager) ClickCell(ctx context.Context, sessionID string, cell int) (*tictactoe.View, error) {
	log := that.logger.With("method", "ClickCell", "session", sessionID, "cell", cell)

	return that.apply(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		err := controller.HandleCellClick(cell)
		if apperror.IsRejectedMove(err) {
			log.Debug("move ignored", "reason", err)
			return false, nil
		}

		if err != nil {
			return false, err
		}

		return true, nil
	})
}

// JumpTo - shows the game as it was after step moves.
func (that *GameManager) JumpTo(ctx context.Context, sessionID string, step int) (*tictactoe.View, error) {
	return that.apply(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		if err := controller.JumpTo(step); err != nil {
			return false, err
		}
		return true, nil
	})
}

// ToggleSort - flips the order of the move list.
func (that *GameManager) ToggleSort(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	return that.apply(ctx, sessionID, func(controller *tictactoe.GameController) (bool, error) {
		controller.ToggleSort()
		return true, nil
	})
}

// Restart - drops the session's game and starts a new one.
func (that *GameManager) Restart(ctx context.Context, sessionID string) (*tictactoe.View, error) {
	log := that.logger.With("method", "Restart", "session", sessionID)

	that.mu.Lock()
	defer that.mu.Unlock()

	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	err := that.gameRepo.DeleteByID(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrGameNotFound) {
		return nil, fmt.Errorf("failed to delete game: %w", err)
	}

	game, err := that.createGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	log.Info("game restarted")

	return tictactoe.NewGameController(game).Render(), nil
}

// apply - loads the game, runs action and stores the game when action reports a change.
func (that *GameManager) apply(
	ctx context.Context,
	sessionID string,
	action func(controller *tictactoe.GameController) (bool, error),
) (*tictactoe.View, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.getOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	controller := tictactoe.NewGameController(game)

	changed, err := action(controller)
	if err != nil {
		return nil, fmt.Errorf("failed to apply action: %w", err)
	}

	if changed {
		if err = that.gameRepo.CreateOrUpdate(ctx, controller.Game()); err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}
	}

	return controller.Render(), nil
}

func (that *GameManager) getOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	if sessionID == "" {
		return nil, ErrEmptySessionID
	}

	game, err := that.gameRepo.GetByID(ctx, sessionID)
	if err == nil {
		return game, nil
	}

	switch {
	case errors.Is(err, repository.ErrGameNotFound):
	case errors.Is(err, entity.ErrCorruptedGame):
		that.logger.Warn("replacing corrupted game", "session", sessionID, "error", err)
	default:
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return that.createGame(ctx, sessionID)
}

func (that *GameManager) createGame(ctx context.Context, sessionID string) (*entity.Game, error) {
	game := entity.NewGame(sessionID)
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("game created", "session", sessionID)

	return game, nil
}
