// Package terminal mounts the game into a tview screen.
package terminal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/entity"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

// Run - plays a new game in the terminal until the user quits or ctx is canceled.
func Run(ctx context.Context, logger *slog.Logger) error {
	app := tview.NewApplication()

	game := entity.NewGame(pkg.GenerateNewSessionID())
	panel := NewPanel(logger, tictactoe.NewGameController(game))

	app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		return panel.HandleKey(event, app.Stop)
	})

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
			app.Stop()
		case <-done:
		}
	}()

	logger.Info("starting terminal game", "game", game.ID)

	if err := app.SetRoot(panel.Root(), true).EnableMouse(true).SetFocus(panel.moves).Run(); err != nil {
		return fmt.Errorf("terminal failed: %w", err)
	}

	return nil
}
