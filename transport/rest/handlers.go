package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const sessionLifetime = 24 * time.Hour

type gameUseCase interface {
	View(ctx context.Context, sessionID string) (*tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*tictactoe.View, error)
	ToggleSort(ctx context.Context, sessionID string) (*tictactoe.View, error)
	Restart(ctx context.Context, sessionID string) (*tictactoe.View, error)
}

type handlers struct {
	logger *slog.Logger
	game   gameUseCase
	page   *page
}

// NewRouter - routes for the browser page, its form actions and the JSON view.
func NewRouter(logger *slog.Logger, game gameUseCase, allowedOrigins []string) http.Handler {
	that := &handlers{
		logger: logger.With("component", "rest"),
		game:   game,
		page:   mustParsePage(),
	}

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           60 * 15,
	}))

	router.Get("/ping", that.ping)
	router.Get("/", that.index)
	router.Get("/api/game", that.gameJSON)
	router.Post("/cells/{index}", that.clickCell)
	router.Post("/moves/{step}", that.jumpTo)
	router.Post("/sort", that.toggleSort)
	router.Post("/restart", that.restart)

	return router
}

func (that *handlers) ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		that.logger.Error("failed to write pong", "error", err)
	}
}

func (that *handlers) index(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "index")

	view, err := that.game.View(r.Context(), that.sessionID(w, r))
	if err != nil {
		log.Error("failed to render game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = that.page.Render(w, view); err != nil {
		log.Error("failed to write page", "error", err)
	}
}

func (that *handlers) gameJSON(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "gameJSON")

	view, err := that.game.View(r.Context(), that.sessionID(w, r))
	if err != nil {
		log.Error("failed to render game", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(view); err != nil {
		log.Error("failed to encode game", "error", err)
	}
}

func (that *handlers) clickCell(w http.ResponseWriter, r *http.Request) {
	cell, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "Invalid cell index", http.StatusBadRequest)
		return
	}

	_, err = that.game.ClickCell(r.Context(), that.sessionID(w, r), cell)
	that.finishAction(w, r, "clickCell", err)
}

func (that *handlers) jumpTo(w http.ResponseWriter, r *http.Request) {
	step, err := strconv.Atoi(chi.URLParam(r, "step"))
	if err != nil {
		http.Error(w, "Invalid step", http.StatusBadRequest)
		return
	}

	_, err = that.game.JumpTo(r.Context(), that.sessionID(w, r), step)
	that.finishAction(w, r, "jumpTo", err)
}

func (that *handlers) toggleSort(w http.ResponseWriter, r *http.Request) {
	_, err := that.game.ToggleSort(r.Context(), that.sessionID(w, r))
	that.finishAction(w, r, "toggleSort", err)
}

func (that *handlers) restart(w http.ResponseWriter, r *http.Request) {
	_, err := that.game.Restart(r.Context(), that.sessionID(w, r))
	that.finishAction(w, r, "restart", err)
}

// finishAction - sends the browser back to the page, or reports why it cannot.
func (that *handlers) finishAction(w http.ResponseWriter, r *http.Request, method string, err error) {
	switch {
	case err == nil:
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, apperror.ErrInvalidCell), errors.Is(err, apperror.ErrInvalidStep):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("action failed", "method", method, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// sessionID - reads the session cookie, issuing a new one when missing.
func (that *handlers) sessionID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(pkg.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	id := pkg.GenerateNewSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     pkg.SessionCookieName,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(sessionLifetime),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	that.logger.Info("session cookie not found, new one created", "session", id)

	return id
}
