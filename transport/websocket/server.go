package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	sessionLifetime = 24 * time.Hour
	shutdownTimeout = 5 * time.Second
)

type uGame interface {
	View(ctx context.Context, sessionID string) (*tictactoe.View, error)
	ClickCell(ctx context.Context, sessionID string, cell int) (*tictactoe.View, error)
	JumpTo(ctx context.Context, sessionID string, step int) (*tictactoe.View, error)
	ToggleSort(ctx context.Context, sessionID string) (*tictactoe.View, error)
	Restart(ctx context.Context, sessionID string) (*tictactoe.View, error)
}

type handlerFunc func(ctx context.Context, sessionID string, message *Message) (*tictactoe.View, error)

type Server struct {
	logger *slog.Logger
	uGame  uGame

	originPatterns []string
	handlers       map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame, originPatterns []string) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		originPatterns: originPatterns,
		handlers:       make(map[string]handlerFunc),
	}

	server.handlers[actionState] = server.handleState
	server.handlers[actionClick] = server.handleClick
	server.handlers[actionJump] = server.handleJump
	server.handlers[actionSort] = server.handleSort
	server.handlers[actionRestart] = server.handleRestart

	return server
}

// Handler - the /ws endpoint.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)
	return mux
}

// Start - starts WebSocket server, stops when ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	sessionID := that.setSessionCookie(writer, req)

	conn, err := websocket.Accept(writer, req, &websocket.AcceptOptions{
		OriginPatterns: that.originPatterns,
	})
	if err != nil {
		log.Error("failed to accept websocket", "error", err)
		return
	}

	defer conn.CloseNow()

	log.Info("WebSocket connection established", "session", sessionID)

	err = that.handleMessages(req.Context(), conn, sessionID)

	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		log.Info("WebSocket connection closed", "session", sessionID)
	default:
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until the connection closes.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("failed to unmarshal message", "error", err)
			if err = that.sendError(ctx, conn, "", "malformed message"); err != nil {
				return err
			}
			continue
		}

		response := Message{Action: message.Action}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = that.sendError(ctx, conn, message.Action, "unknown action"); err != nil {
				return err
			}
			continue
		}

		view, err := handler(ctx, sessionID, &message)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(ctx, conn, message.Action, err.Error()); err != nil {
				return err
			}
			continue
		}

		response.Payload = mustMarshal(ResponsePayload{Game: view})
		if err = wsjson.Write(ctx, conn, response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

func (that *Server) sendError(ctx context.Context, conn *websocket.Conn, action, reason string) error {
	response := Message{
		Action:  action,
		Payload: mustMarshal(ResponsePayload{Error: reason}),
	}

	if err := wsjson.Write(ctx, conn, response); err != nil {
		return fmt.Errorf("failed to send error: %w", err)
	}

	return nil
}

// setSessionCookie - returns the user session, creating the cookie on the upgrade response when missing.
func (that *Server) setSessionCookie(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "setSessionCookie")

	cookie, err := req.Cookie(pkg.SessionCookieName)
	if err == nil && cookie.Value != "" {
		log.Debug("session cookie found", "session", cookie.Value)
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     pkg.SessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(sessionLifetime),
		Path:     "/",
		HttpOnly: true,
	}
	http.SetCookie(writer, cookie)
	log.Info("session cookie not found, new one created", "session", cookie.Value)

	return cookie.Value
}

func mustMarshal(v interface{}) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
