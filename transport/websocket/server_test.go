package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/repository"
	"github.com/rocketscienceinc/tictactoe-timetravel/internal/usecase"
)

type client struct {
	ctx  context.Context
	conn *websocket.Conn
}

func dial(t *testing.T, url string, header http.Header) (*client, *http.Response) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	conn, resp, err := websocket.Dial(ctx, url, &websocket.DialOptions{HTTPHeader: header})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = conn.Close(websocket.StatusNormalClosure, "bye")
	})

	return &client{ctx: ctx, conn: conn}, resp
}

func (that *client) send(t *testing.T, action, payload string) ResponsePayload {
	t.Helper()

	message := Message{Action: action}
	if payload != "" {
		message.Payload = json.RawMessage(payload)
	}
	require.NoError(t, wsjson.Write(that.ctx, that.conn, message))

	return that.read(t, action)
}

func (that *client) read(t *testing.T, action string) ResponsePayload {
	t.Helper()

	var response Message
	require.NoError(t, wsjson.Read(that.ctx, that.conn, &response))
	require.Equal(t, action, response.Action)

	var payload ResponsePayload
	require.NoError(t, json.Unmarshal(response.Payload, &payload))

	return payload
}

func newTestServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	manager := usecase.NewGameManager(logger, repository.NewMemoryGameRepository())

	server := httptest.NewServer(New(logger, manager, nil).Handler())
	t.Cleanup(server.Close)

	return "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
}

func TestServer_Game(t *testing.T) {
	// Given: a connected client without a session
	url := newTestServer(t)
	ws, resp := dial(t, url, nil)

	// Then: a session cookie is issued on the upgrade
	assert.Contains(t, resp.Header.Get("Set-Cookie"), pkg.SessionCookieName)

	// When: the state is requested
	payload := ws.send(t, actionState, "")

	// Then: a new game is returned
	require.Empty(t, payload.Error)
	require.Equal(t, "Next player: X", payload.Game.Status)

	// When: X plays the center
	payload = ws.send(t, actionClick, `{"cell": 4}`)

	// Then: O is next
	require.Equal(t, "Next player: O", payload.Game.Status)
	require.Len(t, payload.Game.Moves, 2)

	// When: the move list is sorted and the start is viewed
	payload = ws.send(t, actionSort, "")
	require.True(t, payload.Game.SortDescending)

	payload = ws.send(t, actionJump, `{"step": 0}`)

	// Then: the start is shown with X to move
	require.Equal(t, "Next player: X", payload.Game.Status)
	require.Equal(t, 0, payload.Game.CurrentStep)

	// When: restarting
	payload = ws.send(t, actionRestart, "")

	// Then: the history is reset
	require.Len(t, payload.Game.Moves, 1)
}

func TestServer_SessionCookie(t *testing.T) {
	// Given: two connections carrying the same session cookie
	url := newTestServer(t)
	header := http.Header{"Cookie": []string{pkg.SessionCookieName + "=shared"}}

	first, _ := dial(t, url, header)
	first.send(t, actionClick, `{"cell": 0}`)

	// When: the second connection asks for the state
	second, _ := dial(t, url, header)
	payload := second.send(t, actionState, "")

	// Then: it sees the first connection's move
	require.Equal(t, "Next player: O", payload.Game.Status)
}

func TestServer_Errors(t *testing.T) {
	url := newTestServer(t)
	ws, _ := dial(t, url, nil)

	t.Run("Unknown action", func(t *testing.T) {
		payload := ws.send(t, "game:undo", "")

		assert.Equal(t, "unknown action", payload.Error)
		assert.Nil(t, payload.Game)
	})

	t.Run("Missing cell", func(t *testing.T) {
		payload := ws.send(t, actionClick, `{}`)

		assert.Contains(t, payload.Error, ErrCellRequired.Error())
	})

	t.Run("Missing step", func(t *testing.T) {
		payload := ws.send(t, actionJump, "")

		assert.Contains(t, payload.Error, ErrStepRequired.Error())
	})

	t.Run("Invalid cell", func(t *testing.T) {
		payload := ws.send(t, actionClick, `{"cell": 11}`)

		assert.Contains(t, payload.Error, "invalid cell index")
	})

	t.Run("Malformed message", func(t *testing.T) {
		require.NoError(t, ws.conn.Write(ws.ctx, websocket.MessageText, []byte("{not json")))

		payload := ws.read(t, "")

		assert.Equal(t, "malformed message", payload.Error)
	})

	t.Run("Connection survives errors", func(t *testing.T) {
		payload := ws.send(t, actionState, "")

		assert.Empty(t, payload.Error)
		assert.NotNil(t, payload.Game)
	})
}
