package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

const (
	actionState   = "game:state"
	actionClick   = "game:click"
	actionJump    = "game:jump"
	actionSort    = "game:sort"
	actionRestart = "game:restart"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload - arguments of game:click and game:jump.
type RequestPayload struct {
	Cell *int `json:"cell,omitempty"`
	Step *int `json:"step,omitempty"`
}

type ResponsePayload struct {
	Game  *tictactoe.View `json:"game,omitempty"`
	Error string          `json:"error,omitempty"`
}
