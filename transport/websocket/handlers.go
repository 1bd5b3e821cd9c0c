package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-timetravel/internal/tictactoe"
)

var (
	ErrCellRequired = errors.New("cell is required")
	ErrStepRequired = errors.New("step is required")
)

func (that *Server) handleState(ctx context.Context, sessionID string, _ *Message) (*tictactoe.View, error) {
	return that.uGame.View(ctx, sessionID)
}

func (that *Server) handleClick(ctx context.Context, sessionID string, msg *Message) (*tictactoe.View, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.Cell == nil {
		return nil, ErrCellRequired
	}

	return that.uGame.ClickCell(ctx, sessionID, *payload.Cell)
}

func (that *Server) handleJump(ctx context.Context, sessionID string, msg *Message) (*tictactoe.View, error) {
	payload, err := decodePayload(msg)
	if err != nil {
		return nil, err
	}

	if payload.Step == nil {
		return nil, ErrStepRequired
	}

	return that.uGame.JumpTo(ctx, sessionID, *payload.Step)
}

func (that *Server) handleSort(ctx context.Context, sessionID string, _ *Message) (*tictactoe.View, error) {
	return that.uGame.ToggleSort(ctx, sessionID)
}

func (that *Server) handleRestart(ctx context.Context, sessionID string, _ *Message) (*tictactoe.View, error) {
	return that.uGame.Restart(ctx, sessionID)
}

func decodePayload(msg *Message) (*RequestPayload, error) {
	var payload RequestPayload
	if len(msg.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}
