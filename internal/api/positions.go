package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/hrops/hrc/internal/hr"
)

// ListPositions fetches all positions.
func (c *Client) ListPositions(ctx context.Context) (Response[hr.PositionPage], error) {
	return request[hr.PositionPage](c, ctx, http.MethodGet, "/hr/positions", nil, nil)
}

// GetPosition fetches one position by id.
func (c *Client) GetPosition(ctx context.Context, id int) (Response[hr.Position], error) {
	return request[hr.Position](c, ctx, http.MethodGet, fmt.Sprintf("/hr/positions/%d", id), nil, nil)
}

// CreatePosition creates a position.
func (c *Client) CreatePosition(ctx context.Context, payload hr.CreatePosition) (Response[hr.Position], error) {
	return request[hr.Position](c, ctx, http.MethodPost, "/hr/positions", payload, nil)
}

// UpdatePosition applies a partial update. Keys are wire field names.
func (c *Client) UpdatePosition(ctx context.Context, id int, fields map[string]any) (Response[hr.Position], error) {
	return request[hr.Position](c, ctx, http.MethodPut, fmt.Sprintf("/hr/positions/%d", id), fields, nil)
}

// DeletePosition removes a position.
func (c *Client) DeletePosition(ctx context.Context, id int) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodDelete, fmt.Sprintf("/hr/positions/%d", id), nil, nil)
}
