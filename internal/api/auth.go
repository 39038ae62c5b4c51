package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hrops/hrc/internal/hr"
)

// Credentials is the login payload.
type Credentials struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me,omitempty"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User        hr.User            `json:"user"`
	Employee    hr.EmployeeProfile `json:"hr_employee"`
	Token       string             `json:"token"`
	Permissions map[string]bool    `json:"permissions"`
}

// Identity is the payload of the "who am I" endpoint.
type Identity struct {
	User        hr.User            `json:"user"`
	Employee    hr.EmployeeProfile `json:"hr_employee"`
	Permissions map[string]bool    `json:"permissions"`
}

// TokenResult is the payload of a token refresh.
type TokenResult struct {
	Token string `json:"token"`
}

// Login authenticates and, on success, adopts the returned token. This
// and Refresh are the only domain methods that mutate token state.
func (c *Client) Login(ctx context.Context, creds Credentials) (Response[LoginResult], error) {
	resp, err := request[LoginResult](c, ctx, http.MethodPost, "/hr/login", creds, nil)
	if err != nil {
		return resp, err
	}
	if resp.Success && resp.Data.Token != "" {
		if err := c.SetToken(resp.Data.Token); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Logout ends the server-side session and, on success, clears the stored
// token. Callers that must guarantee a local clear regardless of the
// network outcome (the session controller does) call ClearToken
// themselves afterwards.
func (c *Client) Logout(ctx context.Context) (Response[json.RawMessage], error) {
	resp, err := request[json.RawMessage](c, ctx, http.MethodPost, "/hr/logout", nil, nil)
	if err != nil {
		return resp, err
	}
	if resp.Success {
		if err := c.ClearToken(); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (Response[Identity], error) {
	return request[Identity](c, ctx, http.MethodGet, "/hr/me", nil, nil)
}

// Refresh exchanges the current token for a fresh one and adopts it.
func (c *Client) Refresh(ctx context.Context) (Response[TokenResult], error) {
	resp, err := request[TokenResult](c, ctx, http.MethodPost, "/hr/refresh", nil, nil)
	if err != nil {
		return resp, err
	}
	if resp.Success && resp.Data.Token != "" {
		if err := c.SetToken(resp.Data.Token); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// Health pings the backend health endpoint.
func (c *Client) Health(ctx context.Context) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodGet, "/hr/health", nil, nil)
}

// Debug returns the backend debug snapshot.
func (c *Client) Debug(ctx context.Context) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, http.MethodGet, "/hr/debug", nil, nil)
}
