// Package api implements the typed client for the HR backend.
//
// Every call is normalized into a Response envelope: expected failures
// (unreachable server, unparsable body, non-2xx status) never surface as
// Go errors; callers branch on Success. The error return on each method
// is reserved for caller defects such as an unserializable body.
//
// The client is the exclusive owner of the bearer token. The token is
// restored from the injected credential store at construction, adopted on
// successful login or refresh, and removed on logout or when the session
// controller detects invalidity.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hrops/hrc/internal/credstore"
)

// NetworkErrorMessage is the envelope message for transport-level
// failures: the request never reached the server or the body could not
// be parsed.
const NetworkErrorMessage = "Network error occurred"

// genericErrorMessage is used when a non-2xx response carries no message.
const genericErrorMessage = "An error occurred"

// Response is the uniform envelope every call resolves to.
//
// Errors maps field names to their validation messages when the backend
// rejects a payload; it is nil for transport failures and successes.
type Response[T any] struct {
	Success bool                `json:"success"`
	Data    T                   `json:"data,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// Client talks to the HR backend.
//
// Thread-safety: safe for concurrent use; the token is guarded by a
// mutex and each request reads it once.
type Client struct {
	baseURL string
	http    *http.Client
	store   credstore.Store

	mu    sync.Mutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the backend at baseURL and restores any
// previously stored token. No network calls happen here.
func New(baseURL string, store credstore.Store, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}

	tok, ok, err := store.Get(credstore.TokenKey)
	if err != nil {
		return nil, fmt.Errorf("restore token: %w", err)
	}
	if ok {
		c.token = tok
	}
	return c, nil
}

// SetToken adopts a token and persists it. Idempotent; no side effects
// beyond the credential store.
func (c *Client) SetToken(token string) error {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if err := c.store.Set(credstore.TokenKey, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// ClearToken drops the in-memory token and removes the persisted value.
// Idempotent.
func (c *Client) ClearToken() error {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if err := c.store.Remove(credstore.TokenKey); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}

// Token returns the current bearer token, or "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// HasToken reports whether a bearer token is set.
func (c *Client) HasToken() bool {
	return c.Token() != ""
}

// TokenExpired reports whether the stored token is a JWT whose expiry has
// definitely passed. The signature is not verified (only the server can
// do that), so this is a local pre-check, not an authentication
// decision. Opaque (non-JWT) tokens and tokens without an exp claim
// report false.
func (c *Client) TokenExpired() bool {
	tok := c.Token()
	if tok == "" {
		return false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}

// Raw performs a request with caller-supplied headers and returns the
// undecoded payload. Caller headers override the defaults. Domain methods
// cover the whole backend surface; Raw exists for endpoints added to the
// backend before this client learns about them.
func (c *Client) Raw(ctx context.Context, method, endpoint string, body any, headers map[string]string) (Response[json.RawMessage], error) {
	return request[json.RawMessage](c, ctx, method, endpoint, body, headers)
}

// request is the primitive every domain method goes through. It builds
// the absolute URL, stamps the standard headers plus the bearer token
// when one is set, performs the round trip, and normalizes the outcome
// into the envelope.
func request[T any](c *Client, ctx context.Context, method, endpoint string, body any, headers map[string]string) (Response[T], error) {
	var resp Response[T]

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return resp, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return resp, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.Must(uuid.NewV7()).String())
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res, err := c.http.Do(req)
	if err != nil {
		resp.Message = NetworkErrorMessage
		return resp, nil
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		resp.Message = NetworkErrorMessage
		return resp, nil
	}

	var envelope struct {
		Data    json.RawMessage     `json:"data"`
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := json.Unmarshal(raw, &envelope); err != nil {
			// Not valid JSON after all (HTML error page, truncated body).
			resp.Message = NetworkErrorMessage
			return resp, nil
		}
	} else if !json.Valid(raw) {
		resp.Message = NetworkErrorMessage
		return resp, nil
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		resp.Message = envelope.Message
		if resp.Message == "" {
			resp.Message = genericErrorMessage
		}
		resp.Errors = envelope.Errors
		return resp, nil
	}

	// Success: unwrap a nested data field when present, otherwise take
	// the body as the payload directly.
	payload := raw
	if len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		payload = envelope.Data
	}
	if err := json.Unmarshal(payload, &resp.Data); err != nil {
		return Response[T]{Message: NetworkErrorMessage}, nil
	}

	resp.Success = true
	resp.Message = envelope.Message
	return resp, nil
}

// endpointWithQuery appends encoded query parameters to an endpoint,
// leaving it untouched when there are none. url.Values.Encode sorts by
// key, so the result is deterministic regardless of how the filter was
// built.
func endpointWithQuery(endpoint string, v url.Values) string {
	q := v.Encode()
	if q == "" {
		return endpoint
	}
	return endpoint + "?" + q
}
