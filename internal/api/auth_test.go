package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrops/hrc/internal/credstore"
)

func loginHandler(t *testing.T, token string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/hr/login", r.URL.Path)

		var creds Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))

		if creds.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Invalid credentials"})
			return
		}

		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"user":        map[string]any{"id": 1, "name": "Ali", "email": creds.Email},
				"hr_employee": map[string]any{"id": 11, "employee_id": "EMP-001"},
				"token":       token,
				"permissions": map[string]bool{"employees.view": true},
			},
		})
	})
}

func TestLogin_AdoptsToken(t *testing.T) {
	c, store, _ := newTestClient(t, loginHandler(t, "issued-token"))

	resp, err := c.Login(context.Background(), Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, "Ali", resp.Data.User.Name)
	assert.Equal(t, "EMP-001", resp.Data.Employee.EmployeeID)
	assert.True(t, resp.Data.Permissions["employees.view"])

	// The token was adopted and persisted.
	assert.Equal(t, "issued-token", c.Token())
	stored, ok, err := store.Get(credstore.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "issued-token", stored)
}

func TestLogin_FailureLeavesTokenAlone(t *testing.T) {
	c, _, _ := newTestClient(t, loginHandler(t, "unused"))
	require.NoError(t, c.SetToken("pre-existing"))

	resp, err := c.Login(context.Background(), Credentials{Email: "a@b.c", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid credentials", resp.Message)
	assert.Equal(t, "pre-existing", c.Token())
}

func TestLogout_ClearsTokenOnSuccess(t *testing.T) {
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/hr/logout", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Logged out"})
	}))
	require.NoError(t, c.SetToken("tok"))

	resp, err := c.Logout(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.False(t, c.HasToken())
	_, ok, _ := store.Get(credstore.TokenKey)
	assert.False(t, ok)
}

func TestLogout_KeepsTokenOnFailure(t *testing.T) {
	// The API layer only clears on success; guaranteed local clearing is
	// the session controller's job.
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{}`))
	}))
	require.NoError(t, c.SetToken("tok"))

	resp, err := c.Logout(context.Background())
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.True(t, c.HasToken())
}

func TestMe(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/hr/me", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"user":        map[string]any{"id": 2, "name": "Sara"},
				"hr_employee": map[string]any{"id": 22, "employee_id": "EMP-002"},
				"permissions": map[string]bool{"leave_requests.approve": true},
			},
		})
	}))

	resp, err := c.Me(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)
	assert.Equal(t, "Sara", resp.Data.User.Name)
	assert.Equal(t, 22, resp.Data.Employee.ID)
	assert.True(t, resp.Data.Permissions["leave_requests.approve"])
}

func TestRefresh_AdoptsNewToken(t *testing.T) {
	c, store, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/hr/refresh", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"token": "fresh-token"},
		})
	}))
	require.NoError(t, c.SetToken("stale-token"))

	resp, err := c.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, resp.Success)

	assert.Equal(t, "fresh-token", c.Token())
	stored, _, _ := store.Get(credstore.TokenKey)
	assert.Equal(t, "fresh-token", stored)
}

func TestHealthAndDebug(t *testing.T) {
	c, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hr/health":
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
		case "/hr/debug":
			_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"uptime": 12}})
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{}`))
		}
	}))

	health, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.True(t, health.Success)

	debug, err := c.Debug(context.Background())
	require.NoError(t, err)
	assert.True(t, debug.Success)
	assert.JSONEq(t, `{"uptime":12}`, string(debug.Data))
}
