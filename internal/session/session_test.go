package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/credstore"
)

// fakeBackend is a minimal HR auth backend: one valid credential pair,
// one valid token. Logout can be forced to fail to exercise best-effort
// semantics.
type fakeBackend struct {
	validToken  string
	failLogout  bool
	meCalls     int
	logoutCalls int
}

func (f *fakeBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	identity := map[string]any{
		"user":        map[string]any{"id": 1, "name": "Ali", "email": "ali@example.com"},
		"hr_employee": map[string]any{"id": 11, "employee_id": "EMP-001"},
		"permissions": map[string]bool{"employees.view": true},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/login", func(w http.ResponseWriter, r *http.Request) {
		var creds api.Credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		if creds.Email != "ali@example.com" || creds.Password != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Invalid credentials"})
			return
		}
		data := map[string]any{"token": f.validToken}
		for k, v := range identity {
			data[k] = v
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	})
	mux.HandleFunc("GET /hr/me", func(w http.ResponseWriter, r *http.Request) {
		f.meCalls++
		if r.Header.Get("Authorization") != "Bearer "+f.validToken {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "Unauthenticated"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": identity})
	})
	mux.HandleFunc("POST /hr/logout", func(w http.ResponseWriter, r *http.Request) {
		f.logoutCalls++
		if f.failLogout {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"message": "Logged out"})
	})
	return mux
}

type recorder struct {
	events []Event
}

func (r *recorder) notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) ofKind(k EventKind) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == k {
			out = append(out, e)
		}
	}
	return out
}

func newController(t *testing.T, backend *fakeBackend) (*Controller, *api.Client, *credstore.Memory, *recorder) {
	t.Helper()
	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	client, err := api.New(srv.URL, store)
	require.NoError(t, err)

	rec := &recorder{}
	return New(client, rec.notify, nil), client, store, rec
}

func TestNew_StartsInitializing(t *testing.T) {
	ctrl, _, _, _ := newController(t, &fakeBackend{validToken: "tok"})

	snap := ctrl.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.Authenticated())
}

func TestInitialize_NoStoredToken(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	ctrl, _, _, _ := newController(t, backend)

	require.NoError(t, ctrl.Initialize(context.Background()))

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Authenticated())
	// No token means no identity round trip at all.
	assert.Zero(t, backend.meCalls)
}

func TestInitialize_ValidStoredToken(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	ctrl, client, _, _ := newController(t, backend)
	require.NoError(t, client.SetToken("tok"))

	require.NoError(t, ctrl.Initialize(context.Background()))

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	require.True(t, snap.Authenticated())
	assert.Equal(t, "Ali", snap.User.Name)
	assert.Equal(t, "EMP-001", snap.Employee.EmployeeID)
	assert.True(t, snap.HasPermission("employees.view"))
	assert.False(t, snap.HasPermission("employees.delete"))
}

func TestInitialize_RejectedTokenIsCleared(t *testing.T) {
	backend := &fakeBackend{validToken: "tok"}
	ctrl, client, store, _ := newController(t, backend)
	require.NoError(t, client.SetToken("revoked"))

	require.NoError(t, ctrl.Initialize(context.Background()))

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Authenticated())
	// The persisted token goes too, not just the in-memory copy.
	_, ok, _ := store.Get(credstore.TokenKey)
	assert.False(t, ok)
	assert.False(t, client.HasToken())
}

func TestLogin_Success(t *testing.T) {
	ctrl, client, _, rec := newController(t, &fakeBackend{validToken: "issued"})

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	assert.True(t, ok)

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	require.True(t, snap.Authenticated())
	assert.Equal(t, "issued", client.Token())
	assert.Len(t, rec.ofKind(EventLoggedIn), 1)
}

func TestLogin_Failure(t *testing.T) {
	ctrl, client, _, rec := newController(t, &fakeBackend{validToken: "issued"})

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, ok)

	snap := ctrl.Snapshot()
	assert.False(t, snap.Loading)
	assert.False(t, snap.Authenticated())
	assert.False(t, client.HasToken())

	// The failure message is surfaced exactly once.
	failures := rec.ofKind(EventLoginFailed)
	require.Len(t, failures, 1)
	assert.Equal(t, "Invalid credentials", failures[0].Message)
}

func TestLogout_ClearsEverything(t *testing.T) {
	backend := &fakeBackend{validToken: "issued"}
	ctrl, client, store, rec := newController(t, backend)

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ctrl.Logout(context.Background()))

	snap := ctrl.Snapshot()
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Employee)
	assert.Empty(t, snap.Permissions)
	assert.False(t, client.HasToken())
	_, stored, _ := store.Get(credstore.TokenKey)
	assert.False(t, stored)
	assert.Len(t, rec.ofKind(EventLoggedOut), 1)
	assert.Equal(t, 1, backend.logoutCalls)
}

func TestLogout_BestEffortOnServerFailure(t *testing.T) {
	backend := &fakeBackend{validToken: "issued", failLogout: true}
	ctrl, client, store, rec := newController(t, backend)

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	require.True(t, ok)

	// Server rejects the logout; local state must clear anyway.
	require.NoError(t, ctrl.Logout(context.Background()))

	snap := ctrl.Snapshot()
	assert.False(t, snap.Authenticated())
	assert.Empty(t, snap.Permissions)
	assert.False(t, client.HasToken())
	_, stored, _ := store.Get(credstore.TokenKey)
	assert.False(t, stored)
	assert.Len(t, rec.ofKind(EventLoggedOut), 1)
}

func TestRefreshUser_Resynchronizes(t *testing.T) {
	ctrl, _, _, rec := newController(t, &fakeBackend{validToken: "issued"})

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, ctrl.RefreshUser(context.Background()))

	snap := ctrl.Snapshot()
	assert.True(t, snap.Authenticated())
	assert.Len(t, rec.ofKind(EventRefreshed), 1)
}

func TestRefreshUser_FailureConvergesToLogout(t *testing.T) {
	backend := &fakeBackend{validToken: "issued"}
	ctrl, client, store, rec := newController(t, backend)

	ok, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	require.True(t, ok)

	// Invalidate the token server-side, then refresh.
	backend.validToken = "rotated"
	require.NoError(t, ctrl.RefreshUser(context.Background()))

	// Terminal state identical to an explicit logout.
	snap := ctrl.Snapshot()
	assert.Nil(t, snap.User)
	assert.Nil(t, snap.Employee)
	assert.Empty(t, snap.Permissions)
	assert.False(t, client.HasToken())
	_, stored, _ := store.Get(credstore.TokenKey)
	assert.False(t, stored)
	assert.Len(t, rec.ofKind(EventLoggedOut), 1)
}

func TestSnapshot_UserAndEmployeeTogether(t *testing.T) {
	ctrl, _, _, _ := newController(t, &fakeBackend{validToken: "issued"})

	check := func(snap Snapshot) {
		both := snap.User != nil && snap.Employee != nil
		neither := snap.User == nil && snap.Employee == nil
		assert.True(t, both || neither, "user and employee must be set/cleared together")
	}

	check(ctrl.Snapshot())
	_, err := ctrl.Login(context.Background(), api.Credentials{Email: "ali@example.com", Password: "correct"})
	require.NoError(t, err)
	check(ctrl.Snapshot())
	require.NoError(t, ctrl.Logout(context.Background()))
	check(ctrl.Snapshot())
}
