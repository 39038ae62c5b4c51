package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/config"
	"github.com/hrops/hrc/internal/credstore"
)

// testRootOptions builds root options whose commands run against a fake
// backend instead of the on-disk config and credential store.
func testRootOptions(t *testing.T, handler http.Handler) (*RootOptions, *credstore.Memory) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	client, err := api.New(srv.URL, store)
	require.NoError(t, err)

	opts := &RootOptions{Format: "text"}
	opts.newApp = func(*RootOptions) (*App, func(), error) {
		app := newTestApp(config.Config{APIBaseURL: srv.URL}, store, client)
		return app, func() {}, nil
	}
	return opts, store
}

func runCommand(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func envelope(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestLoginCommand_Success(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/login", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"user":  map[string]any{"id": 1, "name": "Ada Lovelace", "email": "ada@example.com", "level": "admin"},
				"token": "tok-123",
			},
		})
	})
	opts, store := testRootOptions(t, mux)

	out, err := runCommand(t, NewLoginCommand(opts), "--email", "ada@example.com", "--password", "secret")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as Ada Lovelace <ada@example.com>")

	tok, ok, err := store.Get(credstore.TokenKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-123", tok)
}

func TestLoginCommand_BackendRejects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/login", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusUnauthorized, map[string]any{
			"success": false,
			"message": "Invalid credentials",
		})
	})
	opts, store := testRootOptions(t, mux)

	out, err := runCommand(t, NewLoginCommand(opts), "--email", "ada@example.com", "--password", "wrong")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error: Invalid credentials")

	_, ok, err := store.Get(credstore.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoginCommand_MissingFlags(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())
	_, err := runCommand(t, NewLoginCommand(opts))
	require.Error(t, err)
}

func TestLogoutCommand_ClearsTokenEvenWhenBackendFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/logout", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "Server error",
		})
	})
	opts, store := testRootOptions(t, mux)
	require.NoError(t, store.Set(credstore.TokenKey, "tok-123"))

	out, err := runCommand(t, NewLogoutCommand(opts))
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, ok, err := store.Get(credstore.TokenKey)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWhoamiCommand_NotLoggedIn(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())

	out, err := runCommand(t, NewWhoamiCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Not logged in")
}

func TestEmployeeListCommand_TextOutput(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /hr/employees", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "page=2&search=ada", r.URL.RawQuery)
		envelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"employees": []map[string]any{
					{
						"id": 1, "employee_id": "EMP-001",
						"user":            map[string]any{"id": 1, "name": "Ada Lovelace", "email": "ada@example.com"},
						"employment_type": "full_time", "is_active": true,
					},
				},
				"pagination": map[string]any{"current_page": 2, "last_page": 3, "per_page": 15, "total": 40},
			},
		})
	})
	opts, _ := testRootOptions(t, mux)

	out, err := runCommand(t, NewEmployeeCommand(opts), "list", "--search", "ada", "--page", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "EMP-001")
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "Page 2 of 3 (40 total)")
}

func TestEmployeeUpdateCommand_RequiresAField(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())

	_, err := runCommand(t, NewEmployeeCommand(opts), "update", "7")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestEmployeeShowCommand_BadID(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())

	_, err := runCommand(t, NewEmployeeCommand(opts), "show", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDepartmentCreateCommand_UppercasesCode(t *testing.T) {
	var gotCode string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/departments", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotCode, _ = body["code"].(string)
		envelope(w, http.StatusCreated, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 5, "code": "ENG", "name": "Engineering", "is_active": true},
		})
	})
	opts, _ := testRootOptions(t, mux)

	out, err := runCommand(t, NewDepartmentCommand(opts), "create", "--code", "eng", "--name", "Engineering")
	require.NoError(t, err)
	assert.Equal(t, "ENG", gotCode)
	assert.Contains(t, out, "Created department ENG (id 5)")
}

func TestPositionCreateCommand_RejectsInvertedSalaryRange(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())

	out, err := runCommand(t, NewPositionCommand(opts),
		"create", "--title", "Engineer", "--code", "ENG-1",
		"--salary-min", "5000", "--salary-max", "1000")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error: Validation failed")
	assert.Contains(t, out, "base_salary_max")
}

func TestLeaveRejectCommand_SendsReason(t *testing.T) {
	var gotReason string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /hr/leave-requests/9/reject", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotReason, _ = body["rejection_reason"].(string)
		envelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"id": 9, "status": "rejected"},
		})
	})
	opts, _ := testRootOptions(t, mux)

	out, err := runCommand(t, NewLeaveCommand(opts), "reject", "9", "--reason", "No coverage that week")
	require.NoError(t, err)
	assert.Equal(t, "No coverage that week", gotReason)
	assert.Contains(t, out, "Rejected leave request 9")
}

func TestAttendanceListCommand_LocalSearch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /hr/attendances", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{
				"attendances": []map[string]any{
					{"id": 1, "employee_id": 3, "date": "2026-03-02",
						"employee": map[string]any{"id": 3, "name": "Ada Lovelace", "email": "ada@example.com"}},
					{"id": 2, "employee_id": 4, "date": "2026-03-02",
						"employee": map[string]any{"id": 4, "name": "Grace Hopper", "email": "grace@example.com"}},
				},
				"pagination": map[string]any{"current_page": 1, "last_page": 1, "per_page": 15, "total": 2},
			},
		})
	})
	opts, _ := testRootOptions(t, mux)

	out, err := runCommand(t, NewAttendanceCommand(opts), "list", "--search", "ada")
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.NotContains(t, out, "Grace Hopper")
}

func TestStatusCommand_BackendDown(t *testing.T) {
	opts, _ := testRootOptions(t, http.NewServeMux())

	out, err := runCommand(t, NewStatusCommand(opts))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "Error:")
}

func TestJSONFormat_EmitsEnvelope(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /hr/health", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, map[string]any{"success": true, "data": map[string]any{"status": "ok"}})
	})
	opts, _ := testRootOptions(t, mux)
	opts.Format = "json"

	out, err := runCommand(t, NewStatusCommand(opts))
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
}
