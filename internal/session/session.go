// Package session owns the process-wide authentication state: who is
// logged in, their employee profile, and their permission map.
//
// The Controller is the single writer of that state; everything else
// reads through Snapshot. Token lifecycle is delegated to the API client,
// which in turn persists through the credential store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/hrops/hrc/internal/api"
	"github.com/hrops/hrc/internal/hr"
)

// EventKind identifies a session lifecycle notification.
type EventKind string

const (
	// EventLoggedIn fires after a successful login.
	EventLoggedIn EventKind = "logged_in"
	// EventLoginFailed fires after a failed login, carrying the message
	// to show the user.
	EventLoginFailed EventKind = "login_failed"
	// EventLoggedOut fires after logout completes locally, whether or
	// not the server call succeeded.
	EventLoggedOut EventKind = "logged_out"
	// EventRefreshed fires after RefreshUser resynchronizes state.
	EventRefreshed EventKind = "refreshed"
)

// Event is a session lifecycle notification delivered to the Notifier.
type Event struct {
	Kind    EventKind
	Message string
}

// Notifier receives session events. It is invoked synchronously from the
// operation that caused the event, never concurrently with itself.
type Notifier func(Event)

// Snapshot is a consistent read of the session. User and Employee are
// set and cleared together; no snapshot ever carries one without the
// other.
type Snapshot struct {
	User        *hr.User
	Employee    *hr.EmployeeProfile
	Permissions map[string]bool
	Loading     bool
}

// Authenticated reports whether the snapshot carries a decided,
// logged-in identity.
func (s Snapshot) Authenticated() bool {
	return s.User != nil && s.Employee != nil
}

// HasPermission reports whether the named permission is granted.
func (s Snapshot) HasPermission(name string) bool {
	return s.Permissions[name]
}

// Controller drives the session state machine: Initializing (loading,
// no user) → Unauthenticated or Authenticated, with Login, Logout, and
// RefreshUser moving between the latter two. While Login or RefreshUser
// is in flight the snapshot reports Loading and callers should treat the
// state as undecided.
//
// Controller methods are safe to call from multiple goroutines, but the
// type is not designed for overlapping Login calls; callers drive it
// sequentially (the command surface does) or gate on Loading themselves.
type Controller struct {
	client *api.Client
	notify Notifier
	logger *slog.Logger

	mu          sync.Mutex
	user        *hr.User
	employee    *hr.EmployeeProfile
	permissions map[string]bool
	loading     bool
}

// New creates a controller in the Initializing state. notify may be nil.
func New(client *api.Client, notify Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if notify == nil {
		notify = func(Event) {}
	}
	return &Controller{
		client:      client,
		notify:      notify,
		logger:      logger,
		permissions: map[string]bool{},
		loading:     true,
	}
}

// Snapshot returns a consistent copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	perms := make(map[string]bool, len(c.permissions))
	for k, v := range c.permissions {
		perms[k] = v
	}
	return Snapshot{
		User:        c.user,
		Employee:    c.employee,
		Permissions: perms,
		Loading:     c.loading,
	}
}

// Initialize resolves the startup state from any stored token. Every
// failure path (missing, expired, or rejected token, unreachable server)
// ends Unauthenticated with the stored token cleared, without assuming
// the API layer already did so. Runs once at startup.
func (c *Controller) Initialize(ctx context.Context) error {
	defer c.setLoading(false)

	if !c.client.HasToken() {
		return nil
	}
	if c.client.TokenExpired() {
		// Definitely stale; skip the doomed round trip.
		c.logger.Debug("stored token expired, clearing")
		return c.client.ClearToken()
	}

	resp, err := c.client.Me(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		c.logger.Debug("identity check failed", "message", resp.Message)
		return c.client.ClearToken()
	}

	c.adopt(resp.Data.User, resp.Data.Employee, resp.Data.Permissions)
	return nil
}

// Login authenticates with the backend. Returns true when the session is
// now authenticated; on failure the state stays unauthenticated and the
// server-provided (or generic) message is surfaced through the notifier
// exactly once. Loading is reset on every path out.
func (c *Controller) Login(ctx context.Context, creds api.Credentials) (bool, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	resp, err := c.client.Login(ctx, creds)
	if err != nil {
		return false, err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Login failed"
		}
		c.notify(Event{Kind: EventLoginFailed, Message: msg})
		return false, nil
	}

	c.adopt(resp.Data.User, resp.Data.Employee, resp.Data.Permissions)
	c.notify(Event{Kind: EventLoggedIn, Message: "Logged in successfully"})
	return true, nil
}

// Logout ends the session. The server call is best-effort: a network
// failure never prevents the local state and stored token from clearing.
func (c *Controller) Logout(ctx context.Context) error {
	if resp, err := c.client.Logout(ctx); err != nil {
		c.logger.Warn("logout request failed", "error", err)
	} else if !resp.Success {
		c.logger.Warn("logout rejected by server", "message", resp.Message)
	}

	c.clear()
	err := c.client.ClearToken()
	c.notify(Event{Kind: EventLoggedOut, Message: "Logged out successfully"})
	return err
}

// RefreshUser re-reads the identity to resynchronize permissions and
// profile. Any failure converges to the same terminal state as Logout,
// never leaving stale or partial session data behind.
func (c *Controller) RefreshUser(ctx context.Context) error {
	resp, err := c.client.Me(ctx)
	if err != nil {
		return err
	}
	if !resp.Success {
		c.logger.Debug("refresh failed, logging out", "message", resp.Message)
		return c.Logout(ctx)
	}

	c.adopt(resp.Data.User, resp.Data.Employee, resp.Data.Permissions)
	c.notify(Event{Kind: EventRefreshed})
	return nil
}

func (c *Controller) adopt(user hr.User, employee hr.EmployeeProfile, perms map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = &user
	c.employee = &employee
	if perms == nil {
		perms = map[string]bool{}
	}
	c.permissions = perms
}

func (c *Controller) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.user = nil
	c.employee = nil
	c.permissions = map[string]bool{}
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = v
}
