package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/duckcross/transitkit/pkg/apiclient"
	"github.com/duckcross/transitkit/pkg/credstore"
)

// Manager owns the session credential and its lifecycle. All state changes
// happen under one mutex and are applied in request completion order;
// network calls run outside the lock so overlapping operations converge on
// whichever response lands last.
type Manager struct {
	mu     sync.Mutex
	state  State
	token  string
	userID *int64

	api   *apiclient.Client
	creds credstore.Store
	log   *slog.Logger
}

// New creates a session manager. The API client and credential store are
// required; construction panics without them to surface wiring mistakes at
// startup.
func New(api *apiclient.Client, creds credstore.Store, opts ...Option) *Manager {
	if api == nil {
		panic("session: api client is required")
	}
	if creds == nil {
		panic("session: credential store is required")
	}

	m := &Manager{
		state: StateAnonymous,
		api:   api,
		creds: creds,
		log:   slog.Default(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Login authenticates with the backend and durably persists the returned
// credential. On a rejected login the session returns to the state it was
// in before the attempt.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	prior := m.state
	m.setStateLocked(eventLoginStart, StateAuthenticating)
	m.mu.Unlock()

	result, err := m.api.Login(ctx, email, password)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil {
		m.setStateLocked(eventLoginFail, prior)
		return errors.Join(ErrInvalidCredentials, err)
	}

	m.token = result.AccessToken
	userID := result.UserID
	m.userID = &userID
	m.setStateLocked(eventLoginOK, StateAuthenticated)

	m.persistLocked(ctx)
	m.log.InfoContext(ctx, "session authenticated", slog.Int64("user_id", userID))
	return nil
}

// Logout invalidates the session server-side on a best-effort basis, then
// clears the in-memory and persisted credential. Network failures are
// swallowed; only a failure to clear local persistence is returned.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.api.Logout(ctx); err != nil {
		m.log.WarnContext(ctx, "remote logout failed", slog.Any("error", err))
	}

	m.mu.Lock()
	m.token = ""
	m.userID = nil
	m.setStateLocked(eventLogout, StateAnonymous)
	m.mu.Unlock()

	return m.creds.Clear(ctx)
}

// Refresh validates the session against the backend using the HTTP-only
// refresh cookie and rotates the access token. Returns true when the
// session is authenticated afterwards. Calling without any prior credential
// is an immediate failure, not an error.
func (m *Manager) Refresh(ctx context.Context) bool {
	m.mu.Lock()
	if m.token == "" {
		// A refresh-first process adopts the persisted cell before
		// dispatching, so the rewrite on success keeps the stored user id.
		if creds, err := m.creds.Load(ctx); err == nil {
			m.token = creds.AccessToken
			if creds.UserID != nil {
				id := *creds.UserID
				m.userID = &id
			}
		}
	}
	if m.token == "" {
		// Nothing to validate; skip the doomed round-trip.
		m.state = StateAnonymous
		m.mu.Unlock()
		return false
	}
	m.setStateLocked(eventRefreshStart, StateRefreshing)
	m.mu.Unlock()

	result, err := m.api.Refresh(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	if err != nil || result.AccessToken == "" {
		m.token = ""
		m.userID = nil
		m.setStateLocked(eventRefreshFail, StateExpired)
		if err := m.creds.Clear(ctx); err != nil {
			m.log.WarnContext(ctx, "clearing stale credential failed", slog.Any("error", err))
		}
		m.log.DebugContext(ctx, "session refresh failed", slog.Any("error", errors.Join(ErrRefreshFailed, err)))
		return false
	}

	m.token = result.AccessToken
	m.setStateLocked(eventRefreshOK, StateAuthenticated)
	m.persistLocked(ctx)
	return true
}

// RestoreFromStorage loads a previously persisted credential. A present
// credential optimistically authenticates the session and is then validated
// with an immediate Refresh; a structurally valid but stale token never
// survives without that round-trip. Returns whether the session is
// authenticated after validation.
func (m *Manager) RestoreFromStorage(ctx context.Context) bool {
	creds, err := m.creds.Load(ctx)
	if err != nil {
		if !errors.Is(err, credstore.ErrNotFound) {
			m.log.WarnContext(ctx, "credential restore failed", slog.Any("error", err))
		}
		m.mu.Lock()
		m.token = ""
		m.userID = nil
		m.state = StateAnonymous
		m.mu.Unlock()
		return false
	}

	m.mu.Lock()
	m.token = creds.AccessToken
	m.userID = creds.UserID
	m.setStateLocked(eventRestore, StateAuthenticated)
	m.mu.Unlock()

	return m.Refresh(ctx)
}

// AuthorizationHeader derives the bearer header from the current
// credential. Pure read: never blocks on I/O. Empty only while no
// credential is held; a token accepted by the last completed validation
// keeps authorizing requests while a refresh is in flight.
func (m *Manager) AuthorizationHeader() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + m.token}
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// IsAuthenticated reports whether a credential accepted by the last
// completed validation is held. A failed login, refresh, or logout clears
// the token, so this stays true through in-flight revalidation and turns
// false the moment a validation rejects the credential.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != ""
}

// UserID returns the authenticated user's identifier, if known.
func (m *Manager) UserID() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.userID == nil {
		return 0, false
	}
	return *m.userID, true
}

// persistLocked writes the whole credential cell. The store is
// last-writer-wins; a persistence failure leaves the in-memory session
// valid and is only logged.
func (m *Manager) persistLocked(ctx context.Context) {
	creds := credstore.Credentials{AccessToken: m.token}
	if m.userID != nil {
		id := *m.userID
		creds.UserID = &id
	}
	if err := m.creds.Save(ctx, creds); err != nil {
		m.log.WarnContext(ctx, "persisting credential failed", slog.Any("error", err))
	}
}

// setStateLocked applies a transition, warning when it falls outside the
// legality table. Overlapping operations may observe each other's
// intermediate states; the change is applied regardless so the session
// still converges on the last completed response.
func (m *Manager) setStateLocked(ev event, to State) {
	if !allowed(m.state, to, ev) {
		m.log.Warn("unexpected session transition",
			slog.String("from", string(m.state)),
			slog.String("to", string(to)),
			slog.String("event", string(ev)),
		)
	}
	m.state = to
}
