package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duckcross/transitkit/pkg/apiclient"
	"github.com/duckcross/transitkit/pkg/credstore"
	"github.com/duckcross/transitkit/pkg/session"
)

// fakeBackend scripts the auth endpoints and counts calls.
type fakeBackend struct {
	mu sync.Mutex

	loginStatus   int
	refreshStatus int
	refreshToken  string
	refreshTokens []string              // per-call override of refreshToken
	holdRefresh   map[int]chan struct{} // nth refresh blocks until its channel closes
	logoutStatus  int

	loginCalls   int
	refreshCalls int
	logoutCalls  int
}

func (b *fakeBackend) refreshCallCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refreshCalls
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.loginCalls++
		status := b.loginStatus
		b.mu.Unlock()
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": "tok1", "id": 7})
	})
	mux.HandleFunc("POST /v1/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.refreshCalls++
		call := b.refreshCalls
		status := b.refreshStatus
		token := b.refreshToken
		if call <= len(b.refreshTokens) {
			token = b.refreshTokens[call-1]
		}
		hold := b.holdRefresh[call]
		b.mu.Unlock()

		if hold != nil {
			<-hold
		}
		if status != 0 && status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		if token == "" {
			token = "tok2"
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"accessToken": token})
	})
	mux.HandleFunc("POST /v1/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.logoutCalls++
		status := b.logoutStatus
		b.mu.Unlock()
		if status != 0 {
			w.WriteHeader(status)
		}
	})
	return mux
}

func setup(t *testing.T, backend *fakeBackend) (*session.Manager, *credstore.MemoryStore) {
	t.Helper()

	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)

	api, err := apiclient.New(apiclient.Config{BaseURL: srv.URL})
	require.NoError(t, err)

	creds := credstore.NewMemoryStore()
	return session.New(api, creds), creds
}

func TestManager_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("success authenticates and persists", func(t *testing.T) {
		backend := &fakeBackend{}
		manager, creds := setup(t, backend)

		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		assert.Equal(t, session.StateAuthenticated, manager.State())
		assert.True(t, manager.IsAuthenticated())

		id, ok := manager.UserID()
		require.True(t, ok)
		assert.EqualValues(t, 7, id)

		persisted, err := creds.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok1", persisted.AccessToken)
		require.NotNil(t, persisted.UserID)
		assert.EqualValues(t, 7, *persisted.UserID)
	})

	t.Run("rejected login returns to prior state", func(t *testing.T) {
		backend := &fakeBackend{loginStatus: http.StatusUnauthorized}
		manager, creds := setup(t, backend)

		err := manager.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, session.ErrInvalidCredentials)
		assert.Equal(t, session.StateAnonymous, manager.State())
		assert.False(t, manager.IsAuthenticated())

		_, loadErr := creds.Load(ctx)
		assert.ErrorIs(t, loadErr, credstore.ErrNotFound)
	})

	t.Run("rejected login from expired returns to expired", func(t *testing.T) {
		backend := &fakeBackend{refreshStatus: http.StatusUnauthorized}
		manager, creds := setup(t, backend)

		require.NoError(t, creds.Save(ctx, credstore.Credentials{AccessToken: "stale"}))
		require.False(t, manager.RestoreFromStorage(ctx))
		require.Equal(t, session.StateExpired, manager.State())

		backend.loginStatus = http.StatusUnauthorized
		err := manager.Login(ctx, "a@b.com", "wrong")
		assert.ErrorIs(t, err, session.ErrInvalidCredentials)
		assert.Equal(t, session.StateExpired, manager.State())
	})
}

func TestManager_Refresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates token on success", func(t *testing.T) {
		backend := &fakeBackend{}
		manager, creds := setup(t, backend)
		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		assert.True(t, manager.Refresh(ctx))
		assert.Equal(t, session.StateAuthenticated, manager.State())
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok2"}, manager.AuthorizationHeader())

		persisted, err := creds.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok2", persisted.AccessToken)
	})

	t.Run("no prior credential fails without a network call", func(t *testing.T) {
		backend := &fakeBackend{}
		manager, _ := setup(t, backend)

		assert.False(t, manager.Refresh(ctx))
		assert.Equal(t, session.StateAnonymous, manager.State())
		assert.Zero(t, backend.refreshCalls)
	})

	t.Run("prior token keeps authorizing while a refresh is in flight", func(t *testing.T) {
		backend := &fakeBackend{holdRefresh: map[int]chan struct{}{1: make(chan struct{})}}
		manager, _ := setup(t, backend)
		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		done := make(chan bool, 1)
		go func() { done <- manager.Refresh(ctx) }()

		require.Eventually(t, func() bool {
			return manager.State() == session.StateRefreshing
		}, time.Second, 5*time.Millisecond)

		// The last completed validation accepted tok1; until the in-flight
		// revalidation lands, the session still presents it.
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok1"}, manager.AuthorizationHeader())
		assert.True(t, manager.IsAuthenticated())

		close(backend.holdRefresh[1])
		assert.True(t, <-done)
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok2"}, manager.AuthorizationHeader())
	})

	t.Run("overlapping refreshes converge on the last completion", func(t *testing.T) {
		backend := &fakeBackend{
			refreshTokens: []string{"tok-slow", "tok-fast"},
			holdRefresh:   map[int]chan struct{}{1: make(chan struct{})},
		}
		manager, creds := setup(t, backend)
		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		first := make(chan bool, 1)
		go func() { first <- manager.Refresh(ctx) }()

		require.Eventually(t, func() bool {
			return backend.refreshCallCount() == 1
		}, time.Second, 5*time.Millisecond)

		// The second call dispatches while the first is held server-side and
		// completes ahead of it.
		assert.True(t, manager.Refresh(ctx))
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok-fast"}, manager.AuthorizationHeader())

		// Releasing the held call makes its response the last to complete;
		// that response determines the terminal token.
		close(backend.holdRefresh[1])
		assert.True(t, <-first)

		assert.Equal(t, session.StateAuthenticated, manager.State())
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok-slow"}, manager.AuthorizationHeader())

		persisted, err := creds.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-slow", persisted.AccessToken)
	})

	t.Run("adopts persisted credential in a fresh process", func(t *testing.T) {
		backend := &fakeBackend{refreshToken: "tok-fresh"}
		manager, creds := setup(t, backend)

		userID := int64(7)
		require.NoError(t, creds.Save(ctx, credstore.Credentials{AccessToken: "tok-old", UserID: &userID}))

		require.True(t, manager.Refresh(ctx))

		id, ok := manager.UserID()
		require.True(t, ok)
		assert.EqualValues(t, 7, id)

		// The rewrite on success keeps the stored user id alongside the
		// rotated token.
		persisted, err := creds.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "tok-fresh", persisted.AccessToken)
		require.NotNil(t, persisted.UserID)
		assert.EqualValues(t, 7, *persisted.UserID)
	})

	t.Run("failure clears credential and expires session", func(t *testing.T) {
		backend := &fakeBackend{}
		manager, creds := setup(t, backend)
		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		backend.refreshStatus = http.StatusUnauthorized
		assert.False(t, manager.Refresh(ctx))
		assert.Equal(t, session.StateExpired, manager.State())
		assert.Empty(t, manager.AuthorizationHeader())

		_, err := creds.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})
}

func TestManager_RestoreFromStorage(t *testing.T) {
	ctx := context.Background()

	t.Run("no persisted credential stays anonymous", func(t *testing.T) {
		backend := &fakeBackend{}
		manager, _ := setup(t, backend)

		assert.False(t, manager.RestoreFromStorage(ctx))
		assert.Equal(t, session.StateAnonymous, manager.State())
		assert.Zero(t, backend.refreshCalls)
	})

	t.Run("persisted credential is validated server-side", func(t *testing.T) {
		backend := &fakeBackend{refreshToken: "tok-fresh"}
		manager, creds := setup(t, backend)

		userID := int64(7)
		require.NoError(t, creds.Save(ctx, credstore.Credentials{AccessToken: "tok-old", UserID: &userID}))

		assert.True(t, manager.RestoreFromStorage(ctx))
		assert.Equal(t, 1, backend.refreshCalls)
		assert.Equal(t, map[string]string{"Authorization": "Bearer tok-fresh"}, manager.AuthorizationHeader())

		id, ok := manager.UserID()
		require.True(t, ok)
		assert.EqualValues(t, 7, id)
	})

	t.Run("expired persisted credential never trusted", func(t *testing.T) {
		backend := &fakeBackend{refreshStatus: http.StatusUnauthorized}
		manager, creds := setup(t, backend)

		require.NoError(t, creds.Save(ctx, credstore.Credentials{AccessToken: "stale"}))

		assert.False(t, manager.RestoreFromStorage(ctx))
		assert.False(t, manager.IsAuthenticated())
		assert.Empty(t, manager.AuthorizationHeader())

		// Stale token must be gone from storage too.
		_, err := creds.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})
}

func TestManager_Logout(t *testing.T) {
	ctx := context.Background()

	t.Run("clears state even when remote logout fails", func(t *testing.T) {
		backend := &fakeBackend{logoutStatus: http.StatusBadGateway}
		manager, creds := setup(t, backend)
		require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))

		require.NoError(t, manager.Logout(ctx))

		assert.Equal(t, session.StateAnonymous, manager.State())
		assert.Empty(t, manager.AuthorizationHeader())
		assert.Equal(t, 1, backend.logoutCalls)

		_, err := creds.Load(ctx)
		assert.ErrorIs(t, err, credstore.ErrNotFound)
	})
}

func TestManager_AuthorizationHeader(t *testing.T) {
	ctx := context.Background()
	backend := &fakeBackend{}
	manager, _ := setup(t, backend)

	assert.Empty(t, manager.AuthorizationHeader())

	require.NoError(t, manager.Login(ctx, "a@b.com", "secret1"))
	assert.Equal(t, map[string]string{"Authorization": "Bearer tok1"}, manager.AuthorizationHeader())
}
