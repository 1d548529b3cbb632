package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	t.Run("login legal from anonymous and expired", func(t *testing.T) {
		assert.True(t, allowed(StateAnonymous, StateAuthenticating, eventLoginStart))
		assert.True(t, allowed(StateExpired, StateAuthenticating, eventLoginStart))
	})

	t.Run("login never completes from outside authenticating", func(t *testing.T) {
		assert.False(t, allowed(StateAnonymous, StateAuthenticated, eventLoginOK))
		assert.False(t, allowed(StateExpired, StateAuthenticated, eventLoginOK))
	})

	t.Run("failed login may land on either prior state", func(t *testing.T) {
		assert.True(t, allowed(StateAuthenticating, StateAnonymous, eventLoginFail))
		assert.True(t, allowed(StateAuthenticating, StateExpired, eventLoginFail))
		assert.False(t, allowed(StateAuthenticating, StateAuthenticated, eventLoginFail))
	})

	t.Run("refresh legal from every non-authenticating state", func(t *testing.T) {
		for _, from := range []State{StateAnonymous, StateAuthenticated, StateRefreshing, StateExpired} {
			assert.True(t, allowed(from, StateRefreshing, eventRefreshStart), "from %s", from)
		}
		assert.False(t, allowed(StateAuthenticating, StateRefreshing, eventRefreshStart))
	})

	t.Run("unknown event is illegal", func(t *testing.T) {
		assert.False(t, allowed(StateAnonymous, StateAuthenticated, event("promote")))
	})
}
