package credstore

import "context"

// Credentials is the persisted session state: the opaque access token and
// the user identifier it was issued for. It survives process restarts under
// the fixed keys "accessToken" and "userId".
type Credentials struct {
	AccessToken string `json:"accessToken"`
	UserID      *int64 `json:"userId,omitempty"`
}

// Store is a single-cell credential register. Writers always replace the
// whole cell (last writer wins); each caller computes its value from a
// fresh read, so no cross-process locking is needed for session validity.
type Store interface {
	// Load returns the persisted credentials or ErrNotFound.
	Load(ctx context.Context) (Credentials, error)

	// Save replaces the persisted credentials.
	Save(ctx context.Context, creds Credentials) error

	// Clear removes the persisted credentials. Clearing an empty store is
	// not an error.
	Clear(ctx context.Context) error
}
