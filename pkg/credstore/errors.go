package credstore

import "errors"

var (
	// ErrNotFound indicates no credentials are persisted.
	ErrNotFound = errors.New("credstore.not_found")

	// ErrPersistFailed indicates the backend rejected a write.
	ErrPersistFailed = errors.New("credstore.persist_failed")
)
