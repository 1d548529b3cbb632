package session

import "errors"

var (
	// ErrInvalidCredentials indicates the backend rejected the login.
	ErrInvalidCredentials = errors.New("session.invalid_credentials")

	// ErrRefreshFailed indicates the backend refused to refresh the credential.
	ErrRefreshFailed = errors.New("session.refresh_failed")
)
