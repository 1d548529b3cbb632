package profile

import "errors"

var (
	// ErrLoadFailed indicates the profile could not be fetched (other than 404).
	ErrLoadFailed = errors.New("profile.load_failed")

	// ErrSaveFailed indicates the backend rejected a profile update.
	ErrSaveFailed = errors.New("profile.save_failed")

	// ErrNoProfile indicates a mutation on a profile that is absent or not loaded.
	ErrNoProfile = errors.New("profile.no_profile")
)
