package stationcache

import "errors"

var (
	// ErrFetchFailed indicates the station feed could not be fetched.
	ErrFetchFailed = errors.New("stationcache.fetch_failed")

	// ErrRateLimited indicates a fetch was rejected by the cooldown window.
	ErrRateLimited = errors.New("stationcache.rate_limited")
)
