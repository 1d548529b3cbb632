// Package apiclient implements the fixed /v1 contract of the transit
// backend: credential login, cookie-based refresh, best-effort logout,
// profile load and partial update, and the unauthenticated station-status
// feed.
//
// The client is transport plumbing only. Session state, optimistic profile
// mutation, and poll scheduling live in the session, profile, and
// stationcache packages, all of which share one Client so the HTTP-only
// refresh cookie set at login is visible to later refresh calls.
package apiclient
