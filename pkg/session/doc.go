// Package session owns the authentication credential and its lifecycle:
// login, best-effort logout, cookie-based refresh, and restore from durable
// storage. The lifecycle is an explicit state machine (anonymous,
// authenticating, authenticated, refreshing, expired) with a legality table
// guarding transitions.
//
// The manager is the only writer of the raw credential; other components
// consume AuthorizationHeader, a pure read that derives a bearer header
// without touching storage or the network. Overlapping refreshes are
// permitted and converge on whichever response completes last, which is
// safe because the refresh endpoint is idempotent.
package session
