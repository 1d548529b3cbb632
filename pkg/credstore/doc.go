// Package credstore persists the session credential (access token and user
// id) across process restarts. It is the single mutable cell shared by
// login, refresh, logout, and restore: every writer replaces the whole cell
// from a fresh read, so the register is last-writer-wins by construction.
//
// Three backends are provided: MemoryStore for tests and ephemeral
// sessions, FileStore for a single-user desktop dashboard, and RedisStore
// for kiosk fleets sharing one session across processes.
package credstore
