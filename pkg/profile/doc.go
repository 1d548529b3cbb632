// Package profile holds the user's dashboard preferences (favorite
// stations and lines, notification schedule, onboarding flag) and
// reconciles local mutations with the backend.
//
// Mutations are optimistic: the change is visible locally before the
// network round-trip, and a rejected persist restores the snapshot taken
// before the change. After any failed mutation the local profile is
// bit-for-bit the last server-confirmed state; after any successful one it
// is the backend's authoritative response.
package profile
