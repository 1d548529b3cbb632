// Package stationcache maintains a rate-limited, periodically refreshed
// snapshot of the live station-status feed. Data is replaced wholesale on
// success and retained on failure, so transient backend errors never blank
// the dashboard. The background loop's timer is owned by the Cache value
// itself, with Start and Stop as its only mutators.
//
// A fetch rejected by the cooldown never sets the loading flag; only a
// dispatched fetch toggles it.
package stationcache
