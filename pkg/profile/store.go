package profile

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/duckcross/transitkit/pkg/apiclient"
)

// Store holds the user's profile and applies mutations optimistically:
// local state changes first, the backend is persisted asynchronously from
// the caller's point of view, and a failed persist restores the exact
// pre-mutation snapshot. State changes are applied in request completion
// order under one mutex.
type Store struct {
	mu      sync.Mutex
	profile *apiclient.Profile // confirmed or speculative state; nil = absent
	loaded  bool               // true once a load completed, even with a 404
	lastErr error

	api *apiclient.Client
	log *slog.Logger
}

// New creates a profile store over the given API client.
func New(api *apiclient.Client, opts ...Option) *Store {
	if api == nil {
		panic("profile: api client is required")
	}

	s := &Store{
		api: api,
		log: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoadProfile fetches and replaces the profile. A 404 means the user has no
// profile yet and is recorded as an explicit absence, not an error.
func (s *Store) LoadProfile(ctx context.Context) error {
	fetched, err := s.api.GetProfile(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, apiclient.ErrNotFound) {
			s.profile = nil
			s.loaded = true
			s.lastErr = nil
			return nil
		}
		s.lastErr = errors.Join(ErrLoadFailed, err)
		return s.lastErr
	}

	s.profile = fetched
	s.loaded = true
	s.lastErr = nil
	return nil
}

// SaveProfile sends a partial update and replaces the local profile with
// the backend's authoritative response. On failure the prior state stays in
// place. This is the single non-optimistic primitive the optimistic
// mutators route through.
func (s *Store) SaveProfile(ctx context.Context, patch apiclient.ProfilePatch) error {
	updated, err := s.api.UpdateProfile(ctx, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = errors.Join(ErrSaveFailed, err)
		return s.lastErr
	}

	s.profile = updated
	s.loaded = true
	s.lastErr = nil
	return nil
}

// ToggleFavoriteStation flips the station's membership in the favorites
// set, visible locally before the backend confirms.
func (s *Store) ToggleFavoriteStation(ctx context.Context, stationID string) error {
	return s.mutate(ctx, func(p *apiclient.Profile) apiclient.ProfilePatch {
		p.FavoriteStations = toggle(p.FavoriteStations, stationID)
		return apiclient.ProfilePatch{FavoriteStations: p.FavoriteStations}
	})
}

// ToggleFavoriteLine flips the line's membership in the favorites set.
func (s *Store) ToggleFavoriteLine(ctx context.Context, lineID string) error {
	return s.mutate(ctx, func(p *apiclient.Profile) apiclient.ProfilePatch {
		p.FavoriteLines = toggle(p.FavoriteLines, lineID)
		return apiclient.ProfilePatch{FavoriteLines: p.FavoriteLines}
	})
}

// SetNotificationSchedule replaces the weekly schedule. A nil schedule
// clears it.
func (s *Store) SetNotificationSchedule(ctx context.Context, ns *apiclient.NotificationSchedule) error {
	return s.mutate(ctx, func(p *apiclient.Profile) apiclient.ProfilePatch {
		if ns != nil {
			cp := *ns
			p.NotificationSchedule = &cp
		} else {
			p.NotificationSchedule = nil
		}
		return apiclient.ProfilePatch{SetNotificationSchedule: true, NotificationSchedule: ns}
	})
}

// SetNeedsWelcome records whether the onboarding flow should run.
func (s *Store) SetNeedsWelcome(ctx context.Context, value bool) error {
	return s.mutate(ctx, func(p *apiclient.Profile) apiclient.ProfilePatch {
		p.NeedsWelcome = value
		return apiclient.ProfilePatch{NeedsWelcome: &value}
	})
}

// ClearProfile drops all local profile state, for logout.
func (s *Store) ClearProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = nil
	s.loaded = false
	s.lastErr = nil
}

// Profile returns a copy of the current profile, or nil when absent or not
// yet loaded. Callers can mutate the copy freely.
func (s *Store) Profile() *apiclient.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile.Clone()
}

// Loaded reports whether a load has completed, including the no-profile case.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LastError returns the most recent load/save failure, nil after a success.
func (s *Store) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// toggle flips membership, preserving the order of the remaining ids and
// never producing duplicates. The result is always non-nil so an emptied
// set still serializes as an empty array.
func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
