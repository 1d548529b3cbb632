package profile

import (
	"context"
	"errors"
	"log/slog"

	"github.com/duckcross/transitkit/pkg/apiclient"
)

// txn is the snapshot side of an optimistic mutation: the confirmed state
// captured before the speculative change was applied. Rollback restores
// that exact snapshot rather than recomputing an undo, so a failed mutation
// can never leave behind pieces of a concurrently queued one.
type txn struct {
	snapshot *apiclient.Profile
}

func (s *Store) beginLocked() txn {
	return txn{snapshot: s.profile.Clone()}
}

func (s *Store) rollbackLocked(tx txn) {
	s.profile = tx.snapshot
}

func (s *Store) confirmLocked(authoritative *apiclient.Profile) {
	s.profile = authoritative
}

// mutate runs the shared optimistic cycle: snapshot, apply the speculative
// change locally, persist the partial update, then confirm with the
// backend's authoritative profile or roll back to the snapshot. Every
// optimistic entry point routes through here.
func (s *Store) mutate(ctx context.Context, apply func(p *apiclient.Profile) apiclient.ProfilePatch) error {
	s.mu.Lock()
	if s.profile == nil {
		s.mu.Unlock()
		return ErrNoProfile
	}
	tx := s.beginLocked()
	patch := apply(s.profile)
	s.mu.Unlock()

	updated, err := s.api.UpdateProfile(ctx, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.rollbackLocked(tx)
		s.lastErr = errors.Join(ErrSaveFailed, err)
		s.log.WarnContext(ctx, "optimistic mutation rolled back", slog.Any("error", err))
		return s.lastErr
	}

	s.confirmLocked(updated)
	s.lastErr = nil
	return nil
}
