package profile

import "log/slog"

// Option is a functional option for configuring the Store.
type Option func(*Store)

// WithLogger sets the logger for background failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}
