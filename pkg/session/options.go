package session

import "log/slog"

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithLogger sets the logger used for background and best-effort failures.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}
