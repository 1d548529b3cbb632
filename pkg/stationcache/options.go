package stationcache

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Cache.
type Option func(*Cache)

// WithLogger sets the logger for background refresh failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.log = log
		}
	}
}

// WithNowFunc replaces the clock, for tests exercising the cooldown window.
func WithNowFunc(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}
