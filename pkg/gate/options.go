package gate

import (
	"log/slog"
	"net/http"
)

// Option is a functional option for configuring the Gate.
type Option func(*Gate)

// WithHTTPClient replaces the client used for validation calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *Gate) {
		if hc != nil {
			g.http = hc
		}
	}
}

// WithProtectedFunc replaces the prefix-based protected-route predicate.
func WithProtectedFunc(fn func(r *http.Request) bool) Option {
	return func(g *Gate) {
		g.protected = fn
	}
}

// WithLogger sets the logger for validation failures.
func WithLogger(log *slog.Logger) Option {
	return func(g *Gate) {
		if log != nil {
			g.log = log
		}
	}
}
