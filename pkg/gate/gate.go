package gate

import (
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strings"
)

// Gate is a per-request admission check for protected routes. It validates
// the forwarded session cookie against the remote authority and either
// passes the request through or redirects to the landing route. The gate
// mutates nothing; it holds no session state of its own.
type Gate struct {
	cfg       Config
	http      *http.Client
	protected func(r *http.Request) bool
	log       *slog.Logger
}

// New creates a gate for the given configuration.
func New(cfg Config, opts ...Option) *Gate {
	g := &Gate{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.ValidateTimeout},
		log:  slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if g.protected == nil {
		prefix := cfg.ProtectedPrefix
		g.protected = func(r *http.Request) bool {
			path := r.URL.Path
			return path == prefix || strings.HasPrefix(path, prefix+"/")
		}
	}

	return g
}

// Middleware wraps next with the admission check. Unprotected paths pass
// through untouched. Protected paths are allowed only when the validation
// endpoint accepts the request's cookie; any rejection, network failure, or
// timeout degrades to a redirect, never a pass-through.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.protected(r) {
			next.ServeHTTP(w, r)
			return
		}

		// Development bypass: cookies for the production API domain are not
		// sent by browsers to localhost, so validation would always fail
		// there. The bypass keys off the request host at runtime, which
		// keeps one binary valid for both contexts. It must never list a
		// deployed host.
		if g.isBypassHost(r) {
			next.ServeHTTP(w, r)
			return
		}

		if g.validate(r) {
			next.ServeHTTP(w, r)
			return
		}

		http.Redirect(w, r, g.cfg.LandingPath, http.StatusTemporaryRedirect)
	})
}

// validate forwards the incoming Cookie header to the session-validation
// endpoint. Only a 2xx response admits the request.
func (g *Gate) validate(r *http.Request) bool {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, g.cfg.ValidateURL, nil)
	if err != nil {
		g.log.Error("building validation request failed", slog.Any("error", err))
		return false
	}

	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.log.Warn("session validation unreachable", slog.Any("error", errors.Join(ErrValidationUnreachable, err)))
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

func (g *Gate) isBypassHost(r *http.Request) bool {
	host := r.Host
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return slices.Contains(g.cfg.BypassHosts, host)
}
