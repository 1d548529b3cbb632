package transitkit

import (
	"context"
	"log/slog"

	"github.com/duckcross/transitkit/pkg/apiclient"
	"github.com/duckcross/transitkit/pkg/config"
	"github.com/duckcross/transitkit/pkg/credstore"
	"github.com/duckcross/transitkit/pkg/profile"
	"github.com/duckcross/transitkit/pkg/session"
	"github.com/duckcross/transitkit/pkg/stationcache"
)

// Client bundles the dashboard's state layer: one API client shared by the
// session manager, the profile store, and the station cache, so the
// HTTP-only refresh cookie set at login is visible to later refreshes and
// the stores derive authorization from a single session.
type Client struct {
	API      *apiclient.Client
	Session  *session.Manager
	Profile  *profile.Store
	Stations *stationcache.Cache
}

// Config aggregates the per-package configurations.
type Config struct {
	API   apiclient.Config
	Cache stationcache.Config
}

// LoadConfig reads the aggregate configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg.API); err != nil {
		return Config{}, err
	}
	if err := config.Load(&cfg.Cache); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type options struct {
	creds credstore.Store
	log   *slog.Logger
}

// Option is a functional option for configuring the Client.
type Option func(*options)

// WithCredentialStore replaces the default file-backed credential store.
func WithCredentialStore(store credstore.Store) Option {
	return func(o *options) {
		if store != nil {
			o.creds = store
		}
	}
}

// WithLogger sets the logger shared by all components.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// New wires the full client. Without options, credentials persist to a
// JSON file under the user's configuration directory.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.creds == nil {
		path, err := credstore.DefaultFilePath()
		if err != nil {
			return nil, err
		}
		o.creds = credstore.NewFileStore(path)
	}

	// The session manager needs the API client and the API client needs the
	// session's authorization header; the provider closes over the manager
	// variable to break the cycle.
	var manager *session.Manager
	api, err := apiclient.New(cfg.API, apiclient.WithHeaderProvider(func() map[string]string {
		if manager == nil {
			return map[string]string{}
		}
		return manager.AuthorizationHeader()
	}))
	if err != nil {
		return nil, err
	}

	manager = session.New(api, o.creds, session.WithLogger(o.log))

	return &Client{
		API:      api,
		Session:  manager,
		Profile:  profile.New(api, profile.WithLogger(o.log)),
		Stations: stationcache.New(api, cfg.Cache, stationcache.WithLogger(o.log)),
	}, nil
}

// Logout ends the session and drops the in-memory profile, leaving the
// station cache untouched since the feed is unauthenticated.
func (c *Client) Logout(ctx context.Context) error {
	c.Profile.ClearProfile()
	return c.Session.Logout(ctx)
}

// Close stops background work. Safe to call multiple times.
func (c *Client) Close() {
	c.Stations.Stop()
}
