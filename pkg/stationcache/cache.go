package stationcache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/duckcross/transitkit/pkg/apiclient"
)

// Cache holds the latest station-status snapshot and refreshes it from the
// backend, guarded by a minimum-interval window so manual refresh spamming
// cannot cause request storms. The snapshot is replaced wholesale on every
// successful fetch; a failed fetch records the error and keeps the stale
// data, so the dashboard never regresses to empty once it has shown
// something.
type Cache struct {
	mu        sync.Mutex
	data      []apiclient.Station
	fetchedAt time.Time
	loading   bool
	lastErr   error

	window   rateWindow
	interval time.Duration
	stop     chan struct{} // non-nil while the refresh loop runs

	api *apiclient.Client
	log *slog.Logger
	now func() time.Time
}

// New creates a cache over the given API client.
func New(api *apiclient.Client, cfg Config, opts ...Option) *Cache {
	if api == nil {
		panic("stationcache: api client is required")
	}

	c := &Cache{
		window:   rateWindow{cooldown: cfg.Cooldown},
		interval: cfg.PollInterval,
		api:      api,
		log:      slog.Default(),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// GetData refreshes the snapshot. A call while a fetch is in flight is a
// no-op; a call inside the cooldown window is rejected with ErrRateLimited
// without touching the data or the loading flag. The cooldown check and the
// dispatch decision happen under one lock, so concurrent triggers cannot
// both slip through.
func (c *Cache) GetData(ctx context.Context) error {
	c.mu.Lock()
	if c.loading {
		c.mu.Unlock()
		return nil
	}
	if !c.window.allow(c.now()) {
		c.lastErr = ErrRateLimited
		c.mu.Unlock()
		return ErrRateLimited
	}
	c.loading = true
	c.mu.Unlock()

	stations, err := c.api.GetStations(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false

	if err != nil {
		c.lastErr = errors.Join(ErrFetchFailed, err)
		return c.lastErr
	}

	if stations == nil {
		stations = []apiclient.Station{}
	}
	c.data = stations
	c.fetchedAt = c.now()
	c.window.stamp(c.fetchedAt)
	c.lastErr = nil
	return nil
}

// Start launches the background refresh loop: one immediate fetch, then one
// per poll interval until Stop. Starting an already running cache is a
// no-op.
func (c *Cache) Start() {
	c.mu.Lock()
	if c.stop != nil {
		c.mu.Unlock()
		return
	}
	stop := make(chan struct{})
	c.stop = stop
	c.mu.Unlock()

	go c.loop(stop)
}

// Stop cancels the refresh loop. An in-flight fetch is not aborted; its
// result still applies through the same locked path, which is safe after
// stop. Stopping a stopped cache is a no-op.
func (c *Cache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

// Running reports whether the refresh loop is active.
func (c *Cache) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Snapshot returns a copy of the current data and the time of the last
// successful fetch (zero when none has succeeded yet).
func (c *Cache) Snapshot() ([]apiclient.Station, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data := make([]apiclient.Station, len(c.data))
	copy(data, c.data)
	return data, c.fetchedAt
}

// Loading reports whether a fetch is in flight.
func (c *Cache) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError returns the most recent fetch or rate-limit error, nil after a
// successful fetch.
func (c *Cache) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

func (c *Cache) loop(stop chan struct{}) {
	ctx := context.Background()

	if err := c.GetData(ctx); err != nil {
		c.log.Warn("initial station fetch failed", slog.Any("error", err))
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := c.GetData(ctx); err != nil && !errors.Is(err, ErrRateLimited) {
				c.log.Warn("station refresh failed", slog.Any("error", err))
			}
		case <-stop:
			return
		}
	}
}
