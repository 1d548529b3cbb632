package stationcache

import "time"

// Config holds cache timing settings.
type Config struct {
	// Cooldown is the minimum interval between dispatched fetches.
	Cooldown time.Duration `env:"STATION_CACHE_COOLDOWN" envDefault:"10s"`

	// PollInterval is the background refresh cadence.
	PollInterval time.Duration `env:"STATION_CACHE_POLL_INTERVAL" envDefault:"60s"`
}

// DefaultConfig returns the production cadence: 10s cooldown, 60s polling.
func DefaultConfig() Config {
	return Config{
		Cooldown:     10 * time.Second,
		PollInterval: 60 * time.Second,
	}
}
