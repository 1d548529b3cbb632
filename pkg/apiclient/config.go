package apiclient

import "time"

// Config holds backend connection settings.
type Config struct {
	// BaseURL is the backend origin without the versioned path prefix.
	BaseURL string `env:"TRANSIT_API_BASE_URL" envDefault:"https://api.duckcross.com"`

	// Timeout bounds every request, including the polling fetches.
	Timeout time.Duration `env:"TRANSIT_API_TIMEOUT" envDefault:"10s"`
}

// DefaultConfig returns backend settings for the production API.
func DefaultConfig() Config {
	return Config{
		BaseURL: "https://api.duckcross.com",
		Timeout: 10 * time.Second,
	}
}
