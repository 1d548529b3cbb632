package gate

import "time"

// Config holds gate settings.
type Config struct {
	// ValidateURL is the remote session-validation endpoint. The refresh
	// endpoint doubles as validator: it accepts the HTTP-only session
	// cookie and answers 2xx only for a live session.
	ValidateURL string `env:"GATE_VALIDATE_URL" envDefault:"https://api.duckcross.com/v1/auth/refresh"`

	// ProtectedPrefix selects the routes requiring a valid session.
	ProtectedPrefix string `env:"GATE_PROTECTED_PREFIX" envDefault:"/dash"`

	// LandingPath is the anonymous route rejected requests redirect to.
	LandingPath string `env:"GATE_LANDING_PATH" envDefault:"/"`

	// BypassHosts skip validation entirely. Local development only.
	BypassHosts []string `env:"GATE_BYPASS_HOSTS" envDefault:"localhost,127.0.0.1"`

	// ValidateTimeout bounds the validation round-trip so a hung authority
	// degrades to a redirect instead of stalling the edge.
	ValidateTimeout time.Duration `env:"GATE_VALIDATE_TIMEOUT" envDefault:"5s"`
}

// DefaultConfig returns the production gate settings.
func DefaultConfig() Config {
	return Config{
		ValidateURL:     "https://api.duckcross.com/v1/auth/refresh",
		ProtectedPrefix: "/dash",
		LandingPath:     "/",
		BypassHosts:     []string{"localhost", "127.0.0.1"},
		ValidateTimeout: 5 * time.Second,
	}
}
