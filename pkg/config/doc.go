// Package config loads application configuration from environment variables
// into tagged structs, with an optional .env file for local development.
//
// It wraps github.com/caarlos0/env and github.com/joho/godotenv. Each
// configuration type is parsed once per process and cached, so packages can
// call Load for their own Config without coordinating.
//
// Usage:
//
//	type Config struct {
//	    BaseURL string `env:"API_BASE_URL" envDefault:"https://api.duckcross.com"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
package config
