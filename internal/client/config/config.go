// Package config handles configuration for the client, including defaults,
// JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the Rentafind CLI.
//
// Fields:
//   - ServerOrigin: origin of the reverse proxy fronting the API; request
//     paths keep their /api prefix when talking to it.
//   - APIBaseOverride: optional direct backend address. When set, the client
//     strips the leading /api segment and sends requests here instead.
//   - LocalDBPath: SQLite file holding the persisted session.
//   - LocationsPath: path of the static district/city JSON, resolved against
//     ServerOrigin when it starts with '/'.
//   - RequestTimeout: per-request HTTP timeout.
type Config struct {
	ServerOrigin    string
	APIBaseOverride string
	LocalDBPath     string
	LocationsPath   string
	RequestTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerOrigin = "http://127.0.0.1:8080"
	c.APIBaseOverride = ""
	c.LocalDBPath = "rentafind.db"
	c.LocationsPath = "/telangana_districts_cities.json"
	c.RequestTimeout = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
