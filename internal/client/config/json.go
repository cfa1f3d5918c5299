package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rentafind/rentafind/internal/flagx"
	"github.com/rentafind/rentafind/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "30s" or as integer nanoseconds.
type JsonConfig struct {
	ServerOrigin    string         `json:"server_origin"`
	APIBaseOverride string         `json:"api_base_override"`
	LocalDBPath     string         `json:"local_db_path"`
	LocationsPath   string         `json:"locations_path"`
	RequestTimeout  timex.Duration `json:"request_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file referenced by
// the -c or -config flags. Missing flag means no JSON is loaded. Read or
// unmarshal errors panic (caller may recover); empty fields keep defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerOrigin != "" {
		cfg.ServerOrigin = jc.ServerOrigin
	}
	if jc.APIBaseOverride != "" {
		cfg.APIBaseOverride = jc.APIBaseOverride
	}
	if jc.LocalDBPath != "" {
		cfg.LocalDBPath = jc.LocalDBPath
	}
	if jc.LocationsPath != "" {
		cfg.LocationsPath = jc.LocationsPath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
}
