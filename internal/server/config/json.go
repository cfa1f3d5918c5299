package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rentafind/rentafind/internal/flagx"
	"github.com/rentafind/rentafind/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the token validity either as a string
// like "24h" or as integer nanoseconds.
type JsonConfig struct {
	Addr           string         `json:"addr"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	TokenValidity  timex.Duration `json:"token_validity"`
	APIPrefix      string         `json:"api_prefix"`
	StaticDir      string         `json:"static_dir"`
	ImageStore     string         `json:"image_store"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_endpoint"`
	S3Bucket       string         `json:"s3_bucket"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
}

// parseJson overlays Config with values loaded from a JSON file referenced
// by the -c or -config flags. Missing flag means no JSON is loaded. Read or
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

	apply := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	apply(&cfg.Addr, jc.Addr)
	apply(&cfg.DatabaseDSN, jc.DatabaseDSN)
	apply(&cfg.SecretKey, jc.SecretKey)
	apply(&cfg.APIPrefix, jc.APIPrefix)
	apply(&cfg.StaticDir, jc.StaticDir)
	apply(&cfg.ImageStore, jc.ImageStore)
	apply(&cfg.S3Region, jc.S3Region)
	apply(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	apply(&cfg.S3Bucket, jc.S3Bucket)
	apply(&cfg.S3AccessKey, jc.S3AccessKey)
	apply(&cfg.S3SecretKey, jc.S3SecretKey)

	if jc.TokenValidity.Duration != 0 {
		cfg.TokenValidity = time.Duration(jc.TokenValidity.Duration)
	}
}
