package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first when present; real environment variables
// win over it.
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	set := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	set(&cfg.Addr, "RENTAFIND_ADDR")
	set(&cfg.DatabaseDSN, "RENTAFIND_DATABASE_DSN")
	set(&cfg.SecretKey, "RENTAFIND_SECRET_KEY")
	set(&cfg.APIPrefix, "RENTAFIND_API_PREFIX")
	set(&cfg.StaticDir, "RENTAFIND_STATIC_DIR")
	set(&cfg.ImageStore, "RENTAFIND_IMAGE_STORE")
	set(&cfg.S3Region, "RENTAFIND_S3_REGION")
	set(&cfg.S3BaseEndpoint, "RENTAFIND_S3_ENDPOINT")
	set(&cfg.S3Bucket, "RENTAFIND_S3_BUCKET")
	set(&cfg.S3AccessKey, "RENTAFIND_S3_ACCESS_KEY")
	set(&cfg.S3SecretKey, "RENTAFIND_S3_SECRET_KEY")

	if v, ok := os.LookupEnv("RENTAFIND_TOKEN_VALIDITY"); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenValidity = d
		}
	}
}
