package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, 24*time.Hour, c.TokenValidity)
	assert.Empty(t, c.APIPrefix)
	assert.Equal(t, "web", c.StaticDir)
	assert.Equal(t, "postgres", c.ImageStore)
}

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("RENTAFIND_ADDR", ":9090")
	t.Setenv("RENTAFIND_API_PREFIX", "/api")
	t.Setenv("RENTAFIND_TOKEN_VALIDITY", "30m")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	assert.Equal(t, ":9090", c.Addr)
	assert.Equal(t, "/api", c.APIPrefix)
	assert.Equal(t, 30*time.Minute, c.TokenValidity)
	// Untouched fields keep their defaults.
	assert.Equal(t, "postgres", c.ImageStore)
}

func TestParseEnv_IgnoresBadDuration(t *testing.T) {
	t.Setenv("RENTAFIND_TOKEN_VALIDITY", "whenever")

	var c Config
	c.LoadDefaults()
	parseEnv(&c)

	require.Equal(t, 24*time.Hour, c.TokenValidity)
}
