package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "https://ciago.furlenco.com", cfg.BaseURL)
	assert.Equal(t, "noida", cfg.City)
	assert.Equal(t, "bedroom-furniture-on-rent", cfg.Collection)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, "9090", cfg.MetricsPort)
	assert.Equal(t, 100*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, 5*time.Minute, cfg.ScrapeInterval)
	assert.Equal(t, time.Duration(0), cfg.DetailCacheTTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "http://localhost:8080")
	t.Setenv("CITY", "bangalore")
	t.Setenv("REQUEST_DELAY", "250ms")
	t.Setenv("SCRAPE_INTERVAL", "60")
	t.Setenv("DETAIL_CACHE_TTL", "10m")

	cfg := Load()

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "bangalore", cfg.City)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestDelay)
	// Plain numbers are read as seconds.
	assert.Equal(t, time.Minute, cfg.ScrapeInterval)
	assert.Equal(t, 10*time.Minute, cfg.DetailCacheTTL)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("REQUEST_DELAY", "soon")

	cfg := Load()
	assert.Equal(t, 100*time.Millisecond, cfg.RequestDelay)
}
