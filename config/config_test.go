package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, "https://en.wikipedia.org/", cfg.Browser.LandingURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Fetcher.SettleWait)
	assert.Equal(t, 3, cfg.Fetcher.InteractionAttempts)
	assert.Equal(t, 10*time.Second, cfg.Fetcher.InteractionTimeout)
	assert.Equal(t, "duckduckgo.com", cfg.Search.Host)
	assert.Equal(t, 10, cfg.Search.TopK)
	assert.True(t, cfg.Search.Ensemble)
	assert.Equal(t, []string{"wikipedia.org", "stackoverflow.com"}, cfg.Search.Sites)
	assert.Equal(t, "none", cfg.Reward.FallbackExtractor)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GROUNDTRUTH_TOP_K", "5")
	t.Setenv("GROUNDTRUTH_ENSEMBLE", "false")
	t.Setenv("GROUNDTRUTH_SITES", " en.wikipedia.org , superuser.com ,")
	t.Setenv("GROUNDTRUTH_SETTLE_WAIT", "1s")
	t.Setenv("GROUNDTRUTH_LLM_MODEL", "local-model")

	cfg := Load()

	assert.Equal(t, 5, cfg.Search.TopK)
	assert.False(t, cfg.Search.Ensemble)
	assert.Equal(t, []string{"en.wikipedia.org", "superuser.com"}, cfg.Search.Sites)
	assert.Equal(t, time.Second, cfg.Fetcher.SettleWait)
	assert.Equal(t, "local-model", cfg.LLM.Model)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("GROUNDTRUTH_TOP_K", "ten")
	t.Setenv("GROUNDTRUTH_HEADLESS", "maybe")
	t.Setenv("GROUNDTRUTH_NAV_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 10, cfg.Search.TopK)
	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, 30*time.Second, cfg.Fetcher.NavigationTimeout)
}
