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

	assert.Equal(t, "http://localhost:4000/v1", c.APIBaseURL)
	assert.Equal(t, "werkmate-cli", c.ClientID)
	assert.Equal(t, "127.0.0.1:8745", c.CallbackAddr)
	assert.Equal(t, "werkmate.db", c.StateDBPath)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "My Workspace", c.DefaultWorkspaceName)
	assert.Equal(t, "info", c.LogLevel)
}

func TestLoadEnv_OverridesDefaults(t *testing.T) {
	t.Setenv("WERKMATE_API_URL", "https://api.example.com/v1")
	t.Setenv("WERKMATE_REQUEST_TIMEOUT", "30")
	t.Setenv("WERKMATE_LOG_LEVEL", "debug")

	var c Config
	c.LoadDefaults()
	loadEnv(&c)

	assert.Equal(t, "https://api.example.com/v1", c.APIBaseURL)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, "debug", c.LogLevel)
	// untouched fields keep their defaults
	assert.Equal(t, "werkmate-cli", c.ClientID)
}

func TestLoadEnv_IgnoresInvalidTimeout(t *testing.T) {
	t.Setenv("WERKMATE_REQUEST_TIMEOUT", "abc")

	var c Config
	c.LoadDefaults()
	loadEnv(&c)

	assert.Equal(t, 15*time.Second, c.RequestTimeout)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://localhost:4000/v1", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}
