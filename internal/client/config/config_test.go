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

	assert.Equal(t, "http://127.0.0.1:8080", c.APIBaseURL)
	assert.Equal(t, "http://127.0.0.1:8080/identity", c.IdentityBaseURL)
	assert.Equal(t, "linkjournal.db", c.DatabasePath)
	assert.Equal(t, 50*time.Minute, c.TokenRefreshInterval)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8080", cfg.APIBaseURL)
	assert.Equal(t, 50*time.Minute, cfg.TokenRefreshInterval)
}
