package config

import "time"

// Config holds runtime settings for the LinkJournal CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend REST API.
//   - IdentityBaseURL: base URL of the identity provider.
//   - IdentityAPIKey: API key appended to identity requests (empty for dev
//     providers that do not check it).
//   - DatabasePath: sqlite file holding the persisted session.
//   - TokenRefreshInterval: how often the background refresher renews the ID
//     token. Must stay below the one-hour token validity.
type Config struct {
	APIBaseURL           string
	IdentityBaseURL      string
	IdentityAPIKey       string
	DatabasePath         string
	TokenRefreshInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.IdentityBaseURL = "http://127.0.0.1:8080/identity"
	c.IdentityAPIKey = ""
	c.DatabasePath = "linkjournal.db"
	c.TokenRefreshInterval = 50 * time.Minute
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
