package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/mkravets/linkjournal/internal/flagx"
	"github.com/mkravets/linkjournal/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "50m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	IdentityBaseURL      string         `json:"identity_base_url"`
	IdentityAPIKey       string         `json:"identity_api_key"`
	DatabasePath         string         `json:"database_path"`
	TokenRefreshInterval timex.Duration `json:"token_refresh_interval"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c / -config flags via
// flagx.JsonConfigFlags(); with no flag, nothing is loaded. Read or
// unmarshal errors panic, matching parseFlags. Intended usage is:
// defaults -> parseJson -> parseFlags, where later stages override
// earlier ones.
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

	cfg.APIBaseURL = jc.APIBaseURL
	cfg.IdentityBaseURL = jc.IdentityBaseURL
	cfg.IdentityAPIKey = jc.IdentityAPIKey
	cfg.DatabasePath = jc.DatabasePath
	cfg.TokenRefreshInterval = time.Duration(jc.TokenRefreshInterval.Duration)
}
