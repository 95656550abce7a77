package config

import (
	"flag"
	"os"
	"time"

	"github.com/mkravets/linkjournal/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend REST API (default from Config)
//	-p string   base URL of the identity provider (default from Config)
//	-k string   identity provider API key
//	-d string   path to the local session database
//	-r int      token refresh interval in minutes (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-p", "-k", "-d", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend REST API")
	fs.StringVar(&cfg.IdentityBaseURL, "p", cfg.IdentityBaseURL, "base URL of the identity provider")
	fs.StringVar(&cfg.IdentityAPIKey, "k", cfg.IdentityAPIKey, "identity provider API key")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local session database")
	refreshMinutes := fs.Int("r", int(cfg.TokenRefreshInterval.Minutes()), "token refresh interval (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.TokenRefreshInterval = time.Duration(*refreshMinutes) * time.Minute
}
