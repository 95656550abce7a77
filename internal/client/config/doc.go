// Package config loads runtime configuration for the LinkJournal CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend REST API
//	-p string   base URL of the identity provider
//	-k string   identity provider API key
//	-d string   path to the local session database
//	-r int      token refresh interval (minutes)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "50m" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8080",
//	  "identity_base_url": "http://127.0.0.1:8080/identity",
//	  "database_path": "linkjournal.db",
//	  "token_refresh_interval": "50m"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
