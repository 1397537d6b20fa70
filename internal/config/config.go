// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package config

import (
	"time"
)

// ClientConfig is the top-level configuration container for the headbase
// client. It is populated by merging values from environment variables,
// command-line flags, and an optional JSON file, with built-in defaults
// filling any remaining gaps.
//
// Struct tags: envPrefix is applied to all nested env tag lookups
// (caarlos0/env), env names a variable directly on scalar fields.
type ClientConfig struct {
	// Server holds the remote endpoint and request timeout settings.
	Server Server `envPrefix:"HEADBASE_SERVER_"`

	// Storage holds the local document database settings.
	Storage Storage `envPrefix:"HEADBASE_STORAGE_"`

	// Credentials holds secret-storage backend settings.
	Credentials Credentials `envPrefix:"HEADBASE_CREDENTIALS_"`

	// Sync holds background synchronization settings.
	Sync Sync `envPrefix:"HEADBASE_SYNC_"`

	// Log holds logging settings.
	Log Log `envPrefix:"HEADBASE_LOG_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged below the values
	// already loaded from environment variables and flags.
	// Populated via the HEADBASE_CONFIG environment variable or the
	// -c / -config flag.
	JSONFilePath string `env:"HEADBASE_CONFIG"`
}

// Server holds network settings for the outbound transport layer.
type Server struct {
	// URL is the base URL of the sync server (e.g. "https://hb.example.com").
	// Env: HEADBASE_SERVER_URL
	URL string `env:"URL"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: HEADBASE_SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage holds local persistence settings.
type Storage struct {
	// DBPath is the path of the SQLite file holding the local document.
	// Env: HEADBASE_STORAGE_DB_PATH
	DBPath string `env:"DB_PATH"`
}

// Credentials holds settings for the secret-storage backend.
type Credentials struct {
	// KeyringService is the service name under which secrets are filed in
	// the OS keychain.
	// Env: HEADBASE_CREDENTIALS_KEYRING_SERVICE
	KeyringService string `env:"KEYRING_SERVICE"`

	// File, when non-empty, switches the credential store from the OS
	// keychain to a plain file at this path. Intended for headless hosts.
	// Env: HEADBASE_CREDENTIALS_FILE
	File string `env:"FILE"`
}

// Sync holds background synchronization settings.
type Sync struct {
	// Interval defines how often the background sync job runs.
	// Env: HEADBASE_SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`
}

// Log holds logging settings.
type Log struct {
	// Level is the minimum zerolog level emitted ("debug", "info", ...).
	// Env: HEADBASE_LOG_LEVEL
	Level string `env:"LEVEL"`
}

// defaultConfig is merged in last so it only fills fields no other source set.
func defaultConfig() *ClientConfig {
	return &ClientConfig{
		Server: Server{
			URL:            "http://localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Storage: Storage{
			DBPath: "headbase.db",
		},
		Credentials: Credentials{
			KeyringService: "headbase",
		},
		Sync: Sync{
			Interval: 5 * time.Minute,
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetClientConfig loads, merges, and validates the client configuration from
// all available sources in the following priority order (earlier sources win
// for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
//
// Returns a fully populated *ClientConfig or an error if any source fails to
// load or the final config fails validation.
func GetClientConfig(args []string) (*ClientConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags(args).
		withJSON().
		withDefaults().
		build()
}
