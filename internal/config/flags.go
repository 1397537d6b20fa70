// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ben Ryder

package config

import (
	"flag"
	"io"
	"time"
)

// parseFlags parses client configuration flags from args (the program
// arguments without the binary name). A dedicated FlagSet is used so the
// parser can run repeatedly in tests without touching flag.CommandLine.
//
// Flags:
//
//	-server-url        sync server base URL
//	-request-timeout   outbound request timeout (e.g., "30s", "1m")
//	-db                local document database path
//	-keyring-service   OS keychain service name
//	-credential-file   file-backed credential store path
//	-sync-interval     background sync interval (e.g., "5m")
//	-log-level         minimum log level
//	-c/-config         json file path with configs
func parseFlags(args []string) (*ClientConfig, error) {
	fs := flag.NewFlagSet("headbase", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var serverURL string
	var requestTimeout time.Duration
	var dbPath string
	var keyringService string
	var credentialFile string
	var syncInterval time.Duration
	var logLevel string
	var jsonConfigPath string

	fs.StringVar(&serverURL, "server-url", "", "Sync server base URL")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.StringVar(&dbPath, "db", "", "Local document database path")
	fs.StringVar(&keyringService, "keyring-service", "", "OS keychain service name")
	fs.StringVar(&credentialFile, "credential-file", "", "File-backed credential store path")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync interval (e.g., 5m)")
	fs.StringVar(&logLevel, "log-level", "", "Minimum log level")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &ClientConfig{
		Server: Server{
			URL:            serverURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DBPath: dbPath,
		},
		Credentials: Credentials{
			KeyringService: keyringService,
			File:           credentialFile,
		},
		Sync: Sync{
			Interval: syncInterval,
		},
		Log: Log{
			Level: logLevel,
		},
		JSONFilePath: jsonConfigPath,
	}, nil
}
