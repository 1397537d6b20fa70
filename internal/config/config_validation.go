package config

// validate checks that the final merged [ClientConfig] satisfies all client
// invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *ClientConfig) validate() error {
	if cfg.Server.URL == "" || cfg.Server.RequestTimeout <= 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Storage.DBPath == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Interval <= 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
