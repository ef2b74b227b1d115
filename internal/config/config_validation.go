package config

import "net/url"

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Defaults are merged
// before validation, so zero values here mean a source set something
// explicitly invalid.
//
// Returns nil if the configuration is valid, or a descriptive sentinel
// error otherwise.
func (cfg *StructuredConfig) validate() error {
	if u, err := url.Parse(cfg.Remote.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidRemoteConfigs
	}
	if cfg.Remote.RequestTimeout <= 0 || cfg.Remote.HealthPath == "" {
		return ErrInvalidRemoteConfigs
	}

	if cfg.Storage.DSN == "" {
		return ErrInvalidStorageConfigs
	}
	if cfg.Storage.DefaultExpiration <= 0 {
		return ErrInvalidStorageConfigs
	}

	if cfg.Sync.Interval <= 0 || cfg.Sync.RetryCeiling < 1 {
		return ErrInvalidSyncConfigs
	}

	conn := cfg.Connectivity
	if conn.ProbeInterval <= 0 || conn.ProbeTimeout <= 0 {
		return ErrInvalidConnectivityConfigs
	}
	if conn.BackoffBase <= 0 || conn.BackoffCap < conn.BackoffBase {
		return ErrInvalidConnectivityConfigs
	}

	return nil
}
