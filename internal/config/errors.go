package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidRemoteConfigs indicates invalid remote service settings
	// (for example, an unparseable base URL or zero request timeout).
	ErrInvalidRemoteConfigs = errors.New("invalid remote configuration")
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidSyncConfigs indicates invalid synchronizer settings
	// (for example, a zero drain interval or retry ceiling below one).
	ErrInvalidSyncConfigs = errors.New("invalid sync configuration")
	// ErrInvalidConnectivityConfigs indicates invalid probing settings
	// (for example, a backoff cap smaller than the base delay).
	ErrInvalidConnectivityConfigs = errors.New("invalid connectivity configuration")
)
