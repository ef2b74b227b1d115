package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// GarbageSocial sync client. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, an optional JSON file, and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the base URL and timeouts for the remote data service.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the durable local store settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds synchronizer and operation queue settings.
	Sync Sync `envPrefix:"SYNC_"`

	// Connectivity holds probing and backoff settings for the
	// connectivity monitor.
	Connectivity Connectivity `envPrefix:"CONNECTIVITY_"`

	// Metrics holds the optional Prometheus listen address.
	Metrics Metrics `envPrefix:"METRICS_"`

	// Log holds log output settings.
	Log Log `envPrefix:"LOG_"`

	// Server holds dev server settings; ignored by the client daemon.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged underneath the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote configures access to the remote data service.
type Remote struct {
	// BaseURL is the root URL of the remote service, e.g.
	// "https://api.garbagesocial.app".
	// Env: REMOTE_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// RequestTimeout bounds every outbound data request.
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// HealthPath is the path probed by the connectivity monitor,
	// relative to BaseURL.
	// Env: REMOTE_HEALTH_PATH
	HealthPath string `env:"HEALTH_PATH"`
}

// Storage configures the durable local store.
type Storage struct {
	// DSN is the SQLite file path for local persistence, or ":memory:"
	// for a non-durable in-memory store (tests, throwaway runs).
	// Env: STORAGE_DSN
	DSN string `env:"DSN"`

	// DefaultExpiration is applied to items stored without an explicit
	// expiration option.
	// Env: STORAGE_DEFAULT_EXPIRATION
	DefaultExpiration time.Duration `env:"DEFAULT_EXPIRATION"`
}

// Sync configures the synchronizer and the operation queue.
type Sync struct {
	// Interval is the periodic drain interval.
	// Env: SYNC_INTERVAL
	Interval time.Duration `env:"INTERVAL"`

	// RetryCeiling is the maximum replay attempts per queued operation
	// before it is permanently dropped.
	// Env: SYNC_RETRY_CEILING
	RetryCeiling int `env:"RETRY_CEILING"`
}

// Connectivity configures remote-reachability probing.
type Connectivity struct {
	// ProbeInterval is the regular re-probe interval while connected.
	// Env: CONNECTIVITY_PROBE_INTERVAL
	ProbeInterval time.Duration `env:"PROBE_INTERVAL"`

	// ProbeTimeout is the hard per-probe timeout.
	// Env: CONNECTIVITY_PROBE_TIMEOUT
	ProbeTimeout time.Duration `env:"PROBE_TIMEOUT"`

	// BackoffBase is the first retry delay after a failed probe.
	// Env: CONNECTIVITY_BACKOFF_BASE
	BackoffBase time.Duration `env:"BACKOFF_BASE"`

	// BackoffCap bounds the growing retry delay.
	// Env: CONNECTIVITY_BACKOFF_CAP
	BackoffCap time.Duration `env:"BACKOFF_CAP"`

	// NetCheckAddress is the host:port the network signal dials to decide
	// whether the device has any connectivity at all.
	// Env: CONNECTIVITY_NET_CHECK_ADDRESS
	NetCheckAddress string `env:"NET_CHECK_ADDRESS"`

	// NetCheckInterval is how often the network signal re-dials.
	// Env: CONNECTIVITY_NET_CHECK_INTERVAL
	NetCheckInterval time.Duration `env:"NET_CHECK_INTERVAL"`
}

// Metrics configures the optional Prometheus endpoint.
type Metrics struct {
	// Address is the listen address for /metrics; empty disables the
	// endpoint entirely.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// Log configures log output.
type Log struct {
	// File is the rotating log file path; empty logs to stdout.
	// Env: LOG_FILE
	File string `env:"FILE"`
}

// Server configures the development remote service.
type Server struct {
	// Address is the HTTP listen address of the dev server.
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS"`
}

// Default values applied by the builder when no source sets a field.
const (
	DefaultRequestTimeout    = 15 * time.Second
	DefaultHealthPath        = "/health"
	DefaultExpiration        = 7 * 24 * time.Hour
	DefaultSyncInterval      = 180 * time.Second
	DefaultRetryCeiling      = 5
	DefaultProbeInterval     = 60 * time.Second
	DefaultProbeTimeout      = 10 * time.Second
	DefaultBackoffBase       = 2 * time.Second
	DefaultBackoffCap        = 30 * time.Second
	DefaultNetCheckInterval  = 15 * time.Second
	DefaultServerAddress     = "localhost:8080"
	DefaultStorageDSN        = "garbage_social.db"
	DefaultNetCheckAddress   = "1.1.1.1:443"
	DefaultBackoffMultiplier = 1.5
)

// defaults returns the built-in configuration layer merged in last.
func defaults() *StructuredConfig {
	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        "http://" + DefaultServerAddress,
			RequestTimeout: DefaultRequestTimeout,
			HealthPath:     DefaultHealthPath,
		},
		Storage: Storage{
			DSN:               DefaultStorageDSN,
			DefaultExpiration: DefaultExpiration,
		},
		Sync: Sync{
			Interval:     DefaultSyncInterval,
			RetryCeiling: DefaultRetryCeiling,
		},
		Connectivity: Connectivity{
			ProbeInterval:    DefaultProbeInterval,
			ProbeTimeout:     DefaultProbeTimeout,
			BackoffBase:      DefaultBackoffBase,
			BackoffCap:       DefaultBackoffCap,
			NetCheckAddress:  DefaultNetCheckAddress,
			NetCheckInterval: DefaultNetCheckInterval,
		},
		Server: Server{
			Address: DefaultServerAddress,
		},
	}
}

// GetConfig builds the final configuration by merging environment
// variables, command-line flags, the optional JSON file, and defaults,
// then validating the result.
func GetConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		withDefaults().
		build()
}
