package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-remote-url base URL of the remote data service
//	-request-timeout outbound request timeout (e.g., "15s")
//	-d local storage DSN (SQLite path or ":memory:")
//	-sync-interval periodic drain interval (e.g., "3m")
//	-probe-interval connectivity re-probe interval (e.g., "1m")
//	-metrics-address Prometheus listen address (empty disables)
//	-log-file rotating log file path (empty logs to stdout)
//	-a dev server listen address
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var remoteURL string
	var requestTimeout time.Duration
	var storageDSN string
	var syncInterval time.Duration
	var probeInterval time.Duration
	var metricsAddress string
	var logFile string
	var serverAddress string
	var jsonConfigPath string

	flag.StringVar(&remoteURL, "remote-url", "", "Remote service base URL")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 15s)")
	flag.StringVar(&storageDSN, "d", "", "Local storage DSN (SQLite path or :memory:)")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Sync drain interval (e.g., 3m)")
	flag.DurationVar(&probeInterval, "probe-interval", 0, "Connectivity probe interval (e.g., 1m)")
	flag.StringVar(&metricsAddress, "metrics-address", "", "Prometheus listen address")
	flag.StringVar(&logFile, "log-file", "", "Rotating log file path")
	flag.StringVar(&serverAddress, "a", "", "Dev server listen address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		Remote: Remote{
			BaseURL:        remoteURL,
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DSN: storageDSN,
		},
		Sync: Sync{
			Interval: syncInterval,
		},
		Connectivity: Connectivity{
			ProbeInterval: probeInterval,
		},
		Metrics: Metrics{
			Address: metricsAddress,
		},
		Log: Log{
			File: logFile,
		},
		Server: Server{
			Address: serverAddress,
		},
		JSONFilePath: jsonConfigPath,
	}
}
