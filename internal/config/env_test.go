package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"REMOTE_BASE_URL":        "https://api.garbagesocial.app",
		"REMOTE_REQUEST_TIMEOUT": "20s",
		"REMOTE_HEALTH_PATH":     "/healthz",

		"STORAGE_DSN":                "/var/lib/gs/client.db",
		"STORAGE_DEFAULT_EXPIRATION": "168h",

		"SYNC_INTERVAL":      "3m",
		"SYNC_RETRY_CEILING": "5",

		"CONNECTIVITY_PROBE_INTERVAL":     "1m",
		"CONNECTIVITY_PROBE_TIMEOUT":      "10s",
		"CONNECTIVITY_BACKOFF_BASE":       "2s",
		"CONNECTIVITY_BACKOFF_CAP":        "30s",
		"CONNECTIVITY_NET_CHECK_ADDRESS":  "1.1.1.1:443",
		"CONNECTIVITY_NET_CHECK_INTERVAL": "15s",

		"METRICS_ADDRESS": "localhost:9091",
		"LOG_FILE":        "/var/log/gs/client.log",
		"SERVER_ADDRESS":  "localhost:8080",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "https://api.garbagesocial.app", cfg.Remote.BaseURL)
	assert.Equal(t, 20*time.Second, cfg.Remote.RequestTimeout)
	assert.Equal(t, "/healthz", cfg.Remote.HealthPath)

	assert.Equal(t, "/var/lib/gs/client.db", cfg.Storage.DSN)
	assert.Equal(t, 168*time.Hour, cfg.Storage.DefaultExpiration)

	assert.Equal(t, 3*time.Minute, cfg.Sync.Interval)
	assert.Equal(t, 5, cfg.Sync.RetryCeiling)

	assert.Equal(t, time.Minute, cfg.Connectivity.ProbeInterval)
	assert.Equal(t, 10*time.Second, cfg.Connectivity.ProbeTimeout)
	assert.Equal(t, 2*time.Second, cfg.Connectivity.BackoffBase)
	assert.Equal(t, 30*time.Second, cfg.Connectivity.BackoffCap)
	assert.Equal(t, "1.1.1.1:443", cfg.Connectivity.NetCheckAddress)
	assert.Equal(t, 15*time.Second, cfg.Connectivity.NetCheckInterval)

	assert.Equal(t, "localhost:9091", cfg.Metrics.Address)
	assert.Equal(t, "/var/log/gs/client.log", cfg.Log.File)
	assert.Equal(t, "localhost:8080", cfg.Server.Address)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.NoError(t, err)
	assert.Empty(t, cfg.Remote.BaseURL)
	assert.Zero(t, cfg.Sync.Interval)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	setEnvVars(t, map[string]string{"SYNC_INTERVAL": "not-a-duration"})

	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	require.Error(t, err)
}
