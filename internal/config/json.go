package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration wraps time.Duration so that JSON config files can use readable
// values like "3m" or "15s" instead of nanosecond integers.
type Duration time.Duration

// UnmarshalJSON accepts either a duration string ("30s") or a plain number
// of nanoseconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", value, err)
		}
		*d = Duration(parsed)
		return nil
	default:
		return fmt.Errorf("invalid duration value: %v", v)
	}
}

// MarshalJSON renders the duration in time.Duration string form.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for the optional config file.
type StructuredJSONConfig struct {
	Remote struct {
		BaseURL        string   `json:"base_url"`
		RequestTimeout Duration `json:"request_timeout"`
		HealthPath     string   `json:"health_path"`
	} `json:"remote,omitempty"`

	Storage struct {
		DSN               string   `json:"dsn"`
		DefaultExpiration Duration `json:"default_expiration"`
	} `json:"storage,omitempty"`

	Sync struct {
		Interval     Duration `json:"interval"`
		RetryCeiling int      `json:"retry_ceiling"`
	} `json:"sync,omitempty"`

	Connectivity struct {
		ProbeInterval    Duration `json:"probe_interval"`
		ProbeTimeout     Duration `json:"probe_timeout"`
		BackoffBase      Duration `json:"backoff_base"`
		BackoffCap       Duration `json:"backoff_cap"`
		NetCheckAddress  string   `json:"net_check_address"`
		NetCheckInterval Duration `json:"net_check_interval"`
	} `json:"connectivity,omitempty"`

	Metrics struct {
		Address string `json:"address"`
	} `json:"metrics,omitempty"`

	Log struct {
		File string `json:"file"`
	} `json:"log,omitempty"`

	Server struct {
		Address string `json:"address"`
	} `json:"server,omitempty"`
}

// parseJSON reads jsonFilePath and converts it into a [StructuredConfig]
// layer for merging.
func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err = json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding a json file: %w", err)
	}

	cfg := &StructuredConfig{
		Remote: Remote{
			BaseURL:        jsonCfg.Remote.BaseURL,
			RequestTimeout: time.Duration(jsonCfg.Remote.RequestTimeout),
			HealthPath:     jsonCfg.Remote.HealthPath,
		},
		Storage: Storage{
			DSN:               jsonCfg.Storage.DSN,
			DefaultExpiration: time.Duration(jsonCfg.Storage.DefaultExpiration),
		},
		Sync: Sync{
			Interval:     time.Duration(jsonCfg.Sync.Interval),
			RetryCeiling: jsonCfg.Sync.RetryCeiling,
		},
		Connectivity: Connectivity{
			ProbeInterval:    time.Duration(jsonCfg.Connectivity.ProbeInterval),
			ProbeTimeout:     time.Duration(jsonCfg.Connectivity.ProbeTimeout),
			BackoffBase:      time.Duration(jsonCfg.Connectivity.BackoffBase),
			BackoffCap:       time.Duration(jsonCfg.Connectivity.BackoffCap),
			NetCheckAddress:  jsonCfg.Connectivity.NetCheckAddress,
			NetCheckInterval: time.Duration(jsonCfg.Connectivity.NetCheckInterval),
		},
		Metrics: Metrics{
			Address: jsonCfg.Metrics.Address,
		},
		Log: Log{
			File: jsonCfg.Log.File,
		},
		Server: Server{
			Address: jsonCfg.Server.Address,
		},
	}

	return cfg, nil
}
