package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config is the league server configuration.
type Config struct {
	LeagueName          string        `json:"league_name"`
	SchedulePath        string        `json:"schedule_path"`
	Division            string        `json:"division"`
	DataDir             string        `json:"data_dir"`
	BaseURL             string        `json:"pdga_base_url,omitempty"`
	WindowDays          int           `json:"window_days"`
	RequestDelaySeconds int           `json:"request_delay_seconds"`
	Storage             StorageConfig `json:"storage"`
	AutoUpdate          AutoUpdate    `json:"auto_update"`
}

// StorageConfig selects where the season documents live.
type StorageConfig struct {
	Backend  string `json:"backend"` // "file" or "s3"
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`
}

// AutoUpdate configures the server's background weekly-update job.
type AutoUpdate struct {
	Enabled       bool `json:"enabled"`
	IntervalHours int  `json:"interval_hours"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		LeagueName:          "PDGA Fantasy League",
		SchedulePath:        "tournaments.txt",
		Division:            "MPO",
		DataDir:             "data",
		WindowDays:          14,
		RequestDelaySeconds: 3,
		Storage:             StorageConfig{Backend: "file"},
		AutoUpdate:          AutoUpdate{Enabled: false, IntervalHours: 24},
	}
}

// LoadConfig loads the league configuration. LEAGUE_CONFIG names an explicit
// file; otherwise a few well-known relative paths are tried, and when none
// exists the defaults apply. Environment variables override file values.
func LoadConfig() (*Config, error) {
	configPaths := []string{
		"configs/league.json",
		"../configs/league.json",
		"../../configs/league.json",
	}
	if explicit := os.Getenv("LEAGUE_CONFIG"); explicit != "" {
		configPaths = append([]string{explicit}, configPaths...)
	}

	var configData []byte
	var foundPath string

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			var readErr error
			configData, readErr = os.ReadFile(path)
			if readErr == nil {
				foundPath = path
				break
			}
		}
	}

	config := DefaultConfig()
	if foundPath != "" {
		if err := json.Unmarshal(configData, config); err != nil {
			return nil, fmt.Errorf("failed to parse league config from %s: %w", foundPath, err)
		}
	}

	config.applyDefaults()
	config.applyEnvOverrides()
	return config, nil
}

// applyDefaults backfills fields a partial config file left zero.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.SchedulePath == "" {
		c.SchedulePath = defaults.SchedulePath
	}
	if c.Division == "" {
		c.Division = defaults.Division
	}
	if c.DataDir == "" {
		c.DataDir = defaults.DataDir
	}
	if c.WindowDays <= 0 {
		c.WindowDays = defaults.WindowDays
	}
	if c.RequestDelaySeconds < 0 {
		c.RequestDelaySeconds = defaults.RequestDelaySeconds
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaults.Storage.Backend
	}
	if c.AutoUpdate.IntervalHours <= 0 {
		c.AutoUpdate.IntervalHours = defaults.AutoUpdate.IntervalHours
	}
}

func (c *Config) applyEnvOverrides() {
	overrides := map[string]*string{
		"LEAGUE_NAME":            &c.LeagueName,
		"LEAGUE_SCHEDULE":        &c.SchedulePath,
		"LEAGUE_DIVISION":        &c.Division,
		"LEAGUE_DATA_DIR":        &c.DataDir,
		"PDGA_BASE_URL":          &c.BaseURL,
		"LEAGUE_STORAGE_BACKEND": &c.Storage.Backend,
		"LEAGUE_S3_BUCKET":       &c.Storage.Bucket,
		"LEAGUE_S3_PREFIX":       &c.Storage.Prefix,
		"LEAGUE_S3_REGION":       &c.Storage.Region,
		"LEAGUE_S3_ENDPOINT":     &c.Storage.Endpoint,
	}
	for name, field := range overrides {
		if value := os.Getenv(name); value != "" {
			*field = value
		}
	}
}

// Window is the schedule lookback window for update runs.
func (c *Config) Window() time.Duration {
	return time.Duration(c.WindowDays) * 24 * time.Hour
}

// RequestDelay is the pause between PDGA requests during a batch.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds) * time.Second
}

// UpdateInterval is how often the background auto-update job fires.
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.AutoUpdate.IntervalHours) * time.Hour
}
