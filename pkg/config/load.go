package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults and
// validates the result. Environment overrides are not applied; use
// LoadConfigWithEnvOverrides for that.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and
// applies INDRA_SECTION_FIELD environment variable overrides, which always
// win over file values. The final configuration is re-validated.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides. Unparsable
// values are ignored, leaving the file value in place.
func applyEnvOverrides(cfg *Config) {
	// Server
	if val := os.Getenv("INDRA_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("INDRA_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("INDRA_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("INDRA_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("INDRA_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("INDRA_SERVER_HANDLER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.HandlerTimeout = d
		}
	}
	if val := os.Getenv("INDRA_SERVER_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.MaxHeaderBytes = i
		}
	}
	if val := os.Getenv("INDRA_SERVER_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.TLS.Enabled = b
		}
	}
	if val := os.Getenv("INDRA_SERVER_TLS_CERT_FILE"); val != "" {
		cfg.Server.TLS.CertFile = val
	}
	if val := os.Getenv("INDRA_SERVER_TLS_KEY_FILE"); val != "" {
		cfg.Server.TLS.KeyFile = val
	}
	if val := os.Getenv("INDRA_SERVER_CORS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Server.CORS.Enabled = b
		}
	}

	// Baseline
	if val := os.Getenv("INDRA_BASELINE_PATH"); val != "" {
		cfg.Baseline.Path = val
	}

	// Pipeline
	if val := os.Getenv("INDRA_PIPELINE_STAGE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Pipeline.StageDelay = d
		}
	}

	// Research
	if val := os.Getenv("INDRA_RESEARCH_BASE_URL"); val != "" {
		cfg.Research.BaseURL = val
	}
	if val := os.Getenv("INDRA_RESEARCH_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Research.Timeout = d
		}
	}
	if val := os.Getenv("INDRA_RESEARCH_MAX_RESULTS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Research.MaxResults = i
		}
	}

	// Monsoon
	if val := os.Getenv("INDRA_MONSOON_DATA_PATH"); val != "" {
		cfg.Monsoon.DataPath = val
	}
	if val := os.Getenv("INDRA_MONSOON_ARCHIVE_PATH"); val != "" {
		cfg.Monsoon.ArchivePath = val
	}
	if val := os.Getenv("INDRA_MONSOON_SCAN_SCHEDULE"); val != "" {
		cfg.Monsoon.ScanSchedule = val
	}
	if val := os.Getenv("INDRA_MONSOON_DEFAULT_YEAR"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Monsoon.DefaultYear = i
		}
	}
	if val := os.Getenv("INDRA_MONSOON_WATCH_DATA"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Monsoon.WatchData = b
		}
	}

	// Telemetry
	if val := os.Getenv("INDRA_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("INDRA_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("INDRA_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("INDRA_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
