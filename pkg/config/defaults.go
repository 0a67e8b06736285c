package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "127.0.0.1:8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 0 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultHandlerTimeout  = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB

	// CORS defaults
	DefaultCORSEnabled          = true
	DefaultCORSMaxAge           = 3600
	DefaultCORSAllowCredentials = false

	// Baseline defaults
	DefaultBaselinePath = "data/baseline_tracks.geojson"

	// Pipeline defaults
	DefaultStageDelay = 500 * time.Millisecond

	// Research defaults
	DefaultResearchBaseURL    = "http://export.arxiv.org/api/query"
	DefaultResearchTimeout    = 10 * time.Second
	DefaultResearchMaxResults = 5

	// Monsoon defaults
	DefaultMonsoonDataPath     = "data/monsoon_scenarios.json"
	DefaultMonsoonArchivePath  = "data/monsoon_archive.db"
	DefaultMonsoonScanSchedule = "* * * * *"
	DefaultMonsoonYear         = 2019

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"
)

// ApplyDefaults fills in zero-valued fields with defaults. Explicitly
// configured values are never overwritten.
func ApplyDefaults(cfg *Config) {
	// Server
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.HandlerTimeout == 0 {
		cfg.Server.HandlerTimeout = DefaultHandlerTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}

	// CORS
	if len(cfg.Server.CORS.AllowedOrigins) == 0 {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if len(cfg.Server.CORS.AllowedMethods) == 0 {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(cfg.Server.CORS.AllowedHeaders) == 0 {
		cfg.Server.CORS.AllowedHeaders = []string{"Content-Type", "Accept"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Baseline
	if cfg.Baseline.Path == "" {
		cfg.Baseline.Path = DefaultBaselinePath
	}

	// Pipeline
	if cfg.Pipeline.StageDelay == 0 {
		cfg.Pipeline.StageDelay = DefaultStageDelay
	}

	// Research
	if cfg.Research.BaseURL == "" {
		cfg.Research.BaseURL = DefaultResearchBaseURL
	}
	if cfg.Research.Timeout == 0 {
		cfg.Research.Timeout = DefaultResearchTimeout
	}
	if cfg.Research.MaxResults == 0 {
		cfg.Research.MaxResults = DefaultResearchMaxResults
	}

	// Monsoon
	if cfg.Monsoon.DataPath == "" {
		cfg.Monsoon.DataPath = DefaultMonsoonDataPath
	}
	if cfg.Monsoon.ArchivePath == "" {
		cfg.Monsoon.ArchivePath = DefaultMonsoonArchivePath
	}
	if cfg.Monsoon.ScanSchedule == "" {
		cfg.Monsoon.ScanSchedule = DefaultMonsoonScanSchedule
	}
	if cfg.Monsoon.DefaultYear == 0 {
		cfg.Monsoon.DefaultYear = DefaultMonsoonYear
	}

	// Telemetry
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// NewDefault returns a configuration with every default applied, with
// metrics enabled and CORS enabled as in a fresh deployment.
func NewDefault() *Config {
	cfg := &Config{}
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
	ApplyDefaults(cfg)
	return cfg
}
