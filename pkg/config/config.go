package config

import "time"

// Config is the root configuration for the service.
type Config struct {
	// Server configures the HTTP listener.
	Server ServerConfig `yaml:"server"`

	// Baseline configures the cyclone track baseline dataset.
	Baseline BaselineConfig `yaml:"baseline"`

	// Pipeline configures the intervention analysis pipeline.
	Pipeline PipelineConfig `yaml:"pipeline"`

	// Research configures the literature search client.
	Research ResearchConfig `yaml:"research"`

	// Monsoon configures the hazard monitor.
	Monsoon MonsoonConfig `yaml:"monsoon"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	// ListenAddress is the address to bind (e.g., "127.0.0.1:8000").
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading a request.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration for writing a response. Zero
	// disables it; the analysis stream writes for longer than any fixed
	// deadline, so the default keeps it off and non-streaming routes are
	// bounded by HandlerTimeout instead.
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the keep-alive idle timeout.
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// HandlerTimeout bounds non-streaming request handlers.
	HandlerTimeout time.Duration `yaml:"handler_timeout"`

	// MaxHeaderBytes limits request header size.
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// CORS configures cross-origin request handling.
	CORS CORSConfig `yaml:"cors"`

	// TLS configures transport security.
	TLS TLSConfig `yaml:"tls"`
}

// CORSConfig contains CORS settings.
type CORSConfig struct {
	// Enabled turns CORS handling on.
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins lists allowed origins. ["*"] allows any.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods lists allowed HTTP methods.
	AllowedMethods []string `yaml:"allowed_methods"`

	// AllowedHeaders lists allowed request headers.
	AllowedHeaders []string `yaml:"allowed_headers"`

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int `yaml:"max_age"`

	// AllowCredentials permits credentialed requests.
	AllowCredentials bool `yaml:"allow_credentials"`
}

// TLSConfig contains TLS settings.
type TLSConfig struct {
	// Enabled turns TLS on for the listener.
	Enabled bool `yaml:"enabled"`

	// CertFile is the server certificate path.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the server private key path.
	KeyFile string `yaml:"key_file"`
}

// BaselineConfig contains baseline dataset settings.
type BaselineConfig struct {
	// Path is the baseline GeoJSON file. A missing or unreadable file
	// degrades to an empty collection at startup.
	Path string `yaml:"path"`
}

// PipelineConfig contains analysis pipeline settings.
type PipelineConfig struct {
	// StageDelay is the pacing delay between stream stages.
	StageDelay time.Duration `yaml:"stage_delay"`
}

// ResearchConfig contains literature search settings.
type ResearchConfig struct {
	// BaseURL is the arXiv API query endpoint.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds one search request.
	Timeout time.Duration `yaml:"timeout"`

	// MaxResults bounds the citations fetched per analysis.
	MaxResults int `yaml:"max_results"`
}

// MonsoonConfig contains hazard monitor settings.
type MonsoonConfig struct {
	// DataPath is the scenario JSON file keyed by year.
	DataPath string `yaml:"data_path"`

	// ArchivePath is the SQLite historical archive file.
	ArchivePath string `yaml:"archive_path"`

	// ScanSchedule is a cron expression for background scans. Empty
	// disables the background loop.
	ScanSchedule string `yaml:"scan_schedule"`

	// DefaultYear is the initial focus year.
	DefaultYear int `yaml:"default_year"`

	// WatchData enables hot reload of the scenario file.
	WatchData bool `yaml:"watch_data"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	// Level is the minimum log level ("debug", "info", "warn", "error").
	Level string `yaml:"level"`

	// Format is the output format ("json", "text").
	Format string `yaml:"format"`

	// AddSource includes file:line in log records.
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled turns metric collection on.
	Enabled bool `yaml:"enabled"`

	// Path is the scrape endpoint path.
	Path string `yaml:"path"`
}
