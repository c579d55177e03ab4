// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers an optional YAML file and WILDFIRE_* env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8050".
	Addr string `koanf:"addr"`

	// DataPath points at the historical wildfires CSV loaded at startup.
	DataPath string `koanf:"data_path"`

	// DefaultRegion is the region code preselected on the dashboard.
	DefaultRegion string `koanf:"default_region"`

	// ChartWidth and ChartHeight size rendered chart images in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// OTLPEndpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	OTLPEndpoint string `koanf:"otlp_endpoint"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "text",
		Addr:          ":8050",
		DataPath:      "Historical_Wildfires.csv",
		DefaultRegion: "WA",
		ChartWidth:    640,
		ChartHeight:   480,
	}
}
