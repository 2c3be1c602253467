package app

import (
	"fmt"
	"slices"

	"github.com/vk/sweepdeck/internal/runconfig"
)

// LogLevels and LogFormats are the accepted values of the logging options.
var (
	LogLevels  = []string{"debug", "info", "warn", "error"}
	LogFormats = []string{"text", "json"}
)

// Config holds all the necessary configuration for an App instance to run.
// Run is the solver configuration assembled from options and decks; it is
// validated separately once the process count is known.
type Config struct {
	Run   runconfig.Config
	Decks []string // deck files applied, in order

	TimingsPath string // HCL timing file replayed as the solver
	CSVPath     string
	MetricsPath string // Prometheus textfile
	PublishURL  string // socket.io endpoint

	LogFormat string
	LogLevel  string
}

// DefaultConfig returns the configuration used when no option is given.
func DefaultConfig() *Config {
	return &Config{
		Run:       runconfig.Default(),
		LogFormat: "text",
		LogLevel:  "info",
	}
}

// NewConfig checks the logging settings of cfg and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if !slices.Contains(LogLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if !slices.Contains(LogFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}
