// Package config defines laglens configuration structures and loading hooks.
//
// Conventions:
//   - Provide New() to build a Config with defaults.
//   - Load layers a YAML file and environment variables over the defaults.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/laglens/internal/domain/types"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format"`

	// DataDir holds scraped tables and auxiliary sources as CSV files.
	DataDir string `koanf:"data_dir"`

	// OutputDir receives reports.
	OutputDir string `koanf:"output_dir"`

	// BaseURL is the Basketball-Reference site root.
	BaseURL string `koanf:"base_url"`

	// UserAgent is sent with every scrape request.
	UserAgent string `koanf:"user_agent"`

	// RequestTimeoutS bounds a single page request, in seconds.
	RequestTimeoutS int `koanf:"request_timeout_s"`

	// Retries is the number of retries for a failed page request.
	Retries int `koanf:"retries"`

	// DelayMinS and DelayMaxS bound the random pause before each request.
	DelayMinS int `koanf:"delay_min_s"`
	DelayMaxS int `koanf:"delay_max_s"`

	// SeasonFrom and SeasonTo are inclusive season end years.
	SeasonFrom int `koanf:"season_from"`
	SeasonTo   int `koanf:"season_to"`

	// Metrics are the columns compared pairwise.
	Metrics []string `koanf:"metrics"`

	// MinSeasons is the shortest career analyzed.
	MinSeasons int `koanf:"min_seasons"`

	// MetricsTextfile, when set, receives Prometheus metrics at exit.
	MetricsTextfile string `koanf:"metrics_textfile"`
}

// New creates a Config with defaults.
func New() *Config {
	metrics := types.DefaultMetrics()
	names := make([]string, len(metrics))
	for i, m := range metrics {
		names[i] = string(m)
	}
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		DataDir:         "data",
		OutputDir:       "out",
		BaseURL:         "https://www.basketball-reference.com",
		UserAgent:       "laglens/1.0 (+https://github.com/okian/laglens)",
		RequestTimeoutS: 30,
		Retries:         0,
		DelayMinS:       10,
		DelayMaxS:       15,
		SeasonFrom:      2005,
		SeasonTo:        2019,
		Metrics:         names,
		MinSeasons:      1,
	}
}

// RequestTimeout returns RequestTimeoutS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutS) * time.Second
}

// Delay returns the pause bounds as durations.
func (c *Config) Delay() (minDelay, maxDelay time.Duration) {
	return time.Duration(c.DelayMinS) * time.Second, time.Duration(c.DelayMaxS) * time.Second
}

// MetricList returns the configured metrics, normalized.
func (c *Config) MetricList() []types.Metric {
	return types.ParseMetrics(c.Metrics)
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataDir) == "":
		return fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case strings.TrimSpace(c.BaseURL) == "":
		return fmt.Errorf("%w: base_url must not be empty", ErrInvalidConfig)
	case c.RequestTimeoutS <= 0:
		return fmt.Errorf("%w: request_timeout_s must be positive", ErrInvalidConfig)
	case c.Retries < 0:
		return fmt.Errorf("%w: retries must not be negative", ErrInvalidConfig)
	case c.DelayMinS < 0 || c.DelayMaxS < c.DelayMinS:
		return fmt.Errorf("%w: need 0 <= delay_min_s <= delay_max_s", ErrInvalidConfig)
	case c.SeasonTo < c.SeasonFrom:
		return fmt.Errorf("%w: season_to %d before season_from %d", ErrInvalidConfig, c.SeasonTo, c.SeasonFrom)
	case len(c.MetricList()) < 2:
		return fmt.Errorf("%w: at least two metrics are needed", ErrInvalidConfig)
	case c.MinSeasons < 1:
		return fmt.Errorf("%w: min_seasons must be at least 1", ErrInvalidConfig)
	}
	return nil
}
