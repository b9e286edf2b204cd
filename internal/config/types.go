package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .hospdash.yaml configuration file.
type Config struct {
	Version  int            `yaml:"version" mapstructure:"version"`
	Feeds    FeedsConfig    `yaml:"feeds" mapstructure:"feeds"`
	Retry    RetryConfig    `yaml:"retry" mapstructure:"retry"`
	Chart    ChartConfig    `yaml:"chart" mapstructure:"chart"`
	Capacity CapacityConfig `yaml:"capacity" mapstructure:"capacity"`
	Links    LinksConfig    `yaml:"links" mapstructure:"links"`
}

// FeedsConfig holds the two JSON endpoint URLs the dashboard polls.
type FeedsConfig struct {
	// Dashboard is the main hospital-metrics time-series endpoint.
	Dashboard string `yaml:"dashboard" mapstructure:"dashboard"`

	// Special is the secondary announcements endpoint.
	Special string `yaml:"special" mapstructure:"special"`
}

// RetryConfig controls fetch retry behavior.
type RetryConfig struct {
	// MaxAttempts is the total number of attempts per fetch (first try included).
	MaxAttempts int `yaml:"max_attempts" mapstructure:"max_attempts"`

	// Delay is the fixed pause between attempts. No exponential growth.
	Delay time.Duration `yaml:"delay" mapstructure:"delay"`

	// Timeout is the per-attempt request deadline.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ChartConfig controls chart rendering behavior.
type ChartConfig struct {
	// DaysToShow is the trailing window of rows plotted per chart.
	DaysToShow int `yaml:"days_to_show" mapstructure:"days_to_show"`

	// DebounceDelay is the quiet period before a resize triggers a redraw.
	DebounceDelay time.Duration `yaml:"debounce_delay" mapstructure:"debounce_delay"`

	// RefreshInterval enables periodic re-fetching when positive.
	// Zero means fetch once at startup only.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`
}

// CapacityConfig holds the fixed bed capacities shown next to census values.
type CapacityConfig struct {
	GeneralWard int `yaml:"general_ward" mapstructure:"general_ward"`
	ICU         int `yaml:"icu" mapstructure:"icu"`
}

// LinksConfig holds external URLs opened from the announcement cards.
type LinksConfig struct {
	Suiyokai string `yaml:"suiyokai" mapstructure:"suiyokai"`
	Keiei    string `yaml:"keiei" mapstructure:"keiei"`
}

// DefaultConfig returns a config populated with defaults. Feed URLs have
// no default and must come from the config file or environment.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Retry: RetryConfig{
			MaxAttempts: 3,
			Delay:       2 * time.Second,
			Timeout:     15 * time.Second,
		},
		Chart: ChartConfig{
			DaysToShow:    14,
			DebounceDelay: 200 * time.Millisecond,
		},
		Capacity: CapacityConfig{
			GeneralWard: 202,
			ICU:         16,
		},
	}
}
