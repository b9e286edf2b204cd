package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ksakamaki/hospdash/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".hospdash.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/hospdash"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"

	// Environment variables that override feed URLs (also read from .env).
	EnvDashboardURL = "HOSPDASH_DASHBOARD_URL"
	EnvSpecialURL   = "HOSPDASH_SPECIAL_URL"
)

// Load reads config from the specified path and applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'hospdash init' to create a config file, or specify one with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .hospdash.yaml in current directory
// 3. .hospdash.yaml in parent directories (stops at git root or home)
// 4. ~/.config/hospdash/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not found.
// Environment overrides are applied either way, so a .env file with feed URLs
// is enough to run without a config file.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	if path == "" {
		cfg := DefaultConfig()
		applyEnvOverrides(cfg)
		return cfg, nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// setDefaults seeds viper so absent keys fall back to the documented defaults.
func setDefaults(v *viper.Viper) {
	v.SetDefault("retry.max_attempts", 3)
	v.SetDefault("retry.delay", "2s")
	v.SetDefault("retry.timeout", "15s")
	v.SetDefault("chart.days_to_show", 14)
	v.SetDefault("chart.debounce_delay", "200ms")
	v.SetDefault("capacity.general_ward", 202)
	v.SetDefault("capacity.icu", 16)
}

// applyEnvOverrides lets HOSPDASH_DASHBOARD_URL / HOSPDASH_SPECIAL_URL
// override the feed URLs. A .env file in the working directory is loaded
// first if present; real environment variables still win over it.
func applyEnvOverrides(cfg *Config) {
	_ = godotenv.Load()

	if url := os.Getenv(EnvDashboardURL); url != "" {
		cfg.Feeds.Dashboard = url
	}
	if url := os.Getenv(EnvSpecialURL); url != "" {
		cfg.Feeds.Special = url
	}
}

// Validate checks that the config is usable for fetching.
func (c *Config) Validate() error {
	if c.Feeds.Dashboard == "" {
		return errors.New(errors.ErrConfig,
			"No dashboard feed URL configured",
			"Set feeds.dashboard in "+ConfigFileName+" or export "+EnvDashboardURL)
	}
	if err := checkURL(c.Feeds.Dashboard, "feeds.dashboard"); err != nil {
		return err
	}
	if c.Feeds.Special != "" {
		if err := checkURL(c.Feeds.Special, "feeds.special"); err != nil {
			return err
		}
	}
	if c.Retry.MaxAttempts < 1 {
		return errors.New(errors.ErrConfig,
			"retry.max_attempts must be at least 1",
			"Use 3 unless you have a reason not to")
	}
	if c.Chart.DaysToShow < 1 {
		return errors.New(errors.ErrConfig,
			"chart.days_to_show must be at least 1",
			"Use 14 unless you have a reason not to")
	}
	return nil
}

func checkURL(url, key string) error {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.New(errors.ErrConfig,
			key+" must be an http(s) URL",
			"Got: "+url)
	}
	return nil
}
