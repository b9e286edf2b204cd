package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/errors"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	DashboardURL string // Pre-specified main feed URL
	SpecialURL   string // Pre-specified announcements feed URL
	Force        bool   // Overwrite existing config without asking
}

// initCommand creates a new .hospdash.yaml configuration file in the
// current directory.
func initCommand(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Force {
		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	dashboardURL := opts.DashboardURL
	specialURL := opts.SpecialURL

	if dashboardURL == "" {
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Main metrics feed URL").
					Description("The JSON endpoint serving the daily metrics rows").
					Placeholder("https://script.google.com/macros/s/.../exec").
					Value(&dashboardURL).
					Validate(validateFeedURL),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Announcements feed URL (optional)").
					Description("The JSON endpoint serving the special announcements").
					Placeholder("leave empty to skip").
					Value(&specialURL),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Pass --dashboard-url instead of answering prompts")
		}
	}

	cfg := config.DefaultConfig()
	cfg.Feeds.Dashboard = strings.TrimSpace(dashboardURL)
	cfg.Feeds.Special = strings.TrimSpace(specialURL)

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config", "")
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+configPath,
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n", configPath)
	fmt.Println("Run 'hospdash' to launch the dashboard.")
	return nil
}

// validateFeedURL rejects obviously wrong feed URLs at prompt time.
func validateFeedURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("feed URL is required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("must be an http(s) URL")
	}
	return nil
}
