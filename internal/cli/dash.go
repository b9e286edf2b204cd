package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/dashboard"
	"github.com/ksakamaki/hospdash/internal/fetch"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// dashCommand loads config and runs the dashboard TUI. A positive
// interval overrides the configured refresh interval.
func dashCommand(configPath string, interval time.Duration) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if interval > 0 {
		cfg.Chart.RefreshInterval = interval
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.NewEnvLogger("[dash]")
	client := fetch.New(cfg.Retry, logger.NewEnvLogger("[fetch]"))
	model := dashboard.NewModel(cfg, client, log)

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
