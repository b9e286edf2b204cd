package cli

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

// Command-specific flags
var (
	initDashboardURLFlag string
	initSpecialURLFlag   string
	initForce            bool
	snapshotWideFlag     bool
	dashIntervalFlag     time.Duration
)

// dashCmd launches the dashboard TUI explicitly.
var dashCmd = &cobra.Command{
	Use:   "dash",
	Short: "Launch the metrics dashboard",
	Long: `Launch the full-screen metrics dashboard.

This is also what running hospdash with no subcommand does.
By default the feeds are fetched once at startup; --interval enables
periodic re-fetching.

Examples:
  hospdash dash
  hospdash dash --interval 5m
  hospdash dash --config ./ops/.hospdash.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashCommand(configFlag, dashIntervalFlag)
	},
}

// snapshotCmd prints a one-shot text summary without entering the TUI.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print a one-shot metrics summary",
	Long: `Fetch the feeds once and print the latest metrics as plain text,
with a small sparkline per metric. Suitable for cron mails and scripts.

Examples:
  hospdash snapshot
  hospdash snapshot --wide`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return snapshotCommand(configFlag, snapshotWideFlag)
	},
}

// initCmd creates a .hospdash.yaml config file.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .hospdash.yaml config file",
	Long: `Create a .hospdash.yaml configuration file in the current directory.

Prompts for the feed URLs interactively, or takes them from flags.

Examples:
  hospdash init
  hospdash init --dashboard-url https://... --special-url https://...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(InitOptions{
			DashboardURL: initDashboardURLFlag,
			SpecialURL:   initSpecialURLFlag,
			Force:        initForce,
		})
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:       "completion [bash|zsh|fish|powershell]",
	Short:     "Generate shell completion scripts",
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(os.Stdout)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dashCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)

	dashCmd.Flags().DurationVar(&dashIntervalFlag, "interval", 0, "Auto-refresh interval (0 = fetch once)")
	snapshotCmd.Flags().BoolVar(&snapshotWideFlag, "wide", false, "Use full terminal width for sparklines")
	initCmd.Flags().StringVar(&initDashboardURLFlag, "dashboard-url", "", "Main metrics feed URL")
	initCmd.Flags().StringVar(&initSpecialURLFlag, "special-url", "", "Announcements feed URL")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite existing config without asking")
}
