package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Global flags available to all subcommands
var (
	configFlag string
)

// rootCmd is the base command. Running it with no subcommand launches
// the dashboard, so "hospdash" alone does the obvious thing.
var rootCmd = &cobra.Command{
	Use:   "hospdash",
	Short: "Hospital operating metrics dashboard",
	Long: `hospdash renders a hospital operating-metrics dashboard in the terminal.

It fetches a daily metrics feed and an announcements feed, shows the
latest day's numbers, and plots the trailing two weeks per metric.

Examples:
  hospdash                  Launch the dashboard
  hospdash snapshot         Print a one-shot summary
  hospdash init             Create a config file interactively`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashCommand(configFlag, 0)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")
}

// Execute runs the root command and exits non-zero on error. Errors are
// printed via their own formatting (code, message, suggestion).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
