// Package cli implements the hospdash command-line interface.
//
// The package is organized around Cobra commands, with each command
// delegating to a small command function for the actual work:
//
//	hospdash            - Launch the metrics dashboard TUI (default)
//	hospdash dash       - Same, explicitly
//	hospdash snapshot   - Print a one-shot text summary and exit
//	hospdash init       - Create a .hospdash.yaml config file
//	hospdash version    - Print version information
//	hospdash completion - Generate shell completion scripts
//
// # Configuration
//
// The global --config flag names an explicit config file. Without it,
// the loader searches the working directory, then parent directories up
// to the git root or home, then ~/.config/hospdash/config.yaml. Feed
// URLs can also come from HOSPDASH_DASHBOARD_URL / HOSPDASH_SPECIAL_URL
// (a .env file in the working directory is honored), so the dashboard
// runs without any config file at all.
package cli
