package cli

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/dashboard"
	"github.com/ksakamaki/hospdash/internal/feed"
	"github.com/ksakamaki/hospdash/internal/fetch"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// defaultSparkWidth is the sparkline width when not using --wide.
const defaultSparkWidth = 28

// snapshotCommand fetches the feeds once and prints a plain-text
// summary. No TUI, no retained state; each metric gets its headline
// value and a trailing-window sparkline.
func snapshotCommand(configPath string, wide bool) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client := fetch.New(cfg.Retry, logger.NewEnvLogger("[fetch]"))

	var payload feed.DashboardPayload
	if err := client.FetchJSON(context.Background(), cfg.Feeds.Dashboard, &payload); err != nil {
		return err
	}
	if err := payload.Validate(); err != nil {
		return err
	}

	summary, series, err := feed.Transform(&payload, feed.Capacities{
		GeneralWard: cfg.Capacity.GeneralWard,
		ICU:         cfg.Capacity.ICU,
	}, cfg.Chart.DaysToShow)
	if err != nil {
		return err
	}

	sparkWidth := defaultSparkWidth
	if wide {
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 40 {
			sparkWidth = w - 40
		}
	}

	fmt.Printf("%s  最終更新 %s\n\n", summary.Date, summary.UpdatedAt)

	sparks := make(map[string]string, len(series))
	for _, s := range series {
		sparks[s.Slot] = dashboard.MiniSparkline(s.Values, sparkWidth)
	}
	for _, h := range summary.Headlines {
		fmt.Printf("%-18s %12s  %s\n", h.Label, h.Value, sparks[h.Slot])
	}

	if cfg.Feeds.Special != "" {
		printSpecial(client, cfg.Feeds.Special)
	}

	return nil
}

// printSpecial appends the announcements to the snapshot output. A
// failure here is reported but does not fail the command; the metrics
// above are the point.
func printSpecial(client *fetch.Client, url string) {
	var payload feed.SpecialPayload
	if err := client.FetchJSON(context.Background(), url, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "お知らせの取得に失敗しました: %v\n", err)
		return
	}
	if err := payload.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "お知らせの取得に失敗しました: %v\n", err)
		return
	}

	fmt.Println()
	if digest := feed.StructureSuiyokai(payload.SpecialData.Suiyokai); digest != nil {
		fmt.Println("経営戦略会議: " + digest.Mission)
		for _, d := range digest.Descriptions {
			fmt.Println("  ・" + d)
		}
	} else {
		fmt.Println("経営戦略会議: " + feed.SuiyokaiFallback)
	}
}
