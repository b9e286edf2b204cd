package dashboard

import (
	"strconv"
	"strings"

	"github.com/ksakamaki/hospdash/internal/feed"
)

// KeieiFallback is shown in the planning-office card when the feed has
// no content for it.
const KeieiFallback = "『お知らせ』\n" +
	"・R8年度診療報酬改定に向けて議論がスタート（急性期医療に関するテーマ）\n" +
	"・電子カルテ付属システム調査開始(DX推進室)\n" +
	"＊画像診断センター調査終了しました！"

// metricCard renders one headline metric as a bordered card. The
// bed-utilization value is colored by severity.
func metricCard(h feed.Headline) string {
	label := MetricLabelStyle.Render(h.Label)

	value := MetricValueStyle.Render(h.Value)
	if h.Slot == feed.SlotBed {
		if pct, ok := parsePercentValue(h.Value); ok {
			value = MetricStyle(pct).Bold(true).Render(h.Value)
		}
	}

	return CardStyle.Render(label + "\n" + value)
}

// announcementCard renders a titled text card at the given width.
func announcementCard(title, body string, width int) string {
	content := ChartTitleStyle.Render(title) + "\n" + body
	style := CardStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// keieiBody returns the planning-office card text, falling back to the
// fixed notice when the feed carries none.
func (m Model) keieiBody() string {
	if m.special != nil && strings.TrimSpace(m.special.Keiei) != "" {
		return feed.FlattenHTML(m.special.Keiei)
	}
	return KeieiFallback
}

// parsePercentValue extracts the number from a formatted value like
// "85.0%". Placeholder values report false.
func parsePercentValue(s string) (float64, bool) {
	s = strings.TrimSuffix(s, "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
