package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ksakamaki/hospdash/internal/feed"
)

// DashboardTitle is the page heading.
const DashboardTitle = "病院運営ダッシュボード"

// View renders the full page: header, banner, headline strip, chart
// grid, announcement cards, footer.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.headerView())

	if banner := m.notify.render(m.width); banner != "" {
		sections = append(sections, banner)
	}

	if m.summary == nil {
		if m.mainInFlight {
			sections = append(sections, UpdateTimeStyle.Render("  データを取得しています..."))
		}
		sections = append(sections, m.footerView())
		return strings.Join(sections, "\n")
	}

	sections = append(sections, m.headlineStrip())
	sections = append(sections, m.chartGrid())

	if m.special != nil {
		sections = append(sections, m.announcementsView())
	}

	sections = append(sections, m.footerView())
	return strings.Join(sections, "\n")
}

// headerView renders the title line with the report date and the sheet's
// last-edit time.
func (m Model) headerView() string {
	title := HeaderStyle.Render(DashboardTitle)
	if m.summary == nil {
		return title
	}
	meta := UpdateTimeStyle.Render(m.summary.Date + "  最終更新 " + m.summary.UpdatedAt)
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(meta) - 1
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + meta
}

// headlineStrip renders the latest-day metric cards in a row, wrapping
// to the terminal width.
func (m Model) headlineStrip() string {
	var cards []string
	for _, h := range m.summary.Headlines {
		cards = append(cards, metricCard(h))
	}
	return wrapRow(cards, m.width)
}

// chartGrid renders the chart instances in display order, laid out in
// the column count the current sizing dictates.
func (m Model) chartGrid() string {
	sizing := ResolveSizing(m.width)

	var cards []string
	for _, slot := range feed.Slots {
		inst := m.charts.Instance(slot)
		if inst == nil {
			continue
		}
		cards = append(cards, CardStyle.Render(inst.View()))
	}
	if len(cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(cards); i += sizing.Columns {
		end := i + sizing.Columns
		if end > len(cards) {
			end = len(cards)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return strings.Join(rows, "\n")
}

// announcementsView renders the two announcement cards side by side, or
// the expanded digest viewport when toggled open.
func (m Model) announcementsView() string {
	if m.digestOpen {
		card := announcementCard("経営戦略会議", m.digest.View(), m.width-4)
		return card + "\n" + FooterStyle.Render("  ↑/↓ スクロール  a 閉じる")
	}

	half := m.width/2 - 4
	suiyokai := announcementCard("経営戦略会議", m.suiyokaiSummary(), half)
	keiei := announcementCard("経営企画室より", m.keieiBody(), half)
	return lipgloss.JoinHorizontal(lipgloss.Top, suiyokai, keiei)
}

// suiyokaiSummary is the collapsed one-line form of the digest.
func (m Model) suiyokaiSummary() string {
	if m.suiyokai == nil {
		return feed.SuiyokaiFallback
	}
	line := m.suiyokai.Mission
	if len(m.suiyokai.Descriptions) > 0 {
		line += BannerDismissStyle.Render("  (a で詳細)")
	}
	return line
}

// digestContent builds the full digest text shown in the expanded
// viewport: the mission line followed by its bullet items.
func (m Model) digestContent() string {
	if m.suiyokai == nil {
		return feed.SuiyokaiFallback
	}
	var b strings.Builder
	b.WriteString(m.suiyokai.Mission)
	for _, d := range m.suiyokai.Descriptions {
		b.WriteString("\n・" + d)
	}
	return b.String()
}

// footerView renders the key help line.
func (m Model) footerView() string {
	return FooterStyle.Render("q 終了  r 更新  a お知らせ  o 議事録  g 経営企画  x 通知を閉じる")
}

// wrapRow joins blocks horizontally, starting a new line when the next
// block would overflow the width.
func wrapRow(blocks []string, width int) string {
	if len(blocks) == 0 {
		return ""
	}
	if width <= 0 {
		return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
	}

	var rows []string
	var row []string
	used := 0
	for _, b := range blocks {
		w := lipgloss.Width(b)
		if used > 0 && used+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		row = append(row, b)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return strings.Join(rows, "\n")
}
