package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/feed"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// Fetcher retrieves a JSON document into v. Satisfied by *fetch.Client;
// tests substitute fakes.
type Fetcher interface {
	FetchJSON(ctx context.Context, url string, v interface{}) error
}

// specialBannerDuration is how long the announcements-feed failure
// banner stays up. The page is still useful without announcements, so
// the banner dismisses itself.
const specialBannerDuration = 4 * time.Second

// Model is the Bubble Tea model for the dashboard. It owns all page
// state: the retained feed snapshot, chart instances, the notification
// banner, and the two fetch controllers' in-flight flags.
type Model struct {
	cfg     *config.Config
	fetcher Fetcher
	log     logger.Logger
	keys    keyMap

	width  int
	height int

	// Retained snapshot from the last successful main fetch. Resize
	// redraws replay from here without re-fetching.
	summary *feed.Summary
	series  []feed.Series

	special  *feed.SpecialContent
	suiyokai *feed.SuiyokaiDigest

	charts *Manager
	notify *Presenter
	digest viewport.Model

	// Controller state. Each feed has one in-flight flag; a fetch
	// requested while one is running is dropped.
	mainInFlight    bool
	specialInFlight bool

	// resizeSeq tags the latest resize burst; only the redraw message
	// carrying the current value fires.
	resizeSeq int

	digestOpen bool
}

// NewModel builds the dashboard model. The in-flight flags start true
// for every feed Init will fetch, so a refresh pressed before the first
// completion is dropped like any other overlap.
func NewModel(cfg *config.Config, fetcher Fetcher, log logger.Logger) Model {
	if log == nil {
		log = logger.Default()
	}
	dv := viewport.New(0, 6)
	return Model{
		cfg:     cfg,
		fetcher: fetcher,
		log:     log,
		keys:    defaultKeyMap(),
		charts:  NewManager(feed.Slots, log),
		notify:  NewPresenter(),
		digest:  dv,
		// Init fires the fetches, so the controllers start busy.
		mainInFlight:    true,
		specialInFlight: cfg.Feeds.Special != "",
	}
}

// Init launches both feed fetches concurrently, plus the periodic
// refresh tick when one is configured. The announcements fetch is
// skipped entirely when no special feed URL is configured.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchMainCmd()}
	if m.cfg.Feeds.Special != "" {
		cmds = append(cmds, m.fetchSpecialCmd())
	}
	if m.cfg.Chart.RefreshInterval > 0 {
		cmds = append(cmds, m.refreshTickCmd())
	}
	return tea.Batch(cmds...)
}

// Update is the single place controller state changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.digest.Width = msg.Width - 6
		m.resizeSeq++
		seq := m.resizeSeq
		return m, tea.Tick(m.cfg.Chart.DebounceDelay, func(time.Time) tea.Msg {
			return redrawMsg{seq: seq}
		})

	case redrawMsg:
		if msg.seq != m.resizeSeq {
			// A newer resize superseded this one.
			return m, nil
		}
		if m.summary == nil {
			// No data yet; the fetch completion will draw.
			return m, nil
		}
		m.renderCharts()
		return m, nil

	case mainFeedMsg:
		m.mainInFlight = false
		summary, series, err := feed.Transform(msg.payload, feed.Capacities{
			GeneralWard: m.cfg.Capacity.GeneralWard,
			ICU:         m.cfg.Capacity.ICU,
		}, m.cfg.Chart.DaysToShow)
		if err != nil {
			return m, m.showBanner(Banner{
				Text:     "データの取得に失敗しました: " + err.Error(),
				Severity: SeverityError,
			})
		}
		m.summary = summary
		m.series = series
		m.renderCharts()
		m.notify.Clear()
		return m, nil

	case mainFeedFailedMsg:
		m.mainInFlight = false
		m.log.Error("main feed fetch failed: %v", msg.err)
		// Persistent until dismissed; the page has nothing to show.
		return m, m.showBanner(Banner{
			Text:     "データの取得に失敗しました。ネットワーク接続を確認してください。",
			Severity: SeverityError,
		})

	case specialFeedMsg:
		m.specialInFlight = false
		m.special = msg.payload.SpecialData
		m.suiyokai = feed.StructureSuiyokai(m.special.Suiyokai)
		m.digest.SetContent(m.digestContent())
		return m, nil

	case specialFeedFailedMsg:
		m.specialInFlight = false
		m.log.Error("special feed fetch failed: %v", msg.err)
		return m, m.showBanner(Banner{
			Text:     "お知らせの取得に失敗しました",
			Severity: SeverityInfo,
			Duration: specialBannerDuration,
		})

	case notifyExpiredMsg:
		m.notify.Expire(msg.gen)
		return m, nil

	case refreshTickMsg:
		cmds := []tea.Cmd{m.refreshTickCmd()}
		if cmd := m.startMainFetch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		if cmd := m.startSpecialFetch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case linkOpenedMsg:
		if msg.err != nil {
			return m, m.showBanner(Banner{
				Text:     "リンクを開けませんでした",
				Severity: SeverityInfo,
				Duration: specialBannerDuration,
			})
		}
		return m, nil
	}

	return m, nil
}

// startMainFetch begins a main feed fetch unless one is already running.
// Overlapping requests are dropped, not queued.
func (m *Model) startMainFetch() tea.Cmd {
	if m.mainInFlight {
		m.log.Debug("main fetch already in flight, dropping request")
		return nil
	}
	m.mainInFlight = true
	return m.fetchMainCmd()
}

// startSpecialFetch begins an announcements fetch unless one is running
// or no special feed is configured.
func (m *Model) startSpecialFetch() tea.Cmd {
	if m.cfg.Feeds.Special == "" {
		return nil
	}
	if m.specialInFlight {
		m.log.Debug("special fetch already in flight, dropping request")
		return nil
	}
	m.specialInFlight = true
	return m.fetchSpecialCmd()
}

// fetchMainCmd fetches and validates the main feed. All retry behavior
// lives in the fetcher; by the time a failure message arrives here the
// attempts are exhausted.
func (m Model) fetchMainCmd() tea.Cmd {
	fetcher, url := m.fetcher, m.cfg.Feeds.Dashboard
	return func() tea.Msg {
		var payload feed.DashboardPayload
		if err := fetcher.FetchJSON(context.Background(), url, &payload); err != nil {
			return mainFeedFailedMsg{err: err}
		}
		if err := payload.Validate(); err != nil {
			return mainFeedFailedMsg{err: err}
		}
		return mainFeedMsg{payload: &payload}
	}
}

// fetchSpecialCmd fetches and validates the announcements feed.
func (m Model) fetchSpecialCmd() tea.Cmd {
	fetcher, url := m.fetcher, m.cfg.Feeds.Special
	return func() tea.Msg {
		var payload feed.SpecialPayload
		if err := fetcher.FetchJSON(context.Background(), url, &payload); err != nil {
			return specialFeedFailedMsg{err: err}
		}
		if err := payload.Validate(); err != nil {
			return specialFeedFailedMsg{err: err}
		}
		return specialFeedMsg{payload: &payload}
	}
}

// refreshTickCmd schedules the next periodic refresh.
func (m Model) refreshTickCmd() tea.Cmd {
	return tea.Tick(m.cfg.Chart.RefreshInterval, func(t time.Time) tea.Msg {
		return refreshTickMsg{at: t}
	})
}

// showBanner displays b and, for timed banners, schedules its expiry.
func (m *Model) showBanner(b Banner) tea.Cmd {
	gen := m.notify.Show(b)
	if b.Duration <= 0 {
		return nil
	}
	return tea.Tick(b.Duration, func(time.Time) tea.Msg {
		return notifyExpiredMsg{gen: gen}
	})
}

// renderCharts repaints every chart from the retained series with sizing
// resolved from the current width. One bad series logs and skips; the
// rest still draw.
func (m *Model) renderCharts() {
	sizing := ResolveSizing(m.width)
	for _, s := range m.series {
		spec := ChartSpec{
			Slot:   s.Slot,
			Title:  s.Title,
			Labels: s.Labels,
			Values: s.Values,
			Color:  s.Color,
			Unit:   s.Unit,
			MaxY:   s.MaxY,
		}
		if err := m.charts.Render(spec, sizing); err != nil {
			m.log.Error("chart render failed for %s: %v", s.Slot, err)
		}
	}
}
