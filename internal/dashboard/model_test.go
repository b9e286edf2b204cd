package dashboard

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ksakamaki/hospdash/internal/config"
	"github.com/ksakamaki/hospdash/internal/errors"
	"github.com/ksakamaki/hospdash/internal/feed"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// fakeFetcher counts calls and delegates to fn when set.
type fakeFetcher struct {
	calls int
	fn    func(url string, v interface{}) error
}

func (f *fakeFetcher) FetchJSON(ctx context.Context, url string, v interface{}) error {
	f.calls++
	if f.fn != nil {
		return f.fn(url, v)
	}
	return nil
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Feeds.Dashboard = "https://example.com/metrics"
	cfg.Feeds.Special = "https://example.com/special"
	return cfg
}

func fv(v float64) *float64 { return &v }

func testPayload() *feed.DashboardPayload {
	return &feed.DashboardPayload{
		Data: []feed.SnapshotRow{
			{
				Date:              "2024-12-25",
				BedUtilization:    fv(0.85),
				AmbulanceArrivals: fv(5),
				Inpatients:        fv(12),
				PlannedDischarges: fv(8),
				GeneralWardCensus: fv(170),
				ICUCensus:         fv(10),
				AvgStayDays:       fv(9.5),
			},
		},
		LastEditTime: "2024-12-25T14:30:00",
	}
}

// step runs one Update and returns the typed model back.
func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(Model)
	require.True(t, ok)
	return next, cmd
}

func TestNewModelStartsInFlight(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	assert.True(t, m.mainInFlight)
	assert.True(t, m.specialInFlight)
}

func TestNewModelNoSpecialFeed(t *testing.T) {
	cfg := testConfig()
	cfg.Feeds.Special = ""
	m := NewModel(cfg, &fakeFetcher{}, logger.Noop())

	assert.False(t, m.specialInFlight)
	assert.Nil(t, (&m).startSpecialFetch())
}

func TestRefreshDroppedWhileInFlight(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	// Both controllers are busy from Init; pressing r does nothing.
	_, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
}

func TestRefreshAllowedAfterCompletion(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	m, _ = step(t, m, mainFeedMsg{payload: testPayload()})
	m, _ = step(t, m, specialFeedMsg{payload: &feed.SpecialPayload{SpecialData: &feed.SpecialContent{}}})

	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.NotNil(t, cmd)
	assert.True(t, m.mainInFlight)
	assert.True(t, m.specialInFlight)
}

func TestMainFeedSuccessRendersCharts(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())
	m.width = 120

	m, cmd := step(t, m, mainFeedMsg{payload: testPayload()})

	assert.Nil(t, cmd)
	assert.False(t, m.mainInFlight)
	require.NotNil(t, m.summary)
	assert.Equal(t, len(feed.Slots), m.charts.Count())
	assert.Nil(t, m.notify.Active())
}

func TestMainFeedFailureShowsPersistentBanner(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	m, cmd := step(t, m, mainFeedFailedMsg{err: errors.New(errors.ErrNetwork, "boom", "")})

	assert.False(t, m.mainInFlight)
	banner := m.notify.Active()
	require.NotNil(t, banner)
	assert.Equal(t, SeverityError, banner.Severity)
	// Persistent: no expiry scheduled.
	assert.Zero(t, banner.Duration)
	assert.Nil(t, cmd)
}

func TestSpecialFeedFailureShowsTimedBanner(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	m, cmd := step(t, m, specialFeedFailedMsg{err: errors.New(errors.ErrNetwork, "boom", "")})

	assert.False(t, m.specialInFlight)
	banner := m.notify.Active()
	require.NotNil(t, banner)
	assert.Equal(t, SeverityInfo, banner.Severity)
	assert.NotNil(t, cmd)
}

func TestMainFailureDoesNotAffectSpecial(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	m, _ = step(t, m, mainFeedFailedMsg{err: errors.New(errors.ErrNetwork, "boom", "")})
	m, _ = step(t, m, specialFeedMsg{payload: &feed.SpecialPayload{
		SpecialData: &feed.SpecialContent{Suiyokai: "方針<br>・項目"},
	}})

	require.NotNil(t, m.suiyokai)
	assert.Equal(t, "方針", m.suiyokai.Mission)
	assert.False(t, m.specialInFlight)
}

func TestResizeBeforeDataIsNoOp(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())

	m, cmd := step(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.NotNil(t, cmd)

	m, _ = step(t, m, redrawMsg{seq: m.resizeSeq})
	assert.Equal(t, 0, m.charts.Count())
}

func TestResizeRedrawUsesCurrentWidth(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())
	m.width = 100
	m, _ = step(t, m, mainFeedMsg{payload: testPayload()})

	before := m.charts.Instance(feed.SlotBed)
	require.NotNil(t, before)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	m, _ = step(t, m, redrawMsg{seq: m.resizeSeq})

	after := m.charts.Instance(feed.SlotBed)
	require.NotNil(t, after)
	assert.NotSame(t, before, after)
	assert.True(t, before.Destroyed())
	assert.Equal(t, ResolveSizing(200).ChartWidth, after.Sizing.ChartWidth)
}

func TestStaleRedrawIgnored(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())
	m.width = 100
	m, _ = step(t, m, mainFeedMsg{payload: testPayload()})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 150, Height: 50})
	staleSeq := m.resizeSeq
	m, _ = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})

	before := m.charts.Instance(feed.SlotBed)
	m, _ = step(t, m, redrawMsg{seq: staleSeq})

	// The stale redraw did nothing; the instance is untouched.
	assert.Same(t, before, m.charts.Instance(feed.SlotBed))
}

func TestRedrawDoesNotRefetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := NewModel(testConfig(), fetcher, logger.Noop())
	m.width = 100
	m, _ = step(t, m, mainFeedMsg{payload: testPayload()})

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 50})
	m, _ = step(t, m, redrawMsg{seq: m.resizeSeq})

	assert.Zero(t, fetcher.calls)
}

func TestFetchMainCmdProducesMessages(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(url string, v interface{}) error {
		p, ok := v.(*feed.DashboardPayload)
		require.True(t, ok)
		*p = *testPayload()
		return nil
	}}
	m := NewModel(testConfig(), fetcher, logger.Noop())

	msg := m.fetchMainCmd()()
	got, ok := msg.(mainFeedMsg)
	require.True(t, ok)
	assert.Len(t, got.payload.Data, 1)
	assert.Equal(t, 1, fetcher.calls)
}

func TestFetchMainCmdFailure(t *testing.T) {
	fetcher := &fakeFetcher{fn: func(url string, v interface{}) error {
		return errors.New(errors.ErrNetwork, "boom", "")
	}}
	m := NewModel(testConfig(), fetcher, logger.Noop())

	msg := m.fetchMainCmd()()
	_, ok := msg.(mainFeedFailedMsg)
	assert.True(t, ok)
}

func TestFetchMainCmdEmptyPayloadFails(t *testing.T) {
	// An empty data array is a validation failure, not a blank render.
	fetcher := &fakeFetcher{fn: func(url string, v interface{}) error {
		return nil
	}}
	m := NewModel(testConfig(), fetcher, logger.Noop())

	msg := m.fetchMainCmd()()
	failed, ok := msg.(mainFeedFailedMsg)
	require.True(t, ok)
	assert.True(t, errors.IsCode(failed.err, errors.ErrValidate))
}

func TestDismissClearsBanner(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())
	m, _ = step(t, m, mainFeedFailedMsg{err: errors.New(errors.ErrNetwork, "boom", "")})
	require.NotNil(t, m.notify.Active())

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Nil(t, m.notify.Active())
}

func TestBannerExpiryMessage(t *testing.T) {
	m := NewModel(testConfig(), &fakeFetcher{}, logger.Noop())
	m, _ = step(t, m, specialFeedFailedMsg{err: errors.New(errors.ErrNetwork, "boom", "")})
	require.NotNil(t, m.notify.Active())

	m, _ = step(t, m, notifyExpiredMsg{gen: 1})
	assert.Nil(t, m.notify.Active())
}

func TestInitSchedulesRefreshTickWhenConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.Chart.RefreshInterval = time.Minute
	m := NewModel(cfg, &fakeFetcher{}, logger.Noop())

	assert.NotNil(t, m.Init())
}

func TestRefreshTickDroppedWhileInFlight(t *testing.T) {
	fetcher := &fakeFetcher{}
	m := NewModel(testConfig(), fetcher, logger.Noop())

	// Controllers busy; the tick only reschedules itself.
	m2, cmd := step(t, m, refreshTickMsg{at: time.Now()})
	assert.NotNil(t, cmd)
	assert.True(t, m2.mainInFlight)
}
