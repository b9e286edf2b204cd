package dashboard

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ksakamaki/hospdash/internal/errors"
	"github.com/ksakamaki/hospdash/internal/logger"
)

// ChartSpec describes one chart to draw: title, axis labels, series
// values, line color, y-axis unit, and an optional axis clamp.
type ChartSpec struct {
	Slot   string
	Title  string
	Labels []string
	Values []float64
	Color  string
	Unit   string

	// MaxY clamps the vertical axis when positive; zero auto-scales.
	MaxY float64
}

// ChartInstance is one live drawable chart attached to a slot. Instances
// are never mutated after creation; a redraw destroys and replaces them.
type ChartInstance struct {
	Slot      string
	Spec      ChartSpec
	Sizing    ChartSizing
	content   string
	destroyed bool
}

// View returns the rendered chart content. A destroyed instance renders
// nothing, which makes a missed destroy/create pairing visible in tests.
func (ci *ChartInstance) View() string {
	if ci.destroyed {
		return ""
	}
	return ci.content
}

// Destroyed reports whether this instance has been released.
func (ci *ChartInstance) Destroyed() bool {
	return ci.destroyed
}

// destroy releases the instance. Must happen before a replacement is
// attached to the same slot.
func (ci *ChartInstance) destroy() {
	ci.destroyed = true
	ci.content = ""
}

// Manager owns the chart instances, one per known slot. The slot set is
// fixed at construction, mirroring the drawing surfaces present in the
// layout; rendering to an unknown slot is a logged no-op.
type Manager struct {
	known     map[string]bool
	instances map[string]*ChartInstance
	log       logger.Logger
}

// NewManager creates a chart manager for the given slot identifiers.
func NewManager(slots []string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Default()
	}
	known := make(map[string]bool, len(slots))
	for _, s := range slots {
		known[s] = true
	}
	return &Manager{
		known:     known,
		instances: make(map[string]*ChartInstance),
		log:       log,
	}
}

// Render draws a chart into its slot. If a prior instance is attached it
// is destroyed before the new one is built; at most one live instance
// exists per slot at any time. Rendering to an unknown slot logs and
// returns nil so one missing surface never blanks the rest of the page.
func (m *Manager) Render(spec ChartSpec, sizing ChartSizing) error {
	if !m.known[spec.Slot] {
		m.log.Warn("no drawing surface for slot: %s", spec.Slot)
		return nil
	}

	// Destroy before create: skipping this leaks the old instance and
	// double-draws the slot. The old chart goes away even when the new
	// spec turns out to be bad; stale data must not linger.
	if old, ok := m.instances[spec.Slot]; ok {
		old.destroy()
		delete(m.instances, spec.Slot)
	}

	if len(spec.Labels) != len(spec.Values) {
		return errors.New(errors.ErrRender,
			fmt.Sprintf("Chart %s has %d labels for %d values", spec.Slot, len(spec.Labels), len(spec.Values)),
			"The series and its axis labels must align")
	}

	inst := &ChartInstance{
		Slot:    spec.Slot,
		Spec:    spec,
		Sizing:  sizing,
		content: renderChartContent(spec, sizing),
	}
	m.instances[spec.Slot] = inst
	return nil
}

// Instance returns the live instance for a slot, or nil.
func (m *Manager) Instance(slot string) *ChartInstance {
	return m.instances[slot]
}

// Count returns the number of live instances.
func (m *Manager) Count() int {
	return len(m.instances)
}

// DestroyAll releases every live instance.
func (m *Manager) DestroyAll() {
	for slot, inst := range m.instances {
		inst.destroy()
		delete(m.instances, slot)
	}
}

// renderChartContent draws the full chart block: title with the latest
// value, the braille line plot, and the x-axis label row.
func renderChartContent(spec ChartSpec, sizing ChartSizing) string {
	width := sizing.ChartWidth

	title := ChartTitleStyle.Render(spec.Title)
	latest := latestValueText(spec)
	titleLine := title
	if latest != "" {
		gap := width - lipgloss.Width(title) - lipgloss.Width(latest)
		if gap > 0 {
			titleLine = title + strings.Repeat(" ", gap) + latest
		}
	}

	plot := RenderBrailleLine(spec.Values, width, sizing.GraphHeight, ChartColor(spec.Color), spec.MaxY)
	axis := RenderAxisLabels(spec.Labels, width, sizing.LabelEvery)

	parts := []string{titleLine}
	if plot != "" {
		parts = append(parts, plot)
	}
	if axis != "" {
		parts = append(parts, axis)
	}
	return strings.Join(parts, "\n")
}

// latestValueText formats the most recent non-gap value with its unit.
func latestValueText(spec ChartSpec) string {
	for i := len(spec.Values) - 1; i >= 0; i-- {
		if !math.IsNaN(spec.Values[i]) {
			v := spec.Values[i]
			return AxisUnitStyle.Render(fmt.Sprintf("%.1f%s", v, spec.Unit))
		}
	}
	return ""
}
