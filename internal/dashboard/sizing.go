package dashboard

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: single column, shallow graphs
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: single column, fuller graphs
	LayoutCompact
	// LayoutStandard is for terminals 120-160 columns: two chart columns
	LayoutStandard
	// LayoutWide is for terminals 160+ columns: three chart columns
	LayoutWide
)

// Width breakpoints for layout modes. These play the role the 768px and
// 1200px viewport breakpoints play in a browser.
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// String returns a human-readable layout mode name.
func (l LayoutMode) String() string {
	switch l {
	case LayoutMinimal:
		return "minimal"
	case LayoutCompact:
		return "compact"
	case LayoutStandard:
		return "standard"
	case LayoutWide:
		return "wide"
	default:
		return "unknown"
	}
}

// ChartSizing holds the size parameters a chart is drawn with. It is the
// terminal analog of a responsive font-size configuration: resolved from
// the current width at every render, never cached, so a redraw always
// reflects the viewport as it is now.
type ChartSizing struct {
	// GraphHeight is the number of braille rows per chart.
	GraphHeight int

	// LabelEvery shows every Nth x-axis label to avoid crowding.
	LabelEvery int

	// Columns is how many charts sit side by side.
	Columns int

	// ChartWidth is the interior drawing width per chart.
	ChartWidth int
}

// ResolveLayout maps a terminal width to a layout mode.
func ResolveLayout(width int) LayoutMode {
	switch {
	case width >= BreakpointWide:
		return LayoutWide
	case width >= BreakpointStandard:
		return LayoutStandard
	case width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ResolveSizing maps a terminal width to chart sizing. Pure function of
// width; callers must not cache the result across resizes.
func ResolveSizing(width int) ChartSizing {
	var s ChartSizing

	switch ResolveLayout(width) {
	case LayoutWide:
		s = ChartSizing{GraphHeight: 4, LabelEvery: 2, Columns: 3}
	case LayoutStandard:
		s = ChartSizing{GraphHeight: 4, LabelEvery: 2, Columns: 2}
	case LayoutCompact:
		s = ChartSizing{GraphHeight: 3, LabelEvery: 3, Columns: 1}
	default:
		s = ChartSizing{GraphHeight: 2, LabelEvery: 7, Columns: 1}
	}

	s.ChartWidth = chartWidthFor(width, s.Columns)
	return s
}

// chartWidthFor divides the terminal width between columns, accounting
// for card borders and margins (4 per card: 2 border + padding, plus the
// 1-column right margin).
func chartWidthFor(width, columns int) int {
	if width <= 0 {
		// Model has not seen a WindowSizeMsg yet
		width = BreakpointCompact
	}
	w := width/columns - 5
	if w < 20 {
		w = 20
	}
	return w
}
