package feed

import (
	"fmt"
	"math"
	"strconv"
)

// Chart slot identifiers, one per tracked metric. These double as the
// drawing-surface names the chart manager owns.
const (
	SlotBed         = "bedChart"
	SlotAmbulance   = "ambulanceChart"
	SlotInpatients  = "inpatientsChart"
	SlotDischarges  = "dischargesChart"
	SlotGeneralWard = "generalWardChart"
	SlotICU         = "icuChart"
	SlotAverageStay = "averageStayChart"
)

// Slots lists all chart slots in display order.
var Slots = []string{
	SlotBed,
	SlotAmbulance,
	SlotInpatients,
	SlotDischarges,
	SlotGeneralWard,
	SlotICU,
	SlotAverageStay,
}

// ValuePlaceholder is shown for a numeric field the feed omitted.
// Missing numbers are a display gap, not a validation failure.
const ValuePlaceholder = "--"

// Capacities holds the fixed bed capacities for the census metrics.
type Capacities struct {
	GeneralWard int
	ICU         int
}

// Headline is one formatted metric value for the summary strip.
type Headline struct {
	Slot  string
	Label string
	Value string
}

// Summary carries the latest row's formatted values plus the header strings.
type Summary struct {
	Date      string // e.g. 2024年12月25日(水)
	UpdatedAt string // e.g. 14:30
	Headlines []Headline
}

// Series is the trailing-window chart data for one metric. Values may
// contain NaN where the feed omitted a number; renderers treat NaN as a
// gap. Labels always align 1:1 with Values.
type Series struct {
	Slot   string
	Title  string
	Unit   string
	Color  string
	Labels []string
	Values []float64

	// MaxY clamps the vertical axis when positive; zero means auto-scale
	// from zero. Only the bed-utilization chart sets it (110, headroom
	// above 100%).
	MaxY float64
}

// Transform derives the headline summary and per-metric chart series from
// a validated payload. daysToShow bounds the trailing window; if fewer
// rows exist, all of them are used.
func Transform(p *DashboardPayload, caps Capacities, daysToShow int) (*Summary, []Series, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	if daysToShow < 1 {
		daysToShow = 1
	}

	latest := p.Latest()

	summary := &Summary{
		Date:      FormatDate(latest.Date),
		UpdatedAt: FormatTime(p.LastEditTime),
		Headlines: []Headline{
			{SlotBed, "病床利用率", formatPercent(latest.BedUtilization)},
			{SlotAmbulance, "救急車搬入数", formatCount(latest.AmbulanceArrivals, "台")},
			{SlotInpatients, "入院患者数", formatCount(latest.Inpatients, "人")},
			{SlotDischarges, "退院予定数", formatCount(latest.PlannedDischarges, "人")},
			{SlotGeneralWard, "一般病棟在院数", formatCensus(latest.GeneralWardCensus, caps.GeneralWard)},
			{SlotICU, "集中治療室在院数", formatCensus(latest.ICUCensus, caps.ICU)},
			{SlotAverageStay, "平均在院日数", formatDays(latest.AvgStayDays)},
		},
	}

	window := p.Data
	if len(window) > daysToShow {
		window = window[len(window)-daysToShow:]
	}

	labels := make([]string, len(window))
	for i, row := range window {
		labels[i] = FormatChartDate(row.Date)
	}

	series := []Series{
		{Slot: SlotBed, Title: "病床利用率 (%)", Unit: "％", Color: "blue", MaxY: 110,
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.BedUtilization }, 100)},
		{Slot: SlotAmbulance, Title: "救急車搬入数", Unit: "台", Color: "red",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.AmbulanceArrivals }, 1)},
		{Slot: SlotInpatients, Title: "入院患者数", Unit: "人", Color: "green",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.Inpatients }, 1)},
		{Slot: SlotDischarges, Title: "退院予定数", Unit: "人", Color: "orange",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.PlannedDischarges }, 1)},
		{Slot: SlotGeneralWard, Title: "一般病棟在院数", Unit: "床", Color: "purple",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.GeneralWardCensus }, 1)},
		{Slot: SlotICU, Title: "集中治療室在院数", Unit: "床", Color: "teal",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.ICUCensus }, 1)},
		{Slot: SlotAverageStay, Title: "平均在院日数", Unit: "日", Color: "darkblue",
			Labels: labels, Values: collect(window, func(r SnapshotRow) *float64 { return r.AvgStayDays }, 1)},
	}

	return summary, series, nil
}

// collect extracts one field across the window, scaling present values
// and marking absent ones as NaN gaps.
func collect(rows []SnapshotRow, get func(SnapshotRow) *float64, scale float64) []float64 {
	out := make([]float64, len(rows))
	for i, row := range rows {
		if v := get(row); v != nil {
			out[i] = *v * scale
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// formatPercent renders a 0..1 fraction as a percentage with one decimal.
func formatPercent(v *float64) string {
	if v == nil {
		return ValuePlaceholder + "%"
	}
	return fmt.Sprintf("%.1f%%", *v*100)
}

// formatCount renders an integer-valued metric with its unit suffix.
func formatCount(v *float64, unit string) string {
	if v == nil {
		return ValuePlaceholder + unit
	}
	return formatNumber(*v) + unit
}

// formatCensus renders an occupied/capacity pair, e.g. "170/202 床".
func formatCensus(v *float64, capacity int) string {
	occupied := ValuePlaceholder
	if v != nil {
		occupied = formatNumber(*v)
	}
	return fmt.Sprintf("%s/%d 床", occupied, capacity)
}

// formatDays renders the average-stay metric, e.g. "9.5日".
func formatDays(v *float64) string {
	if v == nil {
		return ValuePlaceholder + "日"
	}
	return formatNumber(*v) + "日"
}

// formatNumber prints a float without trailing zeros: 12 not 12.0, 9.5 as is.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
