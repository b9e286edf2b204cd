package dashboard

import (
	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#2A3A4A")

	// Semantic colors
	ColorHealthy  = lipgloss.Color("#2ECC71")
	ColorWarning  = lipgloss.Color("#F5A623")
	ColorCritical = lipgloss.Color("#E74C3C")

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#AFC2D4")
	ColorTextMuted     = lipgloss.Color("#5F7285")

	// Accent
	ColorAccent = lipgloss.Color("#39A0ED")
)

// Thresholds for the bed-utilization severity coloring
const (
	WarningThreshold  = 85.0
	CriticalThreshold = 95.0
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	UpdateTimeStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	MetricLabelStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	MetricValueStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true)

	ChartTitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	AxisLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	AxisUnitStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	// Banner styles for the notification presenter
	BannerErrorStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(lipgloss.Color("#8B1A1A")).
				Bold(true).
				Padding(0, 1)

	BannerInfoStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(lipgloss.Color("#1A4A6B")).
			Padding(0, 1)

	BannerSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(lipgloss.Color("#14532D")).
				Padding(0, 1)

	BannerDismissStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)
)

// chartColors maps series color names to terminal colors. Unknown names
// fall back to the accent color.
var chartColors = map[string]lipgloss.Color{
	"blue":     lipgloss.Color("#39A0ED"),
	"red":      lipgloss.Color("#E74C3C"),
	"green":    lipgloss.Color("#2ECC71"),
	"orange":   lipgloss.Color("#F5A623"),
	"purple":   lipgloss.Color("#9B59B6"),
	"teal":     lipgloss.Color("#1ABC9C"),
	"darkblue": lipgloss.Color("#3457D5"),
}

// ChartColor resolves a series color name to a lipgloss color.
func ChartColor(name string) lipgloss.Color {
	if c, ok := chartColors[name]; ok {
		return c
	}
	return ColorAccent
}

// MetricColor returns the severity color for a percentage metric.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the severity color for the metric.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}
