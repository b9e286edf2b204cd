package dashboard

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal line charts.
//
// Braille patterns use a 2x4 dot matrix per character, so each character
// cell holds 2 horizontal positions and 4 vertical levels. Unicode
// braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '⠀'

// brailleDots maps row/column to the bit offset for braille patterns.
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right).
var brailleDots = [4][2]uint8{
	{0, 3}, // Row 0: dots 1 and 4
	{1, 4}, // Row 1: dots 2 and 5
	{2, 5}, // Row 2: dots 3 and 6
	{6, 7}, // Row 3: dots 7 and 8
}

// sparklineBlocks are block characters for 8-level vertical resolution.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// seriesMax returns the largest non-NaN value, ignoring gaps.
// Returns 0 when every value is a gap.
func seriesMax(data []float64) float64 {
	maxVal := 0.0
	for _, v := range data {
		if !math.IsNaN(v) && v > maxVal {
			maxVal = v
		}
	}
	return maxVal
}

// clampInt clamps an integer to the range [0, maxVal].
func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// interpolate spreads n data points across targetPoints positions using
// linear interpolation, so a 14-day series draws as a connected line.
// A NaN neighbor makes the interpolated position NaN, preserving gaps.
func interpolate(data []float64, targetPoints int) []float64 {
	if len(data) == 0 || targetPoints <= 0 {
		return nil
	}

	result := make([]float64, targetPoints)
	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetPoints-1)
	for i := 0; i < targetPoints; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
			continue
		}
		a, b := data[idx], data[idx+1]
		if math.IsNaN(a) || math.IsNaN(b) {
			// Keep the exact sample visible, gap the in-between
			if frac < 0.5 && !math.IsNaN(a) {
				result[i] = a
			} else if frac >= 0.5 && !math.IsNaN(b) {
				result[i] = b
			} else {
				result[i] = math.NaN()
			}
			continue
		}
		result[i] = a*(1-frac) + b*frac
	}
	return result
}

// RenderBrailleLine renders a line chart using braille characters.
// The vertical axis always starts at zero; maxY clamps the top when
// positive, otherwise the axis scales to the series maximum. NaN values
// are gaps and draw nothing.
func RenderBrailleLine(data []float64, width, height int, color lipgloss.Color, maxY float64) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	top := maxY
	if top <= 0 {
		top = seriesMax(data)
	}
	if top <= 0 {
		top = 1
	}

	totalDots := height * 4
	targetPoints := width * 2
	plotted := interpolate(data, targetPoints)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	for i, val := range plotted {
		if math.IsNaN(val) {
			continue
		}
		normalized := val / top
		if normalized > 1 {
			normalized = 1
		}
		if normalized < 0 {
			normalized = 0
		}
		dot := clampInt(int(normalized*float64(totalDots-1)), totalDots-1)

		charCol := (i / 2)
		if charCol >= width {
			continue
		}
		subCol := i % 2

		row := height - 1 - (dot / 4)
		subRow := 3 - (dot % 4)
		grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
	}

	style := lipgloss.NewStyle().Foreground(color)
	var lines []string
	for _, row := range grid {
		lines = append(lines, style.Render(string(row)))
	}
	return strings.Join(lines, "\n")
}

// RenderAxisLabels builds the x-axis label row aligned under the plotted
// positions. Every labelEvery-th label is shown plus the final one;
// labels that would overlap are skipped.
func RenderAxisLabels(labels []string, width, labelEvery int) string {
	if len(labels) == 0 || width <= 0 {
		return ""
	}
	if labelEvery < 1 {
		labelEvery = 1
	}

	row := make([]rune, width)
	for i := range row {
		row[i] = ' '
	}

	targetPoints := width * 2
	lastWritten := -1
	place := func(idx int) {
		label := []rune(labels[idx])
		var col int
		if len(labels) == 1 {
			col = 0
		} else {
			col = idx * (targetPoints - 1) / (len(labels) - 1) / 2
		}
		// Right-edge labels shift left to fit
		if col+len(label) > width {
			col = width - len(label)
		}
		if col <= lastWritten {
			return
		}
		for j, r := range label {
			if col+j >= width {
				break
			}
			row[col+j] = r
		}
		lastWritten = col + len(label)
	}

	for i := 0; i < len(labels)-1; i += labelEvery {
		place(i)
	}
	place(len(labels) - 1)

	return AxisLabelStyle.Render(string(row))
}

// MiniSparkline renders a single-row block-character sparkline, used by
// the one-shot snapshot output. NaN values render as spaces.
func MiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	if len(data) > width {
		data = data[len(data)-width:]
	}

	top := seriesMax(data)
	if top <= 0 {
		top = 1
	}

	var b strings.Builder
	for _, v := range data {
		if math.IsNaN(v) {
			b.WriteRune(' ')
			continue
		}
		normalized := v / top
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		b.WriteRune(sparklineBlocks[idx])
	}
	return b.String()
}
