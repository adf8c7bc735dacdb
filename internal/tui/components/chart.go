package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline scaled between the series min and max.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Background(theme.Active.Surface).Render(buf.String())
}

// BarChart renders vertical bars for a short series, one labeled column per
// value. Negative values are drawn as empty columns.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	if height < 3 {
		return Sparkline(values, color)
	}
	t := theme.Active

	peak := 0.0
	for _, v := range values {
		peak = math.Max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	axisW := len(formatChartLabel(peak)) + 1
	n := len(values)
	colW := (width - axisW - 1) / n
	colW = max(3, min(colW, 10))
	barW := max(1, colW-2)

	axis := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	bar := lipgloss.NewStyle().Foreground(color).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := height; row >= 1; row-- {
		label := ""
		if row == height {
			label = formatChartLabel(peak)
		}
		b.WriteString(axis.Render(fmt.Sprintf("%*s│", axisW, label)))

		top := peak * float64(row) / float64(height)
		bottom := peak * float64(row-1) / float64(height)
		for _, v := range values {
			cell := strings.Repeat(" ", barW)
			switch {
			case v >= top:
				cell = strings.Repeat("█", barW)
			case v > bottom:
				idx := int((v - bottom) / (top - bottom) * float64(len(sparkBlocks)-1))
				cell = strings.Repeat(string(sparkBlocks[max(0, min(idx, len(sparkBlocks)-1))]), barW)
			}
			b.WriteString(blank.Render(" "))
			b.WriteString(bar.Render(cell))
			b.WriteString(blank.Render(strings.Repeat(" ", colW-barW-1)))
		}
		b.WriteString("\n")
	}

	b.WriteString(axis.Render(fmt.Sprintf("%*s└%s", axisW, "0", strings.Repeat("─", n*colW))))
	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blank.Render(strings.Repeat(" ", axisW+1)))
		for _, l := range labels {
			if len(l) > colW {
				l = l[:colW]
			}
			b.WriteString(axis.Render(fmt.Sprintf(" %-*s", colW-1, l)))
		}
	}
	return b.String()
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("%.1fk", v/1e3)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
