package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette for plain CLI output (Flexoki Dark).
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorYellow    = lipgloss.Color("#D0A215")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText).Align(lipgloss.Center)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorText)
	mutedStyle  = lipgloss.NewStyle().Foreground(ColorTextMuted)
	dimStyle    = lipgloss.NewStyle().Foreground(ColorTextDim)
	goodStyle   = lipgloss.NewStyle().Foreground(ColorGreen)
)

// Severity groups of engine labels, mildest first.
var (
	goodLabels     = []string{"low", "stable", "compliant", "good", "improving"}
	moderateLabels = []string{"medium", "medium_pressure", "steady"}
	highLabels     = []string{"high", "high_pressure", "needs_attention", "warn"}
	criticalLabels = []string{"critical", "operational_risk", "systemic_risk", "danger", "declining"}
)

// Table is a bordered text table. A row holding the single cell "---"
// renders as a separator.
type Table struct {
	Title    string
	Headers  []string
	Rows     [][]string
	Widths   []int // optional column widths, auto-calculated if nil
	TextCols int   // leading left-aligned columns, at least 1
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(titleStyle.Render(title))
}

// RenderTable renders a bordered table; columns after TextCols are
// right-aligned.
func RenderTable(t Table) string {
	cols := len(t.Headers)
	if cols == 0 && len(t.Rows) > 0 {
		cols = len(t.Rows[0])
	}
	if cols == 0 {
		return ""
	}
	textCols := max(t.TextCols, 1)
	widths := t.columnWidths(cols)

	rule := func(left, mid, right string) string {
		parts := make([]string, cols)
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return dimStyle.Render(left+strings.Join(parts, mid)+right) + "\n"
	}
	line := func(cells []string, style func(i int) lipgloss.Style) string {
		var b strings.Builder
		bar := dimStyle.Render("│")
		b.WriteString(bar)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i < textCols {
				cell = padRight(cell, widths[i])
			} else {
				cell = padLeft(cell, widths[i])
			}
			b.WriteString(style(i).Render(" " + cell + " "))
			b.WriteString(bar)
		}
		return b.String() + "\n"
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  " + headerStyle.Render(t.Title) + "\n")
	}
	b.WriteString(rule("╭", "┬", "╮"))
	if len(t.Headers) > 0 {
		b.WriteString(line(t.Headers, func(int) lipgloss.Style { return headerStyle }))
		b.WriteString(rule("├", "┼", "┤"))
	}
	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}
		b.WriteString(line(row, func(i int) lipgloss.Style { return cellStyle(row, i) }))
	}
	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

func (t Table) columnWidths(cols int) []int {
	widths := make([]int, cols)
	if t.Widths != nil {
		copy(widths, t.Widths)
		return widths
	}
	grow := func(cells []string) {
		for i, c := range cells {
			if i < cols {
				widths[i] = max(widths[i], lipgloss.Width(c))
			}
		}
	}
	grow(t.Headers)
	for _, r := range t.Rows {
		if len(r) == 1 && r[0] == "---" {
			continue
		}
		grow(r)
	}
	return widths
}

// RenderProgressBar renders a bracketed bar followed by current/total.
func RenderProgressBar(current, total int, width int) string {
	if total <= 0 {
		return ""
	}
	filled := min(int(float64(current)/float64(total)*float64(width)), width)
	filled = max(filled, 0)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[%s] %s/%s", mutedStyle.Render(bar), FormatNumber(int64(current)), FormatNumber(int64(total)))
}

var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline scales values to block characters relative to the peak.
// Negative values render as the lowest block.
func RenderSparkline(values []float64) string {
	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}
	top := len(sparkBlocks) - 1
	out := make([]rune, len(values))
	for i, v := range values {
		out[i] = sparkBlocks[min(max(int(v/peak*float64(top)), 0), top)]
	}
	return string(out)
}

// RenderHorizontalBar renders "label ████ amount" scaled to maxValue.
func RenderHorizontalBar(label string, value, maxValue float64, maxWidth int) string {
	if maxValue <= 0 {
		return "  " + label
	}
	n := max(int(value/maxValue*float64(maxWidth)), 0)
	return fmt.Sprintf("  %s %s %s", padRight(label, 12), goodStyle.Render(strings.Repeat("█", n)), mutedStyle.Render(FormatAmount(value)))
}

// RenderBand colors a status label by severity.
func RenderBand(label string) string {
	return BandStyle(label).Render(label)
}

// BandStyle picks the style for a status or severity label.
func BandStyle(label string) lipgloss.Style {
	switch {
	case slices.Contains(criticalLabels, label):
		return lipgloss.NewStyle().Foreground(ColorRed).Bold(true)
	case slices.Contains(highLabels, label):
		return lipgloss.NewStyle().Foreground(ColorOrange)
	case slices.Contains(moderateLabels, label):
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case slices.Contains(goodLabels, label):
		return goodStyle
	default:
		return valueStyle
	}
}

// RenderKV renders label/value lines with the labels padded to one width.
func RenderKV(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "  %s  %s\n", mutedStyle.Render(padRight(p[0], width)), valueStyle.Render(p[1]))
	}
	return b.String()
}

// RenderNote renders a dim explanatory line.
func RenderNote(s string) string {
	return "  " + dimStyle.Render(s)
}

// cellStyle highlights cells that hold an elevated severity label.
func cellStyle(row []string, i int) lipgloss.Style {
	if i < len(row) && (slices.Contains(highLabels, row[i]) || slices.Contains(criticalLabels, row[i])) {
		return BandStyle(row[i])
	}
	return valueStyle
}

func padRight(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return s + strings.Repeat(" ", d)
	}
	return s
}

func padLeft(s string, w int) string {
	if d := w - lipgloss.Width(s); d > 0 {
		return strings.Repeat(" ", d) + s
	}
	return s
}
