package components

import (
	"fmt"

	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForRatio returns green/yellow/orange/red for a spend-to-target ratio
// using the budget health thresholds.
func ColorForRatio(ratio float64) lipgloss.Color {
	t := theme.Active
	switch {
	case ratio > 1.0:
		return t.Red
	case ratio > 0.85:
		return t.Orange
	case ratio > 0.7:
		return t.Yellow
	default:
		return t.Green
	}
}

// RatioBar renders a labeled bar for ratio (clamped to [0,1] for drawing)
// followed by the unclamped percentage.
func RatioBar(label string, ratio float64, labelW, barWidth int) string {
	t := theme.Active
	color := ColorForRatio(ratio)

	fill := ratio
	if fill < 0 {
		fill = 0
	}
	if fill > 1 {
		fill = 1
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space + bar.ViewAs(fill) + space +
		pctStyle.Render(fmt.Sprintf("%4.0f%%", ratio*100))
}
