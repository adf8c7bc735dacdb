package components

import (
	"strings"

	"github.com/badroneai/finance-flow-sub001/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. status is shown on the
// right, e.g. the data age or a refresh notice.
func RenderStatusBar(width int, status string, warn bool) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	right := base
	if warn {
		right = right.Foreground(t.Orange)
	}

	left := base.Render(" [?]help  [←→]tabs  [u]refresh  [q]uit")
	r := right.Render(status + " ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(r)
	if padding < 0 {
		padding = 0
	}
	return left + base.Render(strings.Repeat(" ", padding)) + r
}
