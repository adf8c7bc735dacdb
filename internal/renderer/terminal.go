package renderer

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// DefaultWidth is the wrap width used when the terminal width is unknown.
const DefaultWidth = 100

// Render styles a Markdown document for the terminal. style is a glamour
// standard style name ("dark", "light", "notty"); empty picks one from the
// terminal background.
func Render(markdown, style string, width int) (string, error) {
	if width <= 0 {
		width = DefaultWidth
	}
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
