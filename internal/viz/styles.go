package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (t Theme) label() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Muted) }
func (t Theme) value() lipgloss.Style { return lipgloss.NewStyle().Foreground(t.Text) }

func (t Theme) title() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) key() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}

func (t Theme) warn() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Warn)
}

// pair renders "label value" for the status line.
func (t Theme) pair(label, value string) string {
	return t.label().Render(label) + " " + t.value().Render(value)
}

// hints renders alternating key and description pairs.
func (t Theme) hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(t.key().Render(pairs[i]))
		b.WriteString(t.label().Render(" " + pairs[i+1]))
	}
	return b.String()
}
