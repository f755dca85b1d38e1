package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the status line and menus; the field keeps its own colors.
type Theme struct {
	Name   string
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Warn   lipgloss.Color
}

var Themes = []Theme{
	{
		Name:   "violet",
		Accent: lipgloss.Color("#b28cff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Warn:   lipgloss.Color("#ffaa00"),
	},
	{
		Name:   "phosphor",
		Accent: lipgloss.Color("#00ff41"),
		Text:   lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Warn:   lipgloss.Color("#ffff00"),
	},
	{
		Name:   "minimal",
		Accent: lipgloss.Color("#0088ff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#888888"),
		Warn:   lipgloss.Color("#ffaa00"),
	},
}

// GetTheme returns a theme by name, falling back to the first.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
