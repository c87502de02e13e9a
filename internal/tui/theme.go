package tui

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

type palette struct {
	Title  lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Border lipgloss.Color
	Error  lipgloss.Color
	Accent lipgloss.Color
}

var palettes = map[string]palette{
	"default": {
		Title:  lipgloss.Color("#00D0A1"),
		Text:   lipgloss.Color("#FFFFFF"),
		Muted:  lipgloss.Color("#808080"),
		Border: lipgloss.Color("#1E3A5F"),
		Error:  lipgloss.Color("#FF6666"),
		Accent: lipgloss.Color("#49E209"),
	},
	"dracula": {
		Title:  lipgloss.Color("#ff79c6"),
		Text:   lipgloss.Color("#f8f8f2"),
		Muted:  lipgloss.Color("#6272a4"),
		Border: lipgloss.Color("#44475a"),
		Error:  lipgloss.Color("#ff5555"),
		Accent: lipgloss.Color("#50fa7b"),
	},
	"gruvbox": {
		Title:  lipgloss.Color("#fabd2f"),
		Text:   lipgloss.Color("#ebdbb2"),
		Muted:  lipgloss.Color("#a89984"),
		Border: lipgloss.Color("#665c54"),
		Error:  lipgloss.Color("#fb4934"),
		Accent: lipgloss.Color("#b8bb26"),
	},
}

// Theme holds the rendered styles for one skin.
type Theme struct {
	Name    string
	Title   lipgloss.Style
	Card    lipgloss.Style
	Message lipgloss.Style
	Error   lipgloss.Style
	Loading lipgloss.Style
	Config  lipgloss.Style
	Spinner lipgloss.Style
}

// ThemeFor returns the theme for skin, falling back to "default".
func ThemeFor(skin string) Theme {
	name := skin
	p, ok := palettes[name]
	if !ok {
		name = "default"
		p = palettes[name]
	}
	return Theme{
		Name:    name,
		Title:   lipgloss.NewStyle().Foreground(p.Title).Bold(true).MarginBottom(1),
		Card:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 2),
		Message: lipgloss.NewStyle().Foreground(p.Text),
		Error:   lipgloss.NewStyle().Foreground(p.Error),
		Loading: lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
		Config:  lipgloss.NewStyle().Foreground(p.Muted).MarginTop(1),
		Spinner: lipgloss.NewStyle().Foreground(p.Accent),
	}
}

// LoadTheme is ThemeFor that warns on logger when skin is unknown.
func LoadTheme(skin string, logger *zap.Logger) Theme {
	theme := ThemeFor(skin)
	if theme.Name != skin && logger != nil {
		logger.Warn("unknown skin, using default",
			zap.String("skin", skin),
			zap.Strings("available", SkinNames()),
		)
	}
	return theme
}

// SkinNames lists the available skins in sorted order.
func SkinNames() []string {
	names := make([]string, 0, len(palettes))
	for k := range palettes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
