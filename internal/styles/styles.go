package styles

import "github.com/charmbracelet/lipgloss"

var (
	Pink    = lipgloss.Color("#FF2E97")
	Gray    = lipgloss.Color("#8A8F98")
	DimGray = lipgloss.Color("#3D4250")
	Green   = lipgloss.Color("#39FF14")
	Red     = lipgloss.Color("#FF3131")
	Cyan    = lipgloss.Color("#00F0FF")
	Amber   = lipgloss.Color("#FFB000")
	Yellow  = lipgloss.Color("#F5E642")

	Ink      = lipgloss.Color("#1B1F27")
	Slate    = lipgloss.Color("#5B6270")
	Navy     = lipgloss.Color("#0B4F8A")
	Magenta  = lipgloss.Color("#B0106A")
	Forest   = lipgloss.Color("#1E7B1E")
	Crimson  = lipgloss.Color("#B3001B")
	Ochre    = lipgloss.Color("#A86400")
	Mustard  = lipgloss.Color("#8A7A00")
	LightRim = lipgloss.Color("#C9CED6")
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// Styles is one complete palette. Views hold a Styles value so a theme
// switch only has to swap it.
type Styles struct {
	Name string

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Selected lipgloss.Style
	Dimmed   lipgloss.Style
	Success  lipgloss.Style
	Err      lipgloss.Style
	Help     lipgloss.Style
	Category lipgloss.Style
	Notice   lipgloss.Style
	Box      lipgloss.Style
	Widget   lipgloss.Style
	Chip     lipgloss.Style
	ChipOn   lipgloss.Style

	Critical lipgloss.Style
	High     lipgloss.Style
	Medium   lipgloss.Style
	Low      lipgloss.Style
}

// Dark is the default neon-on-black palette.
func Dark() Styles {
	return Styles{
		Name:     ThemeDark,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Cyan),
		Subtitle: lipgloss.NewStyle().Foreground(Cyan),
		Selected: lipgloss.NewStyle().Foreground(Pink).Bold(true),
		Dimmed:   lipgloss.NewStyle().Foreground(Gray),
		Success:  lipgloss.NewStyle().Foreground(Green),
		Err:      lipgloss.NewStyle().Foreground(Red),
		Help:     lipgloss.NewStyle().Foreground(DimGray).Italic(true),
		Category: lipgloss.NewStyle().Foreground(Cyan).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(Amber).Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan).
			Padding(1, 2),
		Widget: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1),
		Chip:   lipgloss.NewStyle().Foreground(DimGray),
		ChipOn: lipgloss.NewStyle().Foreground(Pink).Bold(true),

		Critical: lipgloss.NewStyle().Foreground(Red).Bold(true),
		High:     lipgloss.NewStyle().Foreground(Amber),
		Medium:   lipgloss.NewStyle().Foreground(Yellow),
		Low:      lipgloss.NewStyle().Foreground(Gray),
	}
}

// Light is the palette for light terminal backgrounds.
func Light() Styles {
	return Styles{
		Name:     ThemeLight,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Navy),
		Subtitle: lipgloss.NewStyle().Foreground(Navy),
		Selected: lipgloss.NewStyle().Foreground(Magenta).Bold(true),
		Dimmed:   lipgloss.NewStyle().Foreground(Slate),
		Success:  lipgloss.NewStyle().Foreground(Forest),
		Err:      lipgloss.NewStyle().Foreground(Crimson),
		Help:     lipgloss.NewStyle().Foreground(Slate).Italic(true),
		Category: lipgloss.NewStyle().Foreground(Navy).Bold(true),
		Notice:   lipgloss.NewStyle().Foreground(Ochre).Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Navy).
			Padding(1, 2),
		Widget: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(LightRim).
			Padding(0, 1),
		Chip:   lipgloss.NewStyle().Foreground(LightRim),
		ChipOn: lipgloss.NewStyle().Foreground(Magenta).Bold(true),

		Critical: lipgloss.NewStyle().Foreground(Crimson).Bold(true),
		High:     lipgloss.NewStyle().Foreground(Ochre),
		Medium:   lipgloss.NewStyle().Foreground(Mustard),
		Low:      lipgloss.NewStyle().Foreground(Ink),
	}
}

// For returns the palette named by theme, falling back to Dark.
func For(theme string) Styles {
	if theme == ThemeLight {
		return Light()
	}
	return Dark()
}

// Severity picks the style for a vulnerability severity label.
func (s Styles) Severity(level string) lipgloss.Style {
	switch level {
	case "CRITICAL":
		return s.Critical
	case "HIGH":
		return s.High
	case "MEDIUM":
		return s.Medium
	default:
		return s.Low
	}
}
