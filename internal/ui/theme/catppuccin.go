package theme

import (
	"github.com/charmbracelet/lipgloss"

	"timebox/internal/platform/toast"
)

// Palette is one Catppuccin flavour.
type Palette struct {
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
}

var Mocha = Palette{
	Base:     lipgloss.Color("#1e1e2e"),
	Mantle:   lipgloss.Color("#181825"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),
	Text:     lipgloss.Color("#cdd6f4"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Lavender: lipgloss.Color("#b4befe"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Green:    lipgloss.Color("#a6e3a1"),
	Peach:    lipgloss.Color("#fab387"),
	Red:      lipgloss.Color("#f38ba8"),
}

var Latte = Palette{
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Text:     lipgloss.Color("#4c4f69"),
	Subtext0: lipgloss.Color("#6c6f85"),
	Lavender: lipgloss.Color("#7287fd"),
	Sapphire: lipgloss.Color("#209fb5"),
	Green:    lipgloss.Color("#40a02b"),
	Peach:    lipgloss.Color("#fe640b"),
	Red:      lipgloss.Color("#d20f39"),
}

// Styles are the rendered styles of one palette.
type Styles struct {
	Palette Palette

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Selected   lipgloss.Style
	Disabled   lipgloss.Style
}

func New(p Palette) Styles {
	pane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Surface1).
		Foreground(p.Text).
		Padding(0, 1)
	return Styles{
		Palette:    p,
		App:        lipgloss.NewStyle().Foreground(p.Text).Padding(1, 2),
		Pane:       pane,
		PaneActive: pane.BorderForeground(p.Lavender),
		Title:      lipgloss.NewStyle().Foreground(p.Sapphire).Bold(true),
		Muted:      lipgloss.NewStyle().Foreground(p.Subtext0),
		Hot:        lipgloss.NewStyle().Foreground(p.Peach).Bold(true),
		Selected:   lipgloss.NewStyle().Foreground(p.Base).Background(p.Lavender).Bold(true),
		Disabled:   lipgloss.NewStyle().Foreground(p.Surface1).Strikethrough(true),
	}
}

// For maps a theme preference to styles. "system" (or anything unknown)
// follows the terminal background.
func For(name string) Styles {
	switch name {
	case "light":
		return New(Latte)
	case "dark":
		return New(Mocha)
	}
	if lipgloss.HasDarkBackground() {
		return New(Mocha)
	}
	return New(Latte)
}

// Toast colours a toast line by kind.
func (s Styles) Toast(kind toast.Kind) lipgloss.Style {
	switch kind {
	case toast.Success:
		return lipgloss.NewStyle().Foreground(s.Palette.Green)
	case toast.Warning:
		return lipgloss.NewStyle().Foreground(s.Palette.Peach)
	case toast.Error:
		return lipgloss.NewStyle().Foreground(s.Palette.Red).Bold(true)
	default:
		return s.Muted
	}
}
