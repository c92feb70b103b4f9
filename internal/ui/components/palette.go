package components

import "github.com/charmbracelet/lipgloss"

// Palette is the subset of theme colors components render with
type Palette struct {
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Warning   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Selected  lipgloss.AdaptiveColor
}

// DefaultPalette matches the default theme
var DefaultPalette = Palette{
	Primary:   lipgloss.AdaptiveColor{Light: "#1E40AF", Dark: "#3B82F6"},
	Secondary: lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Accent:    lipgloss.AdaptiveColor{Light: "#7C3AED", Dark: "#A855F7"},
	Success:   lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"},
	Warning:   lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"},
	Error:     lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"},
	Border:    lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"},
	Muted:     lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
	Selected:  lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"},
}

func (p Palette) title() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Primary).Bold(true)
}

func (p Palette) muted() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(p.Muted)
}

// panel draws the rounded box every content block sits in
func (p Palette) panel(focused bool, width int) lipgloss.Style {
	border := p.Border
	if focused {
		border = p.Primary
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)
	if width > 4 {
		style = style.Width(width - 2)
	}
	return style
}
