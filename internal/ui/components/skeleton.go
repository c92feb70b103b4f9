package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// skeletonRows is how many placeholder bars a skeleton shows
const skeletonRows = 3

// Skeleton is the placeholder shown while content loads
type Skeleton struct {
	palette Palette
}

// NewSkeleton creates a skeleton placeholder
func NewSkeleton(palette Palette) *Skeleton {
	return &Skeleton{palette: palette}
}

// Render renders one placeholder; frame is the current spinner frame and
// offset staggers the bar widths between placeholders
func (s *Skeleton) Render(width int, frame string, offset int) string {
	barWidth := max(8, width-8)
	bar := lipgloss.NewStyle().Foreground(s.palette.Border)

	rows := []string{lipgloss.NewStyle().Foreground(s.palette.Primary).Render(frame + " loading")}
	for i := 0; i < skeletonRows; i++ {
		w := barWidth - ((i+offset)%skeletonRows)*barWidth/5
		rows = append(rows, bar.Render(strings.Repeat("░", max(1, w))))
	}
	return s.palette.panel(false, width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
