package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/emoji"
)

// ModifiedHistory is the notice shown instead of the target once the
// displayed history no longer matches the original request
type ModifiedHistory struct {
	palette Palette
}

// NewModifiedHistory creates the modified-history notice
func NewModifiedHistory(palette Palette) *ModifiedHistory {
	return &ModifiedHistory{palette: palette}
}

// Render renders the notice; added are the books marked read so far
func (m *ModifiedHistory) Render(added []catalog.Book, width int) string {
	title := lipgloss.NewStyle().Foreground(m.palette.Warning).Bold(true).
		Render(emoji.GetEmoji("modified") + " History modified")

	body := "Recommendations now include books you marked as read."
	if len(added) > 0 {
		titles := make([]string, 0, len(added))
		for _, b := range added {
			titles = append(titles, b.Title)
		}
		body = fmt.Sprintf("Recommendations now include %d book(s) you marked as read: %s.",
			len(added), strings.Join(titles, ", "))
	}
	hint := m.palette.muted().Render("Press r to return to the original history.")

	return m.palette.panel(false, width).Render(lipgloss.JoinVertical(lipgloss.Left,
		title, lipgloss.NewStyle().Foreground(m.palette.Secondary).Render(body), hint))
}
