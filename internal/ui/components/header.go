package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
)

// HeaderProps is everything the page header shows
type HeaderProps struct {
	Width      int
	Location   route.Location
	User       route.Selection
	Model      recommender.ModelType
	CanBack    bool
	CanForward bool
	Refreshing bool
	Spinner    string
	Err        error
}

// Header renders the page title, location and status line
type Header struct {
	title   string
	palette Palette
}

// NewHeader creates a page header
func NewHeader(title string, palette Palette) *Header {
	return &Header{title: title, palette: palette}
}

// Render renders the header
func (h *Header) Render(p HeaderProps) string {
	title := h.palette.title().Render(emoji.GetEmoji("books") + " " + h.title)

	nav := make([]string, 0, 2)
	if p.CanBack {
		nav = append(nav, emoji.GetEmoji("back")+" [")
	}
	if p.CanForward {
		nav = append(nav, "] "+emoji.GetEmoji("forward"))
	}
	location := h.palette.muted().Render(strings.TrimSpace(strings.Join(nav, "  ") + "  " + p.Location.String()))

	who := "everyone"
	if p.User.IsSet() {
		who = "user " + p.User.String()
	}
	status := emoji.GetEmoji("user") + " " + who + "  " + emoji.GetEmoji("model") + " " + p.Model.Label()
	if p.Refreshing {
		status += "  " + p.Spinner + " refreshing"
	}

	lines := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", location),
		lipgloss.NewStyle().Foreground(h.palette.Secondary).Render(status),
	}
	if p.Err != nil {
		errStyle := lipgloss.NewStyle().Foreground(h.palette.Error).Bold(true)
		lines = append(lines, errStyle.Render(emoji.GetEmoji("error")+" "+p.Err.Error()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
