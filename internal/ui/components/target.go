package components

import (
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/route"
)

// Target shows the history the recommendations were computed from
type Target struct {
	palette Palette
}

// NewTarget creates the target view
func NewTarget(palette Palette) *Target {
	return &Target{palette: palette}
}

// Render renders books as the history of user
func (t *Target) Render(books []catalog.Book, user route.Selection, width int) string {
	title := emoji.GetEmoji("target") + " Based on your picks"
	if user.IsSet() {
		title = emoji.GetEmoji("target") + " Read by user " + user.String()
	}
	list := NewList(title, t.palette)
	list.ShowNumbers = false
	list.SetItems(BookItems(books))
	list.SetSize(width, 0)
	return list.Render()
}
