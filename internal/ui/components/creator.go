package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/emoji"
)

// Creator lets someone without a history pick books they liked and ask for
// recommendations seeded by them
type Creator struct {
	list *List
	keys ListKeys
}

// NewCreator creates the recommendations-creator view
func NewCreator(keys ListKeys, palette Palette) *Creator {
	list := NewList(emoji.GetEmoji("creator")+" Pick books you liked, then press enter", palette)
	list.Checkable = true
	list.ShowNumbers = false
	return &Creator{list: list, keys: keys}
}

// SetBooks sets the books to choose from
func (c *Creator) SetBooks(books []catalog.Book) {
	c.list.SetItems(BookItems(books))
}

// SetFocused sets the focus state
func (c *Creator) SetFocused(focused bool) {
	c.list.SetFocused(focused)
}

// Selected returns the chosen book ids
func (c *Creator) Selected() []int64 {
	return c.list.Marked()
}

// Update handles a key while focused
func (c *Creator) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, c.keys.Up):
		c.list.MoveUp()
	case key.Matches(msg, c.keys.Down):
		c.list.MoveDown()
	case key.Matches(msg, c.keys.Toggle):
		c.list.Toggle()
	case key.Matches(msg, c.keys.Clear):
		c.list.ClearMarks()
	case key.Matches(msg, c.keys.Submit):
		if books := c.list.Marked(); len(books) > 0 {
			c.list.ClearMarks()
			return emit(CreateRequestedMsg{Books: books})
		}
	}
	return nil
}

// Render renders the creator
func (c *Creator) Render(width, height int) string {
	c.list.SetSize(width, height)
	return c.list.Render()
}
