package components

import (
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/recommender"
)

// Popular shows the non-personalized list. It is read-only.
type Popular struct {
	list *List
}

// NewPopular creates the popular-items view
func NewPopular(palette Palette) *Popular {
	list := NewList(emoji.GetEmoji("popular")+" Popular right now", palette)
	list.ShowScores = true
	return &Popular{list: list}
}

// Render renders items
func (p *Popular) Render(items []recommender.ScoredBook, width int) string {
	p.list.SetItems(ScoredItems(items))
	p.list.SetSize(width, 0)
	return p.list.Render()
}
