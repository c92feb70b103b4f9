package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/recommender"
)

// Recommendations shows personalized results. Marking a book as read
// emits HistoryModifiedMsg with that book.
type Recommendations struct {
	list *List
	keys ListKeys
}

// NewRecommendations creates the recommendations view
func NewRecommendations(keys ListKeys, palette Palette) *Recommendations {
	list := NewList(emoji.GetEmoji("recommendations")+" Recommended for you", palette)
	list.ShowScores = true
	return &Recommendations{list: list, keys: keys}
}

// SetItems sets the recommended books
func (r *Recommendations) SetItems(items []recommender.ScoredBook) {
	r.list.SetItems(ScoredItems(items))
}

// SetFocused sets the focus state
func (r *Recommendations) SetFocused(focused bool) {
	r.list.SetFocused(focused)
}

// Update handles a key while focused
func (r *Recommendations) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, r.keys.Up):
		r.list.MoveUp()
	case key.Matches(msg, r.keys.Down):
		r.list.MoveDown()
	case key.Matches(msg, r.keys.Toggle), key.Matches(msg, r.keys.Submit):
		if item := r.list.SelectedItem(); item != nil {
			return emit(HistoryModifiedMsg{Books: []int64{item.ID}})
		}
	}
	return nil
}

// Render renders the recommendations
func (r *Recommendations) Render(width, height int) string {
	r.list.SetSize(width, height)
	return r.list.Render()
}
