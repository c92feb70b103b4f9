package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/recommender"
)

// ModelSelect picks the recommendation model. Choosing a model other than
// the current one emits ModelChangedMsg.
type ModelSelect struct {
	models  []recommender.ModelType
	cursor  int
	keys    ListKeys
	focused bool
	palette Palette
}

// NewModelSelect creates a model selector over models
func NewModelSelect(models []recommender.ModelType, keys ListKeys, palette Palette) *ModelSelect {
	return &ModelSelect{models: models, keys: keys, palette: palette}
}

// SetModels replaces the offered models
func (m *ModelSelect) SetModels(models []recommender.ModelType) {
	if len(models) == 0 {
		return
	}
	m.models = models
	m.cursor = min(m.cursor, len(models)-1)
}

// Bind moves the cursor to current
func (m *ModelSelect) Bind(current recommender.ModelType) {
	for i, model := range m.models {
		if model == current {
			m.cursor = i
			return
		}
	}
}

// SetFocused sets the focus state
func (m *ModelSelect) SetFocused(focused bool) {
	m.focused = focused
}

// Update handles a key while focused
func (m *ModelSelect) Update(msg tea.KeyMsg, current recommender.ModelType) tea.Cmd {
	if len(m.models) == 0 {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.cursor = (m.cursor - 1 + len(m.models)) % len(m.models)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.cursor = (m.cursor + 1) % len(m.models)
	case key.Matches(msg, m.keys.Submit), key.Matches(msg, m.keys.Toggle):
		if chosen := m.models[m.cursor]; chosen != current {
			return emit(ModelChangedMsg{Model: chosen})
		}
	}
	return nil
}

// View renders the selector with current marked
func (m *ModelSelect) View(current recommender.ModelType) string {
	labelStyle := lipgloss.NewStyle().Foreground(m.palette.Secondary)
	if m.focused {
		labelStyle = lipgloss.NewStyle().Foreground(m.palette.Primary).Bold(true)
	}

	options := make([]string, 0, len(m.models))
	for i, model := range m.models {
		mark := "( )"
		if model == current {
			mark = "(•)"
		}
		style := lipgloss.NewStyle().Foreground(m.palette.Secondary)
		if model == current {
			style = style.Foreground(m.palette.Accent)
		}
		if m.focused && i == m.cursor {
			style = lipgloss.NewStyle().Background(m.palette.Selected).Foreground(m.palette.Primary).Bold(true)
		}
		options = append(options, style.Render(mark+" "+model.Label()))
	}

	return labelStyle.Render(emoji.GetEmoji("model")+" Model:") + " " + strings.Join(options, "  ")
}
