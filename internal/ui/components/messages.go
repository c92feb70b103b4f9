package components

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
)

// UserSelectedMsg is emitted when the user selector picks a user or clears it
type UserSelectedMsg struct {
	Selection route.Selection
}

// ModelChangedMsg is emitted when a different model is chosen
type ModelChangedMsg struct {
	Model recommender.ModelType
}

// HistoryModifiedMsg is emitted when books are added to the displayed history.
// Books lists only the newly added ids.
type HistoryModifiedMsg struct {
	Books []int64
}

// CreateRequestedMsg asks for recommendations seeded by the chosen books
type CreateRequestedMsg struct {
	Books []int64
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return msg
	}
}
