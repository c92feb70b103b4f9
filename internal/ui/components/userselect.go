package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/emoji"
	"github.com/yildizm/bookrec/internal/route"
)

// maxListedUsers caps the known-user hint line
const maxListedUsers = 12

// UserSelect edits the selected user. It never navigates itself; it emits
// UserSelectedMsg and the container decides what happens.
type UserSelect struct {
	input   textinput.Model
	users   []int64
	keys    ListKeys
	focused bool
	palette Palette
}

// NewUserSelect creates a user selector
func NewUserSelect(keys ListKeys, palette Palette) *UserSelect {
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "user id"
	input.CharLimit = 19
	input.Width = 12
	return &UserSelect{input: input, keys: keys, palette: palette}
}

// Bind shows sel in the input
func (u *UserSelect) Bind(sel route.Selection) {
	u.input.SetValue(sel.String())
	u.input.CursorEnd()
}

// Value returns the raw input text
func (u *UserSelect) Value() string {
	return u.input.Value()
}

// SetUsers sets the known users offered by up/down
func (u *UserSelect) SetUsers(users []int64) {
	u.users = users
}

// Focus gives the input the cursor
func (u *UserSelect) Focus() tea.Cmd {
	u.focused = true
	return u.input.Focus()
}

// Blur removes the cursor
func (u *UserSelect) Blur() {
	u.focused = false
	u.input.Blur()
}

// Focused reports whether the selector has focus
func (u *UserSelect) Focused() bool {
	return u.focused
}

// Update handles a key while focused
func (u *UserSelect) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, u.keys.Submit):
		return emit(UserSelectedMsg{Selection: route.ParseSelection(u.input.Value())})
	case key.Matches(msg, u.keys.Clear):
		u.input.SetValue("")
		return emit(UserSelectedMsg{Selection: route.NoUser()})
	case msg.Type == tea.KeyUp:
		u.cycle(-1)
		return nil
	case msg.Type == tea.KeyDown:
		u.cycle(1)
		return nil
	}

	var cmd tea.Cmd
	u.input, cmd = u.input.Update(msg)
	return cmd
}

// cycle steps through the known users relative to the typed one
func (u *UserSelect) cycle(step int) {
	if len(u.users) == 0 {
		return
	}
	current := route.ParseSelection(u.input.Value())
	next := 0
	if id, ok := current.ID(); ok {
		for i, known := range u.users {
			if known == id {
				next = (i + step + len(u.users)) % len(u.users)
				break
			}
		}
	} else if step < 0 {
		next = len(u.users) - 1
	}
	u.input.SetValue(strconv.FormatInt(u.users[next], 10))
	u.input.CursorEnd()
}

// View renders the selector
func (u *UserSelect) View() string {
	label := lipgloss.NewStyle().Foreground(u.palette.Secondary).Render(emoji.GetEmoji("user") + " User:")
	if u.focused {
		label = lipgloss.NewStyle().Foreground(u.palette.Primary).Bold(true).Render(emoji.GetEmoji("user") + " User:")
	}

	hint := ""
	if len(u.users) > 0 {
		ids := make([]string, 0, min(len(u.users), maxListedUsers))
		for i, id := range u.users {
			if i == maxListedUsers {
				ids = append(ids, "…")
				break
			}
			ids = append(ids, strconv.FormatInt(id, 10))
		}
		hint = u.palette.muted().Render("known: " + strings.Join(ids, " "))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", u.input.View(), "  ", hint)
}
