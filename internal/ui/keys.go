package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/yildizm/bookrec/internal/ui/components"
)

// KeyMap holds the container's global bindings plus the list bindings the
// focused child uses, so help can show both
type KeyMap struct {
	NextFocus key.Binding
	PrevFocus key.Binding
	Back      key.Binding
	Forward   key.Binding
	Reload    key.Binding
	Help      key.Binding
	Quit      key.Binding

	List components.ListKeys
}

// DefaultKeyMap returns the default bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		PrevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous pane"),
		),
		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "forward"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		List: components.DefaultListKeys(),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextFocus, k.Back, k.Forward, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextFocus, k.PrevFocus, k.Back, k.Forward},
		{k.List.Up, k.List.Down, k.List.Left, k.List.Right},
		{k.List.Toggle, k.List.Submit, k.List.Clear},
		{k.Reload, k.Help, k.Quit},
	}
}
