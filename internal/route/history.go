package route

import (
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultHistoryLimit bounds how many locations are remembered
const DefaultHistoryLimit = 100

// LocationChangedMsg is delivered after every successful navigation.
// Reload marks a re-announcement of a location that did not change.
type LocationChangedMsg struct {
	Location Location
	Reload   bool
}

// History is a browser-style back/forward stack of locations.
// It is owned by the UI goroutine and is not safe for concurrent use.
type History struct {
	entries []Location
	index   int
	limit   int
}

// NewHistory creates a history positioned at start
func NewHistory(start Location, limit int) *History {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &History{entries: []Location{start}, limit: limit}
}

// Current returns the active location
func (h *History) Current() Location {
	return h.entries[h.index]
}

// Len returns the number of remembered locations
func (h *History) Len() int {
	return len(h.entries)
}

// CanBack reports whether Back would move
func (h *History) CanBack() bool {
	return h.index > 0
}

// CanForward reports whether Forward would move
func (h *History) CanForward() bool {
	return h.index < len(h.entries)-1
}

// Push navigates to loc, discarding any forward entries
func (h *History) Push(loc Location) tea.Cmd {
	h.entries = append(h.entries[:h.index+1], loc)
	if over := len(h.entries) - h.limit; over > 0 {
		h.entries = h.entries[over:]
	}
	h.index = len(h.entries) - 1
	return h.changed()
}

// Replace swaps the current entry without notifying anyone
func (h *History) Replace(loc Location) {
	h.entries[h.index] = loc
}

// Back moves one entry back; nil when already at the start
func (h *History) Back() tea.Cmd {
	if !h.CanBack() {
		return nil
	}
	h.index--
	return h.changed()
}

// Forward moves one entry forward; nil when already at the end
func (h *History) Forward() tea.Cmd {
	if !h.CanForward() {
		return nil
	}
	h.index++
	return h.changed()
}

// Notify announces the current location as a fresh arrival, used on startup
func (h *History) Notify() tea.Cmd {
	return h.changed()
}

// Reload re-announces the current location without counting as a visit
func (h *History) Reload() tea.Cmd {
	loc := h.Current()
	return func() tea.Msg {
		return LocationChangedMsg{Location: loc, Reload: true}
	}
}

func (h *History) changed() tea.Cmd {
	loc := h.Current()
	return func() tea.Msg {
		return LocationChangedMsg{Location: loc}
	}
}
