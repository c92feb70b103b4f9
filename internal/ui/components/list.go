package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

// ListItem represents a book row in a list
type ListItem struct {
	ID          int64
	Title       string
	Description string
	Score       float64
	Marked      bool
}

// List represents a navigable list of books
type List struct {
	Title       string
	Items       []ListItem
	Selected    int
	Focused     bool
	Width       int
	Height      int
	ShowNumbers bool
	ShowScores  bool
	Checkable   bool
	palette     Palette
}

// NewList creates a new list component
func NewList(title string, palette Palette) *List {
	return &List{
		Title:       title,
		ShowNumbers: true,
		palette:     palette,
	}
}

// SetItems replaces the items; marks and the cursor survive for ids still present
func (l *List) SetItems(items []ListItem) {
	marked := make(map[int64]bool, len(l.Items))
	for _, item := range l.Items {
		if item.Marked {
			marked[item.ID] = true
		}
	}
	var selectedID int64
	if item := l.SelectedItem(); item != nil {
		selectedID = item.ID
	}

	l.Items = items
	l.Selected = 0
	for i := range l.Items {
		if marked[l.Items[i].ID] {
			l.Items[i].Marked = true
		}
		if l.Items[i].ID == selectedID {
			l.Selected = i
		}
	}
}

// SetFocused sets the focus state of the list
func (l *List) SetFocused(focused bool) {
	l.Focused = focused
}

// SetSize sets the render bounds
func (l *List) SetSize(width, height int) {
	l.Width = width
	l.Height = height
}

// SelectedItem returns the item under the cursor
func (l *List) SelectedItem() *ListItem {
	if l.Selected < 0 || l.Selected >= len(l.Items) {
		return nil
	}
	return &l.Items[l.Selected]
}

// MoveUp moves selection up
func (l *List) MoveUp() {
	if l.Selected > 0 {
		l.Selected--
	}
}

// MoveDown moves selection down
func (l *List) MoveDown() {
	if l.Selected < len(l.Items)-1 {
		l.Selected++
	}
}

// Toggle flips the mark on the selected item
func (l *List) Toggle() {
	if item := l.SelectedItem(); item != nil {
		item.Marked = !item.Marked
	}
}

// Marked returns the ids of marked items in ascending order
func (l *List) Marked() []int64 {
	var ids []int64
	for _, item := range l.Items {
		if item.Marked {
			ids = append(ids, item.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ClearMarks unmarks every item
func (l *List) ClearMarks() {
	for i := range l.Items {
		l.Items[i].Marked = false
	}
}

// Render renders the list
func (l *List) Render() string {
	content := []string{l.palette.title().Render(l.Title)}

	if len(l.Items) == 0 {
		content = append(content, l.palette.muted().Render("  nothing to show"))
		return l.palette.panel(l.Focused, l.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
	}

	maxVisible := len(l.Items)
	if l.Height > 0 {
		// Account for title, border and scroll line
		maxVisible = max(1, l.Height-4)
	}

	startIndex := 0
	if l.Selected >= maxVisible {
		startIndex = l.Selected - maxVisible + 1
	}
	endIndex := min(startIndex+maxVisible, len(l.Items))

	for i := startIndex; i < endIndex; i++ {
		content = append(content, l.renderItem(&l.Items[i], i+1, l.Focused && i == l.Selected))
	}

	if len(l.Items) > maxVisible {
		scrollInfo := fmt.Sprintf("(%d-%d of %d)", startIndex+1, endIndex, len(l.Items))
		content = append(content, l.palette.muted().Render(scrollInfo))
	}

	return l.palette.panel(l.Focused, l.Width).Render(lipgloss.JoinVertical(lipgloss.Left, content...))
}

// renderItem renders a single list item
func (l *List) renderItem(item *ListItem, number int, selected bool) string {
	var parts []string

	if selected {
		parts = append(parts, "▶")
	} else {
		parts = append(parts, " ")
	}
	if l.Checkable {
		if item.Marked {
			parts = append(parts, "[x]")
		} else {
			parts = append(parts, "[ ]")
		}
	}
	if l.ShowNumbers {
		parts = append(parts, fmt.Sprintf("%2d.", number))
	}

	title := item.Title
	if item.Description != "" {
		title += " - " + item.Description
	}
	parts = append(parts, title)

	if l.ShowScores {
		parts = append(parts, fmt.Sprintf("(%.0f%%)", item.Score*100))
	}

	line := strings.Join(parts, " ")

	style := lipgloss.NewStyle().Foreground(l.palette.Secondary)
	switch {
	case selected:
		style = lipgloss.NewStyle().Background(l.palette.Selected).Foreground(l.palette.Primary).Bold(true)
	case item.Marked:
		style = style.Foreground(l.palette.Success)
	}

	return style.Render(line)
}

// BookItems builds list items for plain books
func BookItems(books []catalog.Book) []ListItem {
	items := make([]ListItem, 0, len(books))
	for _, b := range books {
		items = append(items, ListItem{
			ID:          b.ID,
			Title:       b.Title,
			Description: describe(b),
		})
	}
	return items
}

// ScoredItems builds list items for scored books
func ScoredItems(scored []recommender.ScoredBook) []ListItem {
	items := make([]ListItem, 0, len(scored))
	for _, s := range scored {
		items = append(items, ListItem{
			ID:          s.Book.ID,
			Title:       s.Book.Title,
			Description: describe(s.Book),
			Score:       s.Score,
		})
	}
	return items
}

func describe(b catalog.Book) string {
	switch {
	case b.Author != "" && b.Year != 0:
		return fmt.Sprintf("%s (%d)", b.Author, b.Year)
	case b.Author != "":
		return b.Author
	case b.Year != 0:
		return fmt.Sprintf("%d", b.Year)
	default:
		return ""
	}
}
