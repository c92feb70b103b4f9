package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/bookrec/internal/recommender"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *recommender.Result) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Book %s\n\n", kindLabel(result))
	fmt.Fprintf(&b, "- **For:** %s\n", userLabel(result))
	fmt.Fprintf(&b, "- **Model:** %s\n\n", result.Model.Label())

	if len(result.History) > 0 {
		b.WriteString("## Based on\n\n")
		for _, book := range result.History {
			fmt.Fprintf(&b, "- %s\n", escapeMarkdown(bookLine(book)))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", kindLabel(result))
	if len(result.Items) == 0 {
		b.WriteString("_Nothing to recommend._\n")
		return []byte(b.String()), nil
	}

	b.WriteString("| # | Title | Author | Year | Score |\n")
	b.WriteString("|---|-------|--------|------|-------|\n")
	for i, item := range result.Items {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
			i+1,
			escapeMarkdown(item.Book.Title),
			escapeMarkdown(item.Book.Author),
			formatYear(item.Book.Year),
			formatScore(item.Score),
		)
	}

	return []byte(b.String()), nil
}

// escapeMarkdown keeps table cells intact
func escapeMarkdown(s string) string {
	return strings.NewReplacer("|", "\\|", "\n", " ").Replace(s)
}
