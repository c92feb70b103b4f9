package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(result *recommender.Result) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("nothing to format")
	}

	var b strings.Builder

	f.writeHeader(&b, kindLabel(result))
	f.writeSummary(&b, result)

	if len(result.History) > 0 {
		f.writeHistory(&b, result)
	}

	f.writeItems(&b, result)

	return []byte(b.String()), nil
}

// writeHeader writes a header with box drawing
func (f *terminalFormatter) writeHeader(b *strings.Builder, title string) {
	header := "Book " + title
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeSummary writes request details as a tree
func (f *terminalFormatter) writeSummary(b *strings.Builder, result *recommender.Result) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Summary\n")

	items := []termfmt.TreeItem{
		{Label: "For", Value: userLabel(result)},
		{Label: "Model", Value: result.Model.Label()},
		{Label: "History", Value: fmt.Sprintf("%d book(s)", len(result.History))},
		{Label: "Results", Value: fmt.Sprintf("%d", len(result.Items)), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeHistory writes the books the result was computed from
func (f *terminalFormatter) writeHistory(b *strings.Builder, result *recommender.Result) {
	b.WriteString("Based on\n")
	for i, book := range result.History {
		branch := "├─"
		if i == len(result.History)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %s\n", branch, bookLine(book))
	}
	b.WriteString("\n")
}

// writeItems writes the ranked books with score bars
func (f *terminalFormatter) writeItems(b *strings.Builder, result *recommender.Result) {
	symbol := termfmt.GetEmoji("recommendations", f.opts)
	b.WriteString(symbol + " " + kindLabel(result) + "\n")

	if len(result.Items) == 0 {
		b.WriteString("• nothing to recommend\n")
		return
	}

	for i, item := range result.Items {
		branch := "├─"
		if i == len(result.Items)-1 {
			branch = "└─"
		}
		fmt.Fprintf(b, "%s %2d. %s  %s %.0f%%\n", branch, i+1, bookLine(item.Book),
			createConfidenceBar(item.Score, f.opts), clampScore(item.Score)*100)
	}
}
