package formatter

import (
	"fmt"

	"github.com/yildizm/bookrec/internal/recommender"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *recommender.Result) ([]byte, error)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv"}

// New returns the formatter for format; color only affects text
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (must be one of: %v)", format, Formats)
	}
}
