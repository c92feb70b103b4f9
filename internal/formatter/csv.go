package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/bookrec/internal/recommender"
)

// csvFormatter formats ranked books as CSV
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(result *recommender.Result) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{"Rank", "Book ID", "Title", "Author", "Year", "Score", "Model"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, item := range result.Items {
		record := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(item.Book.ID, 10),
			item.Book.Title,
			item.Book.Author,
			formatYear(item.Book.Year),
			formatScore(item.Score),
			result.Model.String(),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return b.Bytes(), nil
}
