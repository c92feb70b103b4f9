package formatter

import (
	"github.com/goccy/go-json"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// Output is the JSON document written for a result
type Output struct {
	Kind         string                `json:"kind"`
	Personalized bool                  `json:"personalized"`
	User         *int64                `json:"user,omitempty"`
	Model        recommender.ModelType `json:"model"`
	History      []catalog.Book        `json:"history,omitempty"`
	Items        []ItemOutput          `json:"items"`
}

// ItemOutput is one ranked book
type ItemOutput struct {
	Rank  int          `json:"rank"`
	Book  catalog.Book `json:"book"`
	Score float64      `json:"score"`
}

func (f *jsonFormatter) Format(result *recommender.Result) ([]byte, error) {
	return json.MarshalIndent(newOutput(result), "", "  ")
}

func newOutput(result *recommender.Result) *Output {
	output := &Output{
		Kind:         "popular",
		Personalized: result.Personalized,
		Model:        result.Model,
		History:      result.History,
		Items:        make([]ItemOutput, 0, len(result.Items)),
	}
	if result.Personalized {
		output.Kind = "recommendations"
	}
	if result.User != recommender.NoHistory {
		user := result.User
		output.User = &user
	}
	for i, item := range result.Items {
		output.Items = append(output.Items, ItemOutput{Rank: i + 1, Book: item.Book, Score: item.Score})
	}
	return output
}
