package recommender

import (
	"context"

	"github.com/yildizm/bookrec/internal/catalog"
)

// NoHistory is the user id sent when no real user is selected.
// It asks for the non-personalized (popular) result.
const NoHistory int64 = -1

// DefaultK is the number of items returned when a request does not say
const DefaultK = 10

// ModelType names a recommendation model
type ModelType string

const (
	ModelItemSimilarity ModelType = "item_similarity"
	ModelPopularity     ModelType = "popularity"
	ModelRandom         ModelType = "random"
	ModelContent        ModelType = "content"
)

// DefaultModel is used when none is configured
const DefaultModel = ModelItemSimilarity

// String returns the wire name of the model
func (m ModelType) String() string {
	return string(m)
}

// Label returns a human readable model name
func (m ModelType) Label() string {
	switch m {
	case ModelItemSimilarity:
		return "Item similarity"
	case ModelPopularity:
		return "Popularity"
	case ModelRandom:
		return "Random"
	case ModelContent:
		return "Content"
	default:
		return string(m)
	}
}

// ScoredBook is a recommended book with its model score in [0,1]
type ScoredBook struct {
	Book  catalog.Book `json:"book"`
	Score float64      `json:"score"`
}

// Request asks for recommendations.
// History is the user's interactions plus Books; User may be NoHistory.
type Request struct {
	User  int64     `json:"user"`
	Model ModelType `json:"model"`
	Books []int64   `json:"books,omitempty"`
	K     int       `json:"k,omitempty"`
}

// Result is what a recommendation request produces
type Result struct {
	// Personalized is false for the popular (NoHistory) answer
	Personalized bool           `json:"personalized"`
	User         int64          `json:"user"`
	Model        ModelType      `json:"model"`
	History      []catalog.Book `json:"history,omitempty"`
	Items        []ScoredBook   `json:"items"`
}

// Service is anything that can answer recommendation queries: the local
// engine or a remote bookrec server.
type Service interface {
	Recommend(ctx context.Context, req Request) (*Result, error)
	Popular(ctx context.Context, k int) ([]ScoredBook, error)
	Books(ctx context.Context) ([]catalog.Book, error)
	Users(ctx context.Context) ([]int64, error)
	Models(ctx context.Context) ([]ModelType, error)
}
