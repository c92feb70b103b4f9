package store

import (
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

// Action is a state transition request. Every action is a plain value.
type Action interface {
	actionName() string
}

// FetchRecommendationsRequest asks for recommendations for a user,
// or for the popular list when User is recommender.NoHistory.
type FetchRecommendationsRequest struct {
	User int64
}

// CreateRecommendationsRequest asks for recommendations seeded only by the given books
type CreateRecommendationsRequest struct {
	Books []int64
}

// ModifyHistoryRequest re-predicts for a user whose history was edited in the UI.
// The original target is kept; only the recommendations are replaced.
type ModifyHistoryRequest struct {
	User  int64
	Books []int64
}

// SetModelType selects the recommendation model used by later requests
type SetModelType struct {
	Model recommender.ModelType
}

// LoadBooksRequest asks for the catalog, user list and model list
type LoadBooksRequest struct{}

// RecommendationsLoaded carries a successful response
type RecommendationsLoaded struct {
	Seq     uint64
	Result  *recommender.Result
	Refresh bool
}

// RecommendationsFailed carries a failed response
type RecommendationsFailed struct {
	Seq uint64
	Err error
}

// BooksLoaded carries the catalog, the known users and available models
type BooksLoaded struct {
	Books  []catalog.Book
	Users  []int64
	Models []recommender.ModelType
}

// BooksFailed reports that the catalog could not be fetched
type BooksFailed struct {
	Err error
}

// ClearError dismisses the current error
type ClearError struct{}

func (FetchRecommendationsRequest) actionName() string  { return "fetchRecommendationsRequest" }
func (CreateRecommendationsRequest) actionName() string { return "createRecommendationsRequest" }
func (ModifyHistoryRequest) actionName() string         { return "modifyHistoryRequest" }
func (SetModelType) actionName() string                 { return "setModelType" }
func (LoadBooksRequest) actionName() string             { return "loadBooksRequest" }
func (RecommendationsLoaded) actionName() string        { return "recommendationsLoaded" }
func (RecommendationsFailed) actionName() string        { return "recommendationsFailed" }
func (BooksLoaded) actionName() string                  { return "booksLoaded" }
func (BooksFailed) actionName() string                  { return "booksFailed" }
func (ClearError) actionName() string                   { return "clearError" }

// Name returns the action's name for logging
func Name(a Action) string {
	if a == nil {
		return "<nil>"
	}
	return a.actionName()
}

// ActionMsg wraps an action produced by an asynchronous effect so it can
// travel through the bubbletea message loop back into the store.
type ActionMsg struct {
	Action Action
}
