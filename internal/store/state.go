package store

import (
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

// ContentMode selects which top-level view group is shown
type ContentMode int

const (
	// ModeNone renders nothing; it is the state before the first response
	ModeNone ContentMode = iota
	ModePopular
	ModeRecommendations
)

func (m ContentMode) String() string {
	switch m {
	case ModePopular:
		return "popular"
	case ModeRecommendations:
		return "recommendations"
	default:
		return "none"
	}
}

// State is an immutable snapshot; Reduce always returns a new value
type State struct {
	Mode       ContentMode
	Loading    bool
	Refreshing bool

	Model  recommender.ModelType
	Models []recommender.ModelType

	// User the current recommendations were computed for
	User            int64
	Popular         []recommender.ScoredBook
	Recommendations []recommender.ScoredBook
	Target          []catalog.Book
	Books           []catalog.Book
	Users           []int64

	Err error

	// Seq identifies the latest request; older responses are dropped
	Seq uint64
}

// SelectContentMode returns the content mode
func SelectContentMode(s State) ContentMode {
	return s.Mode
}

// SelectIsLoadingContent reports whether content placeholders should show
func SelectIsLoadingContent(s State) bool {
	return s.Loading
}

// SelectCurrentModel returns the selected model
func SelectCurrentModel(s State) recommender.ModelType {
	return s.Model
}

// Reduce applies a to s. It has no side effects.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case FetchRecommendationsRequest, CreateRecommendationsRequest:
		// content of the previous request must not outlive it, even on failure
		s.Seq++
		s.Loading = true
		s.Refreshing = false
		s.Err = nil
		s.Mode = ModeNone
		s.Popular = nil
		s.Recommendations = nil
		s.Target = nil

	case ModifyHistoryRequest:
		s.Seq++
		s.Loading = false
		s.Refreshing = true
		s.Err = nil

	case SetModelType:
		s.Model = a.Model

	case RecommendationsLoaded:
		if a.Seq != s.Seq || a.Result == nil {
			return s
		}
		s.Loading = false
		s.Refreshing = false
		s.Err = nil
		s.User = a.Result.User
		if !a.Result.Personalized {
			s.Mode = ModePopular
			s.Popular = a.Result.Items
			s.Recommendations = nil
			s.Target = nil
			return s
		}
		s.Mode = ModeRecommendations
		s.Recommendations = a.Result.Items
		if !a.Refresh {
			s.Target = a.Result.History
		}

	case RecommendationsFailed:
		if a.Seq != s.Seq {
			return s
		}
		s.Loading = false
		s.Refreshing = false
		s.Err = a.Err

	case BooksLoaded:
		s.Books = a.Books
		s.Users = a.Users
		if len(a.Models) > 0 {
			s.Models = a.Models
		}

	case BooksFailed:
		s.Err = a.Err

	case ClearError:
		s.Err = nil
	}
	return s
}
