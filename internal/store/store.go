package store

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
)

// DefaultTimeout bounds a single service call
const DefaultTimeout = 10 * time.Second

// Options configures a Store
type Options struct {
	Model   recommender.ModelType
	K       int
	Timeout time.Duration
	Logger  *logger.Logger
}

// Store owns the application state. Dispatch reduces synchronously and
// returns the asynchronous effect, if any, as a tea.Cmd whose result is an
// ActionMsg to be dispatched in turn.
type Store struct {
	state   State
	svc     recommender.Service
	k       int
	timeout time.Duration
	log     *logger.Logger
}

// New creates a store backed by svc
func New(svc recommender.Service, opts Options) *Store {
	if opts.Model == "" {
		opts.Model = recommender.DefaultModel
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	return &Store{
		state:   State{Model: opts.Model},
		svc:     svc,
		k:       opts.K,
		timeout: opts.Timeout,
		log:     opts.Logger.WithComponent("store"),
	}
}

// State returns the current snapshot
func (s *Store) State() State {
	return s.state
}

// Dispatch applies a and schedules its effect
func (s *Store) Dispatch(a Action) tea.Cmd {
	s.state = Reduce(s.state, a)
	s.log.DebugWithFields("dispatch", []logger.Field{
		logger.F("action", Name(a)),
		logger.F("seq", s.state.Seq),
		logger.F("mode", s.state.Mode),
	})
	return s.effect(a)
}

func (s *Store) effect(a Action) tea.Cmd {
	switch a := a.(type) {
	case FetchRecommendationsRequest:
		return s.recommend(recommender.Request{User: a.User, Model: s.state.Model, K: s.k}, false)
	case CreateRecommendationsRequest:
		return s.recommend(recommender.Request{User: recommender.NoHistory, Model: s.state.Model, Books: a.Books, K: s.k}, false)
	case ModifyHistoryRequest:
		return s.recommend(recommender.Request{User: a.User, Model: s.state.Model, Books: a.Books, K: s.k}, true)
	case LoadBooksRequest:
		return s.loadBooks()
	case RecommendationsFailed:
		if a.Seq == s.state.Seq {
			s.log.WarnWithFields("recommendations failed", []logger.Field{logger.Error(a.Err)})
		}
	}
	return nil
}

func (s *Store) recommend(req recommender.Request, refresh bool) tea.Cmd {
	seq := s.state.Seq
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := svc.Recommend(ctx, req)
		if err != nil {
			return ActionMsg{Action: RecommendationsFailed{Seq: seq, Err: err}}
		}
		return ActionMsg{Action: RecommendationsLoaded{Seq: seq, Result: res, Refresh: refresh}}
	}
}

func (s *Store) loadBooks() tea.Cmd {
	svc, timeout := s.svc, s.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		books, err := svc.Books(ctx)
		if err != nil {
			return ActionMsg{Action: BooksFailed{Err: err}}
		}
		users, err := svc.Users(ctx)
		if err != nil {
			return ActionMsg{Action: BooksFailed{Err: err}}
		}
		models, err := svc.Models(ctx)
		if err != nil {
			return ActionMsg{Action: BooksFailed{Err: err}}
		}
		return ActionMsg{Action: BooksLoaded{Books: books, Users: users, Models: models}}
	}
}
