package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
)

func testEngine(t *testing.T) *recommender.Engine {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Book{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}, {ID: 3, Title: "Three"}},
		[]catalog.Interaction{{UserID: 1, BookID: 1}, {UserID: 2, BookID: 1}, {UserID: 2, BookID: 2}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return recommender.NewEngine(c, nil, nil)
}

// run executes the effect and feeds its result back, like the tea runtime would
func run(t *testing.T, s *Store, a Action) {
	t.Helper()
	cmd := s.Dispatch(a)
	for cmd != nil {
		raw := cmd()
		msg, ok := raw.(ActionMsg)
		if !ok {
			t.Fatalf("effect produced %T, want ActionMsg", raw)
		}
		cmd = s.Dispatch(msg.Action)
	}
}

func TestReduceFetchSetsLoading(t *testing.T) {
	s := Reduce(State{Err: errors.New("old")}, FetchRecommendationsRequest{User: 1})
	if !s.Loading || s.Seq != 1 || s.Err != nil {
		t.Errorf("unexpected state %+v", s)
	}
}

func TestReduceDropsStaleResponses(t *testing.T) {
	s := Reduce(State{}, FetchRecommendationsRequest{User: 1})
	s = Reduce(s, FetchRecommendationsRequest{User: 2})

	stale := Reduce(s, RecommendationsLoaded{Seq: 1, Result: &recommender.Result{Personalized: true, User: 1}})
	if !stale.Loading || stale.Mode != ModeNone {
		t.Errorf("stale response was applied: %+v", stale)
	}
	staleErr := Reduce(s, RecommendationsFailed{Seq: 1, Err: errors.New("late")})
	if staleErr.Err != nil {
		t.Errorf("stale failure was applied: %v", staleErr.Err)
	}

	fresh := Reduce(s, RecommendationsLoaded{Seq: 2, Result: &recommender.Result{Personalized: true, User: 2}})
	if fresh.Loading || fresh.Mode != ModeRecommendations || fresh.User != 2 {
		t.Errorf("fresh response not applied: %+v", fresh)
	}
}

func TestReducePopularClearsPersonalizedData(t *testing.T) {
	s := State{
		Seq:             1,
		Mode:            ModeRecommendations,
		Recommendations: []recommender.ScoredBook{{Book: catalog.Book{ID: 9}}},
		Target:          []catalog.Book{{ID: 8}},
	}
	items := []recommender.ScoredBook{{Book: catalog.Book{ID: 1}, Score: 1}}
	s = Reduce(s, RecommendationsLoaded{Seq: 1, Result: &recommender.Result{User: recommender.NoHistory, Items: items}})

	if s.Mode != ModePopular {
		t.Fatalf("mode = %v, want popular", s.Mode)
	}
	if s.Recommendations != nil || s.Target != nil {
		t.Errorf("personalized data not cleared: %+v", s)
	}
	if diff := cmp.Diff(items, s.Popular); diff != "" {
		t.Errorf("popular mismatch (-want +got):\n%s", diff)
	}
}

func TestReduceRefreshKeepsTarget(t *testing.T) {
	target := []catalog.Book{{ID: 1}}
	s := State{Mode: ModeRecommendations, Target: target}
	s = Reduce(s, ModifyHistoryRequest{User: 1, Books: []int64{2}})
	if !s.Refreshing || s.Loading {
		t.Fatalf("modify should refresh without loading: %+v", s)
	}
	s = Reduce(s, RecommendationsLoaded{Seq: s.Seq, Refresh: true, Result: &recommender.Result{
		Personalized: true,
		User:         1,
		History:      []catalog.Book{{ID: 1}, {ID: 2}},
	}})
	if diff := cmp.Diff(target, s.Target); diff != "" {
		t.Errorf("target changed on refresh (-want +got):\n%s", diff)
	}
	if s.Refreshing {
		t.Error("refreshing flag not cleared")
	}
}

func TestSelectors(t *testing.T) {
	s := State{Mode: ModePopular, Loading: true, Model: recommender.ModelRandom}
	if SelectContentMode(s) != ModePopular || !SelectIsLoadingContent(s) || SelectCurrentModel(s) != recommender.ModelRandom {
		t.Errorf("selectors disagree with state %+v", s)
	}
	s = Reduce(s, SetModelType{Model: recommender.ModelPopularity})
	if SelectCurrentModel(s) != recommender.ModelPopularity {
		t.Errorf("SetModelType not applied")
	}
}

func TestStoreFetchForUser(t *testing.T) {
	s := New(testEngine(t), Options{})
	run(t, s, FetchRecommendationsRequest{User: 1})

	st := s.State()
	if st.Loading {
		t.Error("still loading after response")
	}
	if st.Mode != ModeRecommendations {
		t.Fatalf("mode = %v, want recommendations", st.Mode)
	}
	if len(st.Target) != 1 || st.Target[0].ID != 1 {
		t.Errorf("target = %+v", st.Target)
	}
	if len(st.Recommendations) != 2 || st.Recommendations[0].Book.ID != 2 {
		t.Errorf("recommendations = %+v", st.Recommendations)
	}
}

func TestStoreFetchNoHistory(t *testing.T) {
	s := New(testEngine(t), Options{})
	run(t, s, FetchRecommendationsRequest{User: recommender.NoHistory})

	if st := s.State(); st.Mode != ModePopular || len(st.Popular) != 3 {
		t.Errorf("unexpected state %+v", st)
	}
}

func TestStoreFetchUnknownUserSetsError(t *testing.T) {
	s := New(testEngine(t), Options{})
	run(t, s, FetchRecommendationsRequest{User: 77})

	st := s.State()
	if !recommender.IsNotFound(st.Err) {
		t.Errorf("Err = %v, want not found", st.Err)
	}
	if st.Loading {
		t.Error("loading not cleared on failure")
	}
}

func TestReduceFetchClearsPreviousContent(t *testing.T) {
	shown := State{
		Mode:            ModeRecommendations,
		Popular:         []recommender.ScoredBook{{Book: catalog.Book{ID: 3}}},
		Recommendations: []recommender.ScoredBook{{Book: catalog.Book{ID: 2}}},
		Target:          []catalog.Book{{ID: 1}},
	}
	for _, a := range []Action{FetchRecommendationsRequest{User: 9}, CreateRecommendationsRequest{Books: []int64{1}}} {
		s := Reduce(shown, a)
		if s.Mode != ModeNone || s.Popular != nil || s.Recommendations != nil || s.Target != nil {
			t.Errorf("%s kept earlier content: %+v", Name(a), s)
		}
	}
}

func TestStoreFailedFetchShowsNoEarlierContent(t *testing.T) {
	s := New(testEngine(t), Options{})
	run(t, s, FetchRecommendationsRequest{User: 1})
	if st := s.State(); st.Mode != ModeRecommendations {
		t.Fatalf("mode = %v, want recommendations", st.Mode)
	}

	run(t, s, FetchRecommendationsRequest{User: 99})

	st := s.State()
	if !recommender.IsNotFound(st.Err) {
		t.Errorf("Err = %v, want not found", st.Err)
	}
	if st.Mode != ModeNone {
		t.Errorf("mode = %v, want none", st.Mode)
	}
	if st.Target != nil || st.Recommendations != nil {
		t.Errorf("user 1's content survived: target=%+v recommendations=%+v", st.Target, st.Recommendations)
	}
}

func TestStoreUsesSelectedModel(t *testing.T) {
	svc := &recordingService{Service: testEngine(t)}
	s := New(svc, Options{K: 5})
	run(t, s, SetModelType{Model: recommender.ModelRandom})
	run(t, s, FetchRecommendationsRequest{User: 2})

	if len(svc.requests) != 1 {
		t.Fatalf("expected 1 request, got %d", len(svc.requests))
	}
	want := recommender.Request{User: 2, Model: recommender.ModelRandom, K: 5}
	if diff := cmp.Diff(want, svc.requests[0]); diff != "" {
		t.Errorf("request mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreCreateAndLoadBooks(t *testing.T) {
	s := New(testEngine(t), Options{})
	run(t, s, LoadBooksRequest{})
	if got := len(s.State().Books); got != 3 {
		t.Errorf("books = %d, want 3", got)
	}
	if diff := cmp.Diff([]int64{1, 2}, s.State().Users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(recommender.DefaultRegistry().List(), s.State().Models); diff != "" {
		t.Errorf("models mismatch (-want +got):\n%s", diff)
	}

	run(t, s, CreateRecommendationsRequest{Books: []int64{2}})
	st := s.State()
	if st.Mode != ModeRecommendations || len(st.Target) != 1 || st.Target[0].ID != 2 {
		t.Errorf("unexpected state %+v", st)
	}
}

type recordingService struct {
	recommender.Service
	requests []recommender.Request
}

func (r *recordingService) Recommend(ctx context.Context, req recommender.Request) (*recommender.Result, error) {
	r.requests = append(r.requests, req)
	return r.Service.Recommend(ctx, req)
}
