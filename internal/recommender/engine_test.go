package recommender

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yildizm/bookrec/internal/catalog"
)

// user 1 read 1,2; user 2 read 1,3; user 3 read 4
func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Book{{ID: 1, Title: "One"}, {ID: 2, Title: "Two"}, {ID: 3, Title: "Three"}, {ID: 4, Title: "Four"}},
		[]catalog.Interaction{
			{UserID: 1, BookID: 1}, {UserID: 1, BookID: 2},
			{UserID: 2, BookID: 1}, {UserID: 2, BookID: 3},
			{UserID: 3, BookID: 4},
		},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func ids(items []ScoredBook) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.Book.ID
	}
	return out
}

func TestJaccard(t *testing.T) {
	set := func(xs ...int64) map[int64]struct{} {
		m := make(map[int64]struct{})
		for _, x := range xs {
			m[x] = struct{}{}
		}
		return m
	}
	tests := []struct {
		name string
		a, b map[int64]struct{}
		want float64
	}{
		{"disjoint", set(1), set(2), 0},
		{"identical", set(1, 2), set(1, 2), 1},
		{"partial", set(1, 2), set(2, 3), 1.0 / 3.0},
		{"both empty", set(), set(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Jaccard(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Jaccard() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestItemSimilarityRanksCoReadBooks(t *testing.T) {
	c := testCatalog(t)
	got := ItemSimilarity{}.Predict(c, []int64{1}, 10)

	if diff := cmp.Diff([]int64{2, 3, 4}, ids(got)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if math.Abs(got[0].Score-0.5) > 1e-9 {
		t.Errorf("score of book 2 = %v, want 0.5", got[0].Score)
	}
}

func TestRandomIsStableAndExcludesHistory(t *testing.T) {
	c := testCatalog(t)
	m := Random{Seed: 42}
	first := m.Predict(c, []int64{1}, 10)
	second := m.Predict(c, []int64{1}, 10)

	if diff := cmp.Diff(ids(first), ids(second)); diff != "" {
		t.Errorf("random model not deterministic (-first +second):\n%s", diff)
	}
	for _, id := range ids(first) {
		if id == 1 {
			t.Error("random model returned a known book")
		}
	}
	if len(first) != 3 {
		t.Errorf("expected 3 candidates, got %d", len(first))
	}
}

func TestEngineRecommend(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(testCatalog(t), nil, nil)

	t.Run("known user", func(t *testing.T) {
		res, err := e.Recommend(ctx, Request{User: 1})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !res.Personalized || res.Model != ModelItemSimilarity {
			t.Errorf("unexpected result header %+v", res)
		}
		if diff := cmp.Diff([]int64{3, 4}, ids(res.Items)); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
		if len(res.History) != 2 {
			t.Errorf("history has %d books, want 2", len(res.History))
		}
	})

	t.Run("no history is popular", func(t *testing.T) {
		res, err := e.Recommend(ctx, Request{User: NoHistory, K: 2})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if res.Personalized {
			t.Error("NoHistory result should not be personalized")
		}
		if diff := cmp.Diff([]int64{1, 2}, ids(res.Items)); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("seed books for anonymous user", func(t *testing.T) {
		res, err := e.Recommend(ctx, Request{User: NoHistory, Books: []int64{4}})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if !res.Personalized || len(res.History) != 1 || res.History[0].ID != 4 {
			t.Errorf("unexpected result %+v", res)
		}
	})

	t.Run("modified history merges", func(t *testing.T) {
		res, err := e.Recommend(ctx, Request{User: 1, Books: []int64{2, 3}})
		if err != nil {
			t.Fatalf("Recommend() error = %v", err)
		}
		if diff := cmp.Diff([]int64{4}, ids(res.Items)); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEngineRecommendErrors(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(testCatalog(t), nil, nil)

	tests := []struct {
		name  string
		req   Request
		check func(error) bool
	}{
		{"unknown user", Request{User: 99}, IsNotFound},
		{"unknown model", Request{User: 1, Model: "deep"}, IsValidation},
		{"negative k", Request{User: 1, K: -1}, IsValidation},
		{"k too large", Request{User: 1, K: MaxK + 1}, IsValidation},
		{"unknown book", Request{User: 1, Books: []int64{42}}, IsValidation},
		{"zero user", Request{User: 0}, IsValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Recommend(ctx, tt.req)
			if !tt.check(err) {
				t.Errorf("Recommend() error = %v (kind %s)", err, KindOf(err))
			}
		})
	}

	_, err := e.Recommend(ctx, Request{User: 99})
	if !errors.Is(err, ErrUnknownUser) {
		t.Errorf("expected errors.Is(err, ErrUnknownUser), got %v", err)
	}
}

func TestEngineCancelledContext(t *testing.T) {
	e := NewEngine(testCatalog(t), nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Recommend(ctx, Request{User: 1}); !IsUnavailable(err) {
		t.Errorf("expected unavailable error, got %v", err)
	}
}

func TestEngineSetCatalog(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(testCatalog(t), nil, nil)

	next, err := catalog.New([]catalog.Book{{ID: 7}}, []catalog.Interaction{{UserID: 5, BookID: 7}})
	if err != nil {
		t.Fatal(err)
	}
	e.SetCatalog(next)

	users, err := e.Users(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int64{5}, users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	if diff := cmp.Diff([]ModelType{ModelItemSimilarity, ModelContent, ModelPopularity, ModelRandom}, r.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
	if err := r.Register(Popularity{}); !IsValidation(err) {
		t.Errorf("duplicate Register() error = %v", err)
	}
	if err := r.SetDefault("nope"); !IsValidation(err) {
		t.Errorf("SetDefault(nope) error = %v", err)
	}
	if err := r.SetDefault(ModelRandom); err != nil {
		t.Fatal(err)
	}
	m, err := r.Get("")
	if err != nil || m.Type() != ModelRandom {
		t.Errorf("Get(\"\") = %v, %v", m, err)
	}
}
