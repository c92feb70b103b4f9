package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/monitor"
	"github.com/yildizm/bookrec/internal/recommender"
)

// user 1 read 1,2; user 2 read 1,3; user 3 read 4
func testServer(t *testing.T) *Server {
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
	engine := recommender.NewEngine(c, recommender.DefaultRegistry(), logger.Discard())
	return New(engine, DefaultConfig(), logger.Discard())
}

func get(t *testing.T, s *Server, target string, out interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v (body %q)", target, err, rec.Body.String())
		}
	}
	return rec
}

func TestHealth(t *testing.T) {
	s := testServer(t)
	var got HealthResponse
	rec := get(t, s, "/api/health", &got)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	if diff := cmp.Diff(HealthResponse{Status: "ok", Books: 4, Users: 3}, got); diff != "" {
		t.Errorf("health mismatch (-want +got):\n%s", diff)
	}
}

func TestModelsDefaultFirst(t *testing.T) {
	var got ModelsResponse
	get(t, testServer(t), "/api/models", &got)
	if len(got.Models) == 0 || got.Models[0] != recommender.DefaultModel {
		t.Errorf("models = %v, want %s first", got.Models, recommender.DefaultModel)
	}
}

func TestBooksAndUsers(t *testing.T) {
	s := testServer(t)

	var books BooksResponse
	get(t, s, "/api/books", &books)
	if len(books.Books) != 4 {
		t.Errorf("got %d books, want 4", len(books.Books))
	}

	var users UsersResponse
	get(t, s, "/api/users", &users)
	if diff := cmp.Diff([]int64{1, 2, 3}, users.Users); diff != "" {
		t.Errorf("users mismatch (-want +got):\n%s", diff)
	}
}

func TestPopular(t *testing.T) {
	var got PopularResponse
	rec := get(t, testServer(t), "/api/popular?k=1", &got)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if len(got.Items) != 1 || got.Items[0].Book.ID != 1 {
		t.Errorf("popular = %+v, want book 1 only", got.Items)
	}
}

func TestRecommendations(t *testing.T) {
	s := testServer(t)

	t.Run("personalized", func(t *testing.T) {
		var got recommender.Result
		rec := get(t, s, "/api/recommendations?user=1&model=item_similarity", &got)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if !got.Personalized || got.User != 1 {
			t.Errorf("result = %+v, want personalized for user 1", got)
		}
		for _, item := range got.Items {
			if item.Book.ID == 1 || item.Book.ID == 2 {
				t.Errorf("recommended already read book %d", item.Book.ID)
			}
		}
	})

	t.Run("no user is popular", func(t *testing.T) {
		var got recommender.Result
		get(t, s, "/api/recommendations", &got)
		if got.Personalized || got.User != recommender.NoHistory {
			t.Errorf("result = %+v, want non-personalized", got)
		}
	})

	t.Run("seed books without user", func(t *testing.T) {
		var got recommender.Result
		get(t, s, "/api/recommendations?books=4", &got)
		if !got.Personalized {
			t.Errorf("seeded request should be personalized")
		}
		if len(got.History) != 1 || got.History[0].ID != 4 {
			t.Errorf("history = %+v, want book 4", got.History)
		}
	})
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		status int
		kind   string
	}{
		{"bad user", "/api/recommendations?user=abc", http.StatusBadRequest, "validation"},
		{"zero user", "/api/recommendations?user=0", http.StatusBadRequest, "validation"},
		{"bad books", "/api/recommendations?books=1,x", http.StatusBadRequest, "validation"},
		{"unknown book", "/api/recommendations?books=99", http.StatusBadRequest, "validation"},
		{"unknown model", "/api/recommendations?user=1&model=nope", http.StatusBadRequest, "validation"},
		{"bad k", "/api/popular?k=ten", http.StatusBadRequest, "validation"},
		{"k out of range", "/api/popular?k=-3", http.StatusBadRequest, "validation"},
		{"user without history", "/api/recommendations?user=77", http.StatusNotFound, "not_found"},
		{"unknown route", "/api/nope", http.StatusNotFound, "not_found"},
	}

	s := testServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ErrorResponse
			rec := get(t, s, tt.target, &got)
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d", rec.Code, tt.status)
			}
			if got.Error != tt.kind {
				t.Errorf("error = %q, want %q", got.Error, tt.kind)
			}
			if got.Message == "" {
				t.Error("message is empty")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/books", nil)
	rec := httptest.NewRecorder()
	testServer(t).Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStatsRecordsRoutes(t *testing.T) {
	s := testServer(t)
	get(t, s, "/api/books", nil)
	get(t, s, "/api/books", nil)
	get(t, s, "/api/recommendations?user=77", nil)

	var snap monitor.Snapshot
	get(t, s, "/api/stats", &snap)

	counts := map[string]int64{}
	for _, op := range snap.Operations {
		counts[op.Operation] = op.Count
	}
	if counts["GET /api/books"] != 2 {
		t.Errorf("books count = %d, want 2 (ops %v)", counts["GET /api/books"], counts)
	}
	if counts["GET /api/recommendations"] != 1 {
		t.Errorf("recommendations count = %d, want 1", counts["GET /api/recommendations"])
	}
}

func TestStatusFor(t *testing.T) {
	tests := map[recommender.ErrorKind]int{
		recommender.KindValidation:  http.StatusBadRequest,
		recommender.KindNotFound:    http.StatusNotFound,
		recommender.KindUnavailable: http.StatusServiceUnavailable,
		recommender.KindInternal:    http.StatusInternalServerError,
	}
	for kind, want := range tests {
		if got := StatusFor(kind); got != want {
			t.Errorf("StatusFor(%s) = %d, want %d", kind, got, want)
		}
	}
}

func TestParseIDList(t *testing.T) {
	got, err := parseIDList(" 3, ,1,2 ")
	if err != nil {
		t.Fatalf("parseIDList() error = %v", err)
	}
	if diff := cmp.Diff([]int64{3, 1, 2}, got); diff != "" {
		t.Errorf("ids mismatch (-want +got):\n%s", diff)
	}
	if got, _ := parseIDList(""); got != nil {
		t.Errorf("empty list = %v, want nil", got)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	s := testServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/health")
	if err != nil {
		t.Fatalf("GET health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
