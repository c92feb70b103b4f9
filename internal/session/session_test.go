package session

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "session.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

func TestLocationAndModel(t *testing.T) {
	s := openTemp(t)

	if _, err := s.LastLocation(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LastLocation() on empty store error = %v, want ErrNotFound", err)
	}
	if _, err := s.LastModel(); !errors.Is(err, ErrNotFound) {
		t.Errorf("LastModel() on empty store error = %v, want ErrNotFound", err)
	}

	loc := route.Location{Path: "/", RawQuery: "user=5"}
	if err := s.SaveLocation(loc); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveModel(recommender.ModelRandom); err != nil {
		t.Fatal(err)
	}

	got, err := s.LastLocation()
	if err != nil || got != loc {
		t.Errorf("LastLocation() = %+v, %v", got, err)
	}
	m, err := s.LastModel()
	if err != nil || m != recommender.ModelRandom {
		t.Errorf("LastModel() = %q, %v", m, err)
	}
}

func TestVisitsNewestFirst(t *testing.T) {
	s := openTemp(t)

	for _, q := range []string{"user=1", "user=2", "user=3"} {
		if _, err := s.AddVisit(route.Location{Path: "/", RawQuery: q}); err != nil {
			t.Fatal(err)
		}
	}

	visits, err := s.Visits(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 {
		t.Fatalf("Visits(2) returned %d", len(visits))
	}
	if visits[0].Location.RawQuery != "user=3" || visits[0].Seq != 3 {
		t.Errorf("newest visit = %+v", visits[0])
	}
	if visits[1].Location.RawQuery != "user=2" {
		t.Errorf("second visit = %+v", visits[1])
	}

	all, err := s.Visits(0)
	if err != nil || len(all) != 3 {
		t.Errorf("Visits(0) = %d, %v", len(all), err)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveModel(recommender.ModelPopularity); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if m, err := s.LastModel(); err != nil || m != recommender.ModelPopularity {
		t.Errorf("LastModel() after reopen = %q, %v", m, err)
	}
}
