package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewIndexesHistoryAndReaders(t *testing.T) {
	books := []Book{{ID: 2, Title: "B"}, {ID: 1, Title: "A"}, {ID: 3, Title: "C"}}
	interactions := []Interaction{
		{UserID: 10, BookID: 2},
		{UserID: 10, BookID: 1},
		{UserID: 11, BookID: 2},
		{UserID: 10, BookID: 2}, // duplicate read is ignored
	}

	c, err := New(books, interactions)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if diff := cmp.Diff([]int64{2, 1}, c.History(10)); diff != "" {
		t.Errorf("History(10) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int64{10, 11}, c.Users()); diff != "" {
		t.Errorf("Users() mismatch (-want +got):\n%s", diff)
	}
	if got := c.Readers(2); got != 2 {
		t.Errorf("Readers(2) = %d, want 2", got)
	}
	if got := c.Readers(3); got != 0 {
		t.Errorf("Readers(3) = %d, want 0", got)
	}
	if got := c.Books()[0].ID; got != 1 {
		t.Errorf("Books() not sorted by id, first = %d", got)
	}
	if b, ok := c.Book(3); !ok || b.Title != "C" {
		t.Errorf("Book(3) = %+v, %v", b, ok)
	}
	if c.HasUser(12) {
		t.Error("HasUser(12) should be false")
	}
}

func TestNewRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name         string
		books        []Book
		interactions []Interaction
		wantErr      string
	}{
		{
			name:    "non-positive book id",
			books:   []Book{{ID: 0, Title: "zero"}},
			wantErr: "id must be positive",
		},
		{
			name:    "duplicate book",
			books:   []Book{{ID: 1}, {ID: 1}},
			wantErr: "duplicate book id 1",
		},
		{
			name:         "unknown book",
			books:        []Book{{ID: 1}},
			interactions: []Interaction{{UserID: 1, BookID: 9}},
			wantErr:      "unknown book 9",
		},
		{
			name:         "bad user",
			books:        []Book{{ID: 1}},
			interactions: []Interaction{{UserID: -1, BookID: 1}},
			wantErr:      "user id must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.books, tt.interactions)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("New() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestSampleIsValid(t *testing.T) {
	c := Sample()
	if len(c.Books()) == 0 {
		t.Fatal("sample catalog has no books")
	}
	if len(c.Users()) == 0 {
		t.Fatal("sample catalog has no users")
	}
	if !c.HasUser(1) {
		t.Error("sample catalog should contain user 1")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	content := `books:
  - id: 1
    title: "One"
  - id: 2
    title: "Two"
interactions:
  - { user: 5, book: 2 }
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff([]int64{2}, c.History(5)); diff != "" {
		t.Errorf("History(5) mismatch (-want +got):\n%s", diff)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}
}

func TestResolveSkipsUnknown(t *testing.T) {
	c, err := New([]Book{{ID: 1, Title: "One"}}, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := c.Resolve([]int64{1, 99})
	if len(got) != 1 || got[0].Title != "One" {
		t.Errorf("Resolve() = %+v", got)
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.yaml")
	if err := os.WriteFile(path, []byte("books:\n  - { id: 1, title: One }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan *Catalog, 4)
	w, err := NewWatcher(path, func(c *Catalog) { reloaded <- c }, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	w.SetDebounce(10 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	defer func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}()

	// give the watcher time to register before writing
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("books:\n  - { id: 1, title: One }\n  - { id: 2, title: Two }\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if len(c.Books()) != 2 {
			t.Errorf("reloaded catalog has %d books, want 2", len(c.Books()))
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestNewWatcherRejectsDirectory(t *testing.T) {
	if _, err := NewWatcher(t.TempDir(), nil, nil); err == nil {
		t.Error("NewWatcher() on a directory should fail")
	}
}
