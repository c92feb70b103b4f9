package recommender

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/yildizm/bookrec/internal/catalog"
)

func contentCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(
		[]catalog.Book{
			{ID: 1, Title: "Dragon Quest", Author: "Ann Smith", Genres: []string{"fantasy"}},
			{ID: 2, Title: "Dragon Magic", Author: "Bob Jones", Genres: []string{"fantasy"}},
			{ID: 3, Title: "Space Station", Author: "Cy Young", Genres: []string{"science fiction"}},
			{ID: 4, Title: "Space Pirates", Author: "Di Park", Genres: []string{"science fiction"}},
		},
		[]catalog.Interaction{{UserID: 1, BookID: 1}},
	)
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return c
}

func TestContentPrefersSimilarText(t *testing.T) {
	c := contentCatalog(t)
	items := NewContent(0).Predict(c, []int64{1}, 0)

	if diff := cmp.Diff([]int64{2, 3, 4}, ids(items)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	if items[0].Score <= 0 || items[0].Score > 1 {
		t.Errorf("similar book score = %v, want in (0,1]", items[0].Score)
	}
	if items[1].Score != 0 || items[2].Score != 0 {
		t.Errorf("unrelated books scored %v and %v, want 0", items[1].Score, items[2].Score)
	}
}

func TestContentEmptyHistory(t *testing.T) {
	items := NewContent(0).Predict(contentCatalog(t), nil, 2)
	if diff := cmp.Diff([]int64{1, 2}, ids(items)); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestContentCachesPerCatalog(t *testing.T) {
	m := NewContent(0)
	c := contentCatalog(t)

	first := m.vectorsFor(c)
	first[1][0] = 42
	if second := m.vectorsFor(c); second[1][0] != 42 {
		t.Fatal("vectors were rebuilt for the same catalog")
	}

	other := contentCatalog(t)
	m.vectorsFor(other)
	if m.catalog != other {
		t.Error("new catalog did not replace the cache")
	}
}

func TestTFIDFVectorizer(t *testing.T) {
	v := newTFIDFVectorizer(2)
	if err := v.fit(nil); err == nil {
		t.Error("fit(nil) should fail")
	}
	if err := v.fit([]string{"dragon dragon fire", "dragon ice", "the 1999 a"}); err != nil {
		t.Fatalf("fit() error = %v", err)
	}
	// dimensions caps the vocabulary; stop words and numbers never enter it
	if len(v.vocabulary) != 2 {
		t.Errorf("vocabulary = %v, want 2 terms", v.vocabulary)
	}
	if _, ok := v.vocabulary["dragon"]; !ok {
		t.Errorf("most frequent term missing from %v", v.vocabulary)
	}
	for _, w := range []string{"the", "1999", "a"} {
		if _, ok := v.vocabulary[w]; ok {
			t.Errorf("%q should not be in the vocabulary", w)
		}
	}

	if vec := v.vectorize("nothing known here"); cosineSimilarity(vec, vec) != 0 {
		t.Errorf("unknown text should vectorize to zero, got %v", vec)
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2}, []float64{1, 2}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero", []float64{0, 0}, []float64{1, 1}, 0},
		{"length mismatch", []float64{1}, []float64{1, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}
