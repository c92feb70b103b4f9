package recommender

import (
	"strings"
	"sync"

	"github.com/yildizm/bookrec/internal/catalog"
)

// DefaultContentDimensions bounds the content model's vocabulary
const DefaultContentDimensions = 512

// Content scores a candidate by the cosine similarity between its text
// (title, author and genres) and the mean TF-IDF vector of the history.
// Vectors are cached per catalog; a reloaded catalog is a new pointer.
type Content struct {
	Dimensions int

	mu      sync.Mutex
	catalog *catalog.Catalog
	vectors map[int64][]float64
}

// NewContent creates a content model
func NewContent(dimensions int) *Content {
	if dimensions <= 0 {
		dimensions = DefaultContentDimensions
	}
	return &Content{Dimensions: dimensions}
}

func (m *Content) Type() ModelType { return ModelContent }

func (m *Content) Predict(c *catalog.Catalog, history []int64, k int) []ScoredBook {
	vectors := m.vectorsFor(c)

	var profile []float64
	n := 0
	for _, id := range history {
		vec, ok := vectors[id]
		if !ok {
			continue
		}
		if profile == nil {
			profile = make([]float64, len(vec))
		}
		for i, x := range vec {
			profile[i] += x
		}
		n++
	}
	for i := range profile {
		profile[i] /= float64(n)
	}

	cands := candidates(c, history)
	items := make([]ScoredBook, 0, len(cands))
	for _, b := range cands {
		score := 0.0
		if profile != nil {
			score = clamp01(cosineSimilarity(profile, vectors[b.ID]))
		}
		items = append(items, ScoredBook{Book: b, Score: score})
	}
	return topK(items, k)
}

func (m *Content) vectorsFor(c *catalog.Catalog) map[int64][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.catalog == c && m.vectors != nil {
		return m.vectors
	}

	books := c.Books()
	docs := make([]string, len(books))
	for i, b := range books {
		docs[i] = bookDocument(b)
	}

	vectors := make(map[int64][]float64, len(books))
	v := newTFIDFVectorizer(m.Dimensions)
	if err := v.fit(docs); err == nil {
		for i, b := range books {
			vectors[b.ID] = v.vectorize(docs[i])
		}
	}

	m.catalog = c
	m.vectors = vectors
	return vectors
}

func bookDocument(b catalog.Book) string {
	parts := append([]string{b.Title, b.Author}, b.Genres...)
	return strings.Join(parts, " ")
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
