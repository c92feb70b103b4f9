package recommender

import (
	"math/rand"
	"sort"

	"github.com/yildizm/bookrec/internal/catalog"
)

// Model scores unseen books for a reading history
type Model interface {
	Type() ModelType
	Predict(c *catalog.Catalog, history []int64, k int) []ScoredBook
}

// candidates returns every catalog book not in history
func candidates(c *catalog.Catalog, history []int64) []catalog.Book {
	known := make(map[int64]struct{}, len(history))
	for _, id := range history {
		known[id] = struct{}{}
	}
	all := c.Books()
	out := all[:0]
	for _, b := range all {
		if _, ok := known[b.ID]; !ok {
			out = append(out, b)
		}
	}
	return out
}

// topK orders by score descending, ties by ascending id, and truncates
func topK(items []ScoredBook, k int) []ScoredBook {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].Book.ID < items[j].Book.ID
	})
	if k > 0 && len(items) > k {
		items = items[:k]
	}
	return items
}

// ItemSimilarity scores a candidate by its mean Jaccard similarity to the
// history, where two books are similar when the same users read both.
type ItemSimilarity struct{}

func (ItemSimilarity) Type() ModelType { return ModelItemSimilarity }

func (ItemSimilarity) Predict(c *catalog.Catalog, history []int64, k int) []ScoredBook {
	cands := candidates(c, history)
	items := make([]ScoredBook, 0, len(cands))
	for _, b := range cands {
		var total float64
		for _, h := range history {
			total += Jaccard(c.ReaderSet(h), c.ReaderSet(b.ID))
		}
		score := 0.0
		if len(history) > 0 {
			score = total / float64(len(history))
		}
		items = append(items, ScoredBook{Book: b, Score: score})
	}
	return topK(items, k)
}

// Jaccard returns |a ∩ b| / |a ∪ b|, or 0 when both are empty
func Jaccard(a, b map[int64]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for u := range small {
		if _, ok := large[u]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Popularity ranks unseen books by how many users read them
type Popularity struct{}

func (Popularity) Type() ModelType { return ModelPopularity }

func (Popularity) Predict(c *catalog.Catalog, history []int64, k int) []ScoredBook {
	cands := candidates(c, history)
	maxReaders := 0
	for _, b := range c.Books() {
		if n := c.Readers(b.ID); n > maxReaders {
			maxReaders = n
		}
	}
	items := make([]ScoredBook, 0, len(cands))
	for _, b := range cands {
		score := 0.0
		if maxReaders > 0 {
			score = float64(c.Readers(b.ID)) / float64(maxReaders)
		}
		items = append(items, ScoredBook{Book: b, Score: score})
	}
	return topK(items, k)
}

// Random returns unseen books in a pseudo-random order that is stable for a
// given history.
type Random struct {
	Seed int64
}

func (Random) Type() ModelType { return ModelRandom }

func (r Random) Predict(c *catalog.Catalog, history []int64, k int) []ScoredBook {
	seed := r.Seed
	for _, id := range history {
		seed = seed*31 + id
	}
	// #nosec G404 - ordering only, not security sensitive
	rng := rand.New(rand.NewSource(seed))
	cands := candidates(c, history)
	items := make([]ScoredBook, 0, len(cands))
	for _, b := range cands {
		items = append(items, ScoredBook{Book: b, Score: rng.Float64()})
	}
	return topK(items, k)
}
