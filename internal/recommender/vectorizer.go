package recommender

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

var (
	nonWord   = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	allDigits = regexp.MustCompile(`^\d+$`)
)

// tfidfVectorizer turns book text into TF-IDF vectors over a vocabulary of
// the most frequent terms in the catalog
type tfidfVectorizer struct {
	dimensions    int
	vocabulary    map[string]int
	idf           []float64
	minWordLength int
	maxWordLength int
	stopWords     map[string]bool
}

func newTFIDFVectorizer(dimensions int) *tfidfVectorizer {
	return &tfidfVectorizer{
		dimensions:    dimensions,
		vocabulary:    make(map[string]int),
		minWordLength: 2,
		maxWordLength: 50,
		stopWords:     defaultStopWords(),
	}
}

// fit builds the vocabulary and IDF weights from a corpus
func (v *tfidfVectorizer) fit(documents []string) error {
	if len(documents) == 0 {
		return fmt.Errorf("cannot fit on empty document corpus")
	}

	wordDocCounts := make(map[string]int)
	for _, doc := range documents {
		unique := make(map[string]bool)
		for _, word := range v.tokenize(doc) {
			if v.isValidWord(word) {
				unique[word] = true
			}
		}
		for word := range unique {
			wordDocCounts[word]++
		}
	}

	type wordFreq struct {
		word  string
		count int
	}
	freqs := make([]wordFreq, 0, len(wordDocCounts))
	for word, count := range wordDocCounts {
		freqs = append(freqs, wordFreq{word: word, count: count})
	}
	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].count != freqs[j].count {
			return freqs[i].count > freqs[j].count
		}
		return freqs[i].word < freqs[j].word
	})

	size := min(v.dimensions, len(freqs))
	v.vocabulary = make(map[string]int, size)
	v.idf = make([]float64, size)
	n := float64(len(documents))
	for i := 0; i < size; i++ {
		v.vocabulary[freqs[i].word] = i
		// smoothed so a term present everywhere still counts a little
		v.idf[i] = math.Log((1+n)/(1+float64(freqs[i].count))) + 1
	}
	return nil
}

// vectorize converts text to a TF-IDF vector of length len(vocabulary)
func (v *tfidfVectorizer) vectorize(text string) []float64 {
	vector := make([]float64, len(v.vocabulary))

	counts := make(map[string]int)
	total := 0
	for _, word := range v.tokenize(text) {
		if !v.isValidWord(word) {
			continue
		}
		counts[word]++
		total++
	}
	if total == 0 {
		return vector
	}

	for word, count := range counts {
		if index, ok := v.vocabulary[word]; ok {
			vector[index] = float64(count) / float64(total) * v.idf[index]
		}
	}
	return vector
}

func (v *tfidfVectorizer) tokenize(text string) []string {
	return strings.Fields(nonWord.ReplaceAllString(strings.ToLower(text), " "))
}

func (v *tfidfVectorizer) isValidWord(word string) bool {
	if len(word) < v.minWordLength || len(word) > v.maxWordLength {
		return false
	}
	if v.stopWords[word] {
		return false
	}
	return !allDigits.MatchString(word)
}

func defaultStopWords() map[string]bool {
	stopWords := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "in", "is", "it", "its", "of", "on", "that", "the", "to",
		"was", "with", "this", "but", "or", "into", "le", "la", "de",
	}
	set := make(map[string]bool, len(stopWords))
	for _, word := range stopWords {
		set[word] = true
	}
	return set
}

// cosineSimilarity returns 0 for mismatched or zero vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
