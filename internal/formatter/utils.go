package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/go-termfmt"
)

// createConfidenceBar creates ASCII score bar using go-termfmt
func createConfidenceBar(score float64, opts *termfmt.TerminalOptions) string {
	return termfmt.CreateConfidenceBar(clampScore(score), opts)
}

func clampScore(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}

// userLabel names who a result is for
func userLabel(result *recommender.Result) string {
	if result.User == recommender.NoHistory {
		if result.Personalized {
			return "picked books"
		}
		return "everyone"
	}
	return "user " + strconv.FormatInt(result.User, 10)
}

// kindLabel names the kind of result
func kindLabel(result *recommender.Result) string {
	if result.Personalized {
		return "Recommendations"
	}
	return "Popular"
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func formatScore(score float64) string {
	return fmt.Sprintf("%.3f", score)
}

func bookLine(b catalog.Book) string {
	parts := []string{b.Title}
	if b.Author != "" {
		parts = append(parts, "by "+b.Author)
	}
	if b.Year != 0 {
		parts = append(parts, "("+strconv.Itoa(b.Year)+")")
	}
	return strings.Join(parts, " ")
}
