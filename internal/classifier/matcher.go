// internal/classifier/matcher.go
package classifier

import (
	"strings"

	"medical-qa-bot/internal/models"
)

// WordSource supplies the dictionary for a category.
type WordSource interface {
	Words(category models.Category) []string
}

// Matcher finds dictionary words contained in a question. Matching is plain
// substring containment: no tokenization, case folding or overlap resolution.
type Matcher struct {
	words WordSource
	order []models.Category
}

func NewMatcher(words WordSource) *Matcher {
	return &Matcher{words: words, order: models.AllCategories}
}

// Match evaluates categories in order and keeps only those with hits.
func (m *Matcher) Match(question string) models.MatchResult {
	var result models.MatchResult
	for _, category := range m.order {
		var hits []string
		for _, word := range m.words.Words(category) {
			if strings.Contains(question, word) {
				hits = append(hits, word)
			}
		}
		result.Add(category, hits)
	}
	return result
}
