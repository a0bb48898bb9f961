// internal/models/entity.go
package models

// Category names a dictionary of known terms.
type Category string

const (
	CategoryDisease Category = "disease"
	CategorySymptom Category = "symptom"
	CategoryDrug    Category = "drug"
	CategoryFood    Category = "food"
	CategoryCheck   Category = "check"
)

// AllCategories lists every dictionary in evaluation order.
var AllCategories = []Category{
	CategoryDisease,
	CategorySymptom,
	CategoryDrug,
	CategoryFood,
	CategoryCheck,
}

// CategoryMatch holds the words of one category found in a question, in dictionary order.
type CategoryMatch struct {
	Category Category `json:"category"`
	Words    []string `json:"words"`
}

// MatchResult is an ordered category -> words mapping. Categories without
// matches are never present.
type MatchResult struct {
	Entries []CategoryMatch `json:"entries,omitempty"`
}

// Add appends words for a category. Empty word lists are ignored.
func (m *MatchResult) Add(category Category, words []string) {
	if len(words) == 0 {
		return
	}
	m.Entries = append(m.Entries, CategoryMatch{Category: category, Words: words})
}

// Words returns the matched words of a category, or nil.
func (m MatchResult) Words(category Category) []string {
	for _, e := range m.Entries {
		if e.Category == category {
			return e.Words
		}
	}
	return nil
}

// Has reports whether the category matched at least one word.
func (m MatchResult) Has(category Category) bool {
	return len(m.Words(category)) > 0
}

// IsEmpty reports whether nothing matched.
func (m MatchResult) IsEmpty() bool {
	return len(m.Entries) == 0
}

// Categories returns the matched categories in evaluation order.
func (m MatchResult) Categories() []Category {
	out := make([]Category, 0, len(m.Entries))
	for _, e := range m.Entries {
		out = append(out, e.Category)
	}
	return out
}

// ToMap flattens the result for structured logging.
func (m MatchResult) ToMap() map[string][]string {
	out := make(map[string][]string, len(m.Entries))
	for _, e := range m.Entries {
		out[string(e.Category)] = e.Words
	}
	return out
}
