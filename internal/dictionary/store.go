// internal/dictionary/store.go
package dictionary

import "medical-qa-bot/internal/models"

// Store holds one ordered word list per category. It is read-only after New.
type Store struct {
	lists map[models.Category][]string
}

// New copies lists into a Store. Categories absent from lists read as empty.
func New(lists map[models.Category][]string) *Store {
	s := &Store{lists: make(map[models.Category][]string, len(lists))}
	for category, words := range lists {
		s.lists[category] = append([]string(nil), words...)
	}
	return s
}

// Words returns the dictionary for a category in file order.
func (s *Store) Words(category models.Category) []string {
	return s.lists[category]
}

// Len returns the number of entries in a category.
func (s *Store) Len(category models.Category) int {
	return len(s.lists[category])
}

// Stats reports entry counts per category.
func (s *Store) Stats() map[string]int {
	out := make(map[string]int, len(s.lists))
	for category, words := range s.lists {
		out[string(category)] = len(words)
	}
	return out
}
