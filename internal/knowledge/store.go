// Package knowledge holds the per-disease knowledge records and the loaders
// that fill them from a file, PostgreSQL, Elasticsearch or Redis.
package knowledge

import (
	"sort"

	"medical-qa-bot/internal/models"
)

// Store resolves a disease name to its record. Lookup is exact match only.
type Store interface {
	Lookup(name string) (*models.KnowledgeRecord, bool)
	Len() int
}

// MemoryStore is an immutable name -> record map.
type MemoryStore struct {
	records map[string]*models.KnowledgeRecord
}

// NewMemoryStore indexes records by name. Later records replace earlier ones.
func NewMemoryStore(records []models.KnowledgeRecord) *MemoryStore {
	s := &MemoryStore{records: make(map[string]*models.KnowledgeRecord, len(records))}
	for i := range records {
		rec := records[i]
		s.records[rec.Name] = &rec
	}
	return s
}

// EmptyStore answers every lookup with not found.
func EmptyStore() *MemoryStore {
	return NewMemoryStore(nil)
}

func (s *MemoryStore) Lookup(name string) (*models.KnowledgeRecord, bool) {
	rec, ok := s.records[name]
	return rec, ok
}

func (s *MemoryStore) Len() int {
	return len(s.records)
}

// Names returns the indexed names sorted.
func (s *MemoryStore) Names() []string {
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
