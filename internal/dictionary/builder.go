// internal/dictionary/builder.go
package dictionary

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"medical-qa-bot/internal/models"
)

// FromRecords derives disease and symptom word lists from knowledge records,
// in first-seen order without duplicates.
func FromRecords(records []models.KnowledgeRecord) map[models.Category][]string {
	var diseases, symptoms []string
	for _, r := range records {
		diseases = append(diseases, r.Name)
		symptoms = append(symptoms, r.Symptom...)
	}
	return map[models.Category][]string{
		models.CategoryDisease: Merge(nil, diseases),
		models.CategorySymptom: Merge(nil, symptoms),
	}
}

// Merge keeps existing in order and appends the new, non-blank words of extra.
func Merge(existing, extra []string) []string {
	seen := make(map[string]struct{}, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, list := range [][]string{existing, extra} {
		for _, w := range list {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
		}
	}
	return out
}

// WriteFile stores words one per line.
func WriteFile(path string, words []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	for _, word := range words {
		if _, err := w.WriteString(word + "\n"); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
