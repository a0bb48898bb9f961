// internal/dictionary/loader.go
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"medical-qa-bot/internal/common/config"
	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/models"

	"github.com/hashicorp/go-multierror"
)

const maxLineSize = 1 << 20

// ParseWords reads one entry per line, trimming whitespace and skipping blank lines.
func ParseWords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var words []string
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first {
			line = strings.TrimPrefix(line, "\ufeff")
			first = false
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return words, fmt.Errorf("failed to read dictionary: %w", err)
	}
	return words, nil
}

// LoadFile reads a single dictionary file.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseWords(f)
}

// Loader reads every category dictionary named by the data config.
type Loader struct {
	cfg         config.DataConfig
	categories  []models.Category
	logger      logger.Logger
	diagnostics *apperrors.DiagnosticHandler
}

func NewLoader(cfg config.DataConfig, log logger.Logger, diagnostics *apperrors.DiagnosticHandler) *Loader {
	return &Loader{
		cfg:         cfg,
		categories:  models.AllCategories,
		logger:      log,
		diagnostics: diagnostics,
	}
}

// Load always returns a usable Store. A category that cannot be read is
// empty; the returned error lists every such failure.
func (l *Loader) Load() (*Store, error) {
	lists := make(map[models.Category][]string, len(l.categories))
	var result *multierror.Error

	for _, category := range l.categories {
		path := l.cfg.DictionaryPath(string(category))
		words, err := LoadFile(path)
		if err != nil {
			stdErr := apperrors.NewDictionaryLoadFailedError(string(category), path, err)
			if l.diagnostics != nil {
				l.diagnostics.Report("dictionary:"+string(category), stdErr)
			}
			result = multierror.Append(result, stdErr)
			lists[category] = nil
			continue
		}

		lists[category] = words
		l.logger.Debug("Dictionary loaded", map[string]interface{}{
			"category": string(category),
			"path":     path,
			"entries":  len(words),
		})
	}

	store := New(lists)
	l.logger.Info("Dictionaries ready", map[string]interface{}{
		"stats":    store.Stats(),
		"failures": failureCount(result),
	})
	return store, result.ErrorOrNil()
}

func failureCount(err *multierror.Error) int {
	if err == nil {
		return 0
	}
	return len(err.Errors)
}
