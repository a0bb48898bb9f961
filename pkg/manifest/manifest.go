// pkg/manifest/manifest.go
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
)

const currentVersion = "1.0.0"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Load reads a manifest. A missing file yields an empty manifest.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &Manifest{Version: currentVersion, Imports: []Import{}}, nil
	}
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}
	return &m, nil
}

// Save writes the manifest atomically.
func Save(path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Append adds an import entry and stamps the manifest.
func (m *Manifest) Append(entry Import, now time.Time) {
	if entry.ImportedAt == "" {
		entry.ImportedAt = now.UTC().Format(time.RFC3339)
	}
	m.Imports = append(m.Imports, entry)
	m.LastUpdated = now.UTC().Format(time.RFC3339)
	if m.Version == "" {
		m.Version = currentVersion
	}
}

// Latest returns the most recent import into backend, if any.
func (m *Manifest) Latest(backend string) (Import, bool) {
	for i := len(m.Imports) - 1; i >= 0; i-- {
		if m.Imports[i].Backend == backend {
			return m.Imports[i], true
		}
	}
	return Import{}, false
}

// Record loads the manifest at path, appends entry and saves it.
func Record(path string, entry Import) error {
	m, err := Load(path)
	if err != nil {
		return err
	}
	m.Append(entry, time.Now())
	return Save(path, m)
}
