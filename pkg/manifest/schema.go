// pkg/manifest/schema.go
package manifest

// Manifest records every import of a knowledge file into a backend.
type Manifest struct {
	Version     string   `json:"version"`
	LastUpdated string   `json:"lastUpdated"`
	Imports     []Import `json:"imports"`
}

type Import struct {
	ID         string `json:"id"`
	Backend    string `json:"backend"`
	Target     string `json:"target"`
	SourceFile string `json:"sourceFile"`
	Records    int    `json:"records"`
	Skipped    int    `json:"skipped"`
	ImportedAt string `json:"importedAt"`
}
