// internal/knowledge/file.go
package knowledge

import (
	"context"
	"os"

	apperrors "medical-qa-bot/internal/common/errors"
)

// FileSource reads a JSON-lines knowledge file.
type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Load(ctx context.Context) (*LoadResult, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, apperrors.NewKnowledgeLoadFailedError(s.Name(), err)
	}
	defer f.Close()

	return ReadJSONLines(f, s.Name())
}
