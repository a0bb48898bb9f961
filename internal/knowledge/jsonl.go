// internal/knowledge/jsonl.go
package knowledge

import (
	"bufio"
	"bytes"
	"io"

	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/common/validation"
	"medical-qa-bot/internal/models"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxRecordSize = 16 << 20

// LoadResult carries the accepted records and a diagnostic per skipped one.
type LoadResult struct {
	Records []models.KnowledgeRecord
	Skipped []error
}

func (r *LoadResult) skip(err error) {
	r.Skipped = append(r.Skipped, err)
}

// recordDecoder validates raw JSON against the record schema before decoding.
type recordDecoder struct {
	source    string
	validator *validation.Validator
}

func newRecordDecoder(source string) *recordDecoder {
	return &recordDecoder{source: source, validator: validation.NewRecordValidator()}
}

// decode returns the record or a StandardError describing why it was skipped.
func (d *recordDecoder) decode(raw []byte, line int) (*models.KnowledgeRecord, error) {
	result, err := d.validator.ValidateBytes(raw)
	if err != nil {
		return nil, apperrors.NewRecordMalformedError(d.source, line, err)
	}
	if !result.Valid {
		return nil, apperrors.NewRecordInvalidError(d.source, line, result.String())
	}

	var rec models.KnowledgeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, apperrors.NewRecordMalformedError(d.source, line, err)
	}
	return &rec, nil
}

// ReadJSONLines parses one record per line. Blank lines are ignored; bad
// lines are skipped and reported in the result. Only a read failure is an error.
func ReadJSONLines(r io.Reader, source string) (*LoadResult, error) {
	decoder := newRecordDecoder(source)
	result := &LoadResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), maxRecordSize)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		rec, err := decoder.decode(raw, line)
		if err != nil {
			result.skip(err)
			continue
		}
		result.Records = append(result.Records, *rec)
	}
	if err := scanner.Err(); err != nil {
		return result, apperrors.NewKnowledgeLoadFailedError(source, err)
	}
	return result, nil
}

// WriteJSONLines writes records in the same format ReadJSONLines accepts.
func WriteJSONLines(w io.Writer, records []models.KnowledgeRecord) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	for i := range records {
		if err := enc.Encode(&records[i]); err != nil {
			return err
		}
	}
	return nil
}
