package errors

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type recordedWarning struct {
	msg    string
	fields map[string]interface{}
}

type fakeLogger struct {
	warnings []recordedWarning
}

func (l *fakeLogger) Warn(msg string, fields map[string]interface{}) {
	l.warnings = append(l.warnings, recordedWarning{msg: msg, fields: fields})
}

type fakeRecorder struct {
	calls [][2]string
}

func (r *fakeRecorder) RecordLoadError(source, code string) {
	r.calls = append(r.calls, [2]string{source, code})
}

// ==========================
// StandardError Tests
// ==========================

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
		category  string
	}{
		{"dictionary", NewDictionaryLoadFailedError("disease", "/d/disease.txt", cause), ErrCodeDictionaryLoadFailed, false, "DICTIONARY"},
		{"knowledge", NewKnowledgeLoadFailedError("file:x", cause), ErrCodeKnowledgeLoadFailed, false, "KNOWLEDGE"},
		{"malformed", NewRecordMalformedError("file:x", 3, cause), ErrCodeKnowledgeRecordMalformed, false, "RECORD"},
		{"invalid", NewRecordInvalidError("file:x", 4, "name: required"), ErrCodeKnowledgeRecordInvalid, false, "RECORD"},
		{"connection", NewBackendConnectionFailedError("redis", cause), ErrCodeBackendConnectionFailed, true, "BACKEND"},
		{"query", NewBackendQueryFailedError("postgres", cause), ErrCodeBackendQueryFailed, true, "BACKEND"},
		{"timeout", NewBackendTimeoutError("elasticsearch", cause), ErrCodeBackendTimeout, true, "BACKEND"},
		{"config", NewConfigInvalidError(cause), ErrCodeConfigInvalid, false, "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryableErrorCode(tt.code))
			assert.Equal(t, tt.category, GetErrorCategory(tt.code))
			assert.Contains(t, tt.err.Error(), string(tt.code))
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestRecordErrorsCarryLine(t *testing.T) {
	err := NewRecordMalformedError("file:kb.json", 7, errors.New("bad json"))
	assert.Equal(t, 7, err.Metadata["line"])
	assert.Equal(t, "file:kb.json", err.Metadata["source"])
}

func TestUnwrapKeepsSentinels(t *testing.T) {
	err := NewDictionaryLoadFailedError("drug", "drug.txt", fs.ErrNotExist)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	timeout := NewBackendTimeoutError("redis", context.DeadlineExceeded)
	assert.ErrorIs(t, timeout, context.DeadlineExceeded)
}

func TestIsRetryable_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load: %w", NewBackendQueryFailedError("postgres", errors.New("x")))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(NewKnowledgeLoadFailedError("file:x", errors.New("x"))))
}

func TestNormalize(t *testing.T) {
	std := NewConfigInvalidError(errors.New("bad"))
	assert.Same(t, std, Normalize(fmt.Errorf("wrapped: %w", std)))

	plain := Normalize(errors.New("plain"))
	assert.Equal(t, ErrCodeInternal, plain.Code)
	assert.Equal(t, "plain", plain.Details)
	assert.Equal(t, "OTHER", GetErrorCategory(plain.Code))
}

func TestWithMetadata(t *testing.T) {
	err := (&StandardError{Code: ErrCodeInternal}).WithMetadata("k", "v")
	assert.Equal(t, "v", err.Metadata["k"])
}

// ==========================
// DiagnosticHandler Tests
// ==========================

func TestDiagnosticHandler_Report(t *testing.T) {
	log := &fakeLogger{}
	rec := &fakeRecorder{}
	h := NewDiagnosticHandler(log, rec)

	std := h.Report("dictionary:disease", NewDictionaryLoadFailedError("disease", "disease.txt", fs.ErrNotExist))
	require.NotNil(t, std)

	require.Len(t, rec.calls, 1)
	assert.Equal(t, [2]string{"dictionary:disease", "DICTIONARY_LOAD_FAILED"}, rec.calls[0])

	require.Len(t, log.warnings, 1)
	fields := log.warnings[0].fields
	assert.Equal(t, "Load diagnostic", log.warnings[0].msg)
	assert.Equal(t, "dictionary:disease", fields["source"])
	assert.Equal(t, "DICTIONARY_LOAD_FAILED", fields["errorCode"])
	assert.Equal(t, "disease.txt", fields["path"])
}

func TestDiagnosticHandler_MetadataDoesNotOverride(t *testing.T) {
	log := &fakeLogger{}
	h := NewDiagnosticHandler(log, nil)

	h.Report("knowledge", NewRecordInvalidError("file:kb.json", 2, "name: required"))

	require.Len(t, log.warnings, 1)
	assert.Equal(t, "knowledge", log.warnings[0].fields["source"])
	assert.Equal(t, 2, log.warnings[0].fields["line"])
}

func TestDiagnosticHandler_NilSafe(t *testing.T) {
	h := NewDiagnosticHandler(nil, nil)
	assert.Nil(t, h.Report("x", nil))
	assert.Equal(t, ErrCodeInternal, h.Report("x", errors.New("boom")).Code)
}
