// Package errors provides the structured error types used when loading
// dictionaries and knowledge records.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeDictionaryLoadFailed ErrorCode = "DICTIONARY_LOAD_FAILED"

	ErrCodeKnowledgeLoadFailed      ErrorCode = "KNOWLEDGE_LOAD_FAILED"
	ErrCodeKnowledgeRecordMalformed ErrorCode = "KNOWLEDGE_RECORD_MALFORMED"
	ErrCodeKnowledgeRecordInvalid   ErrorCode = "KNOWLEDGE_RECORD_INVALID"

	ErrCodeBackendConnectionFailed ErrorCode = "BACKEND_CONNECTION_FAILED"
	ErrCodeBackendQueryFailed      ErrorCode = "BACKEND_QUERY_FAILED"
	ErrCodeBackendTimeout          ErrorCode = "BACKEND_TIMEOUT"

	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause so errors.Is keeps working on sentinels.
func (e *StandardError) Unwrap() error {
	return e.cause
}

// WithMetadata attaches a key/value pair and returns the same error.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// ==========================
// 2. Error Constructors
// ==========================

// NewDictionaryLoadFailedError reports an unreadable dictionary file.
func NewDictionaryLoadFailedError(category, path string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDictionaryLoadFailed,
		Message:   "Dictionary could not be loaded",
		Details:   fmt.Sprintf("category: %s, path: %s, error: %s", category, path, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"category": category, "path": path},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewKnowledgeLoadFailedError reports a knowledge source that could not be read at all.
func NewKnowledgeLoadFailedError(source string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeLoadFailed,
		Message:   "Knowledge source could not be loaded",
		Details:   fmt.Sprintf("source: %s, error: %s", source, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRecordMalformedError reports a record that is not valid JSON.
func NewRecordMalformedError(source string, line int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeRecordMalformed,
		Message:   "Knowledge record is not valid JSON",
		Details:   fmt.Sprintf("source: %s, line: %d, error: %s", source, line, err.Error()),
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source, "line": line},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewRecordInvalidError reports a record that failed schema validation.
func NewRecordInvalidError(source string, line int, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeKnowledgeRecordInvalid,
		Message:   "Knowledge record failed validation",
		Details:   details,
		Retryable: false,
		Metadata:  map[string]interface{}{"source": source, "line": line},
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendConnectionFailedError creates a retryable connection error.
func NewBackendConnectionFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendConnectionFailed,
		Message:   fmt.Sprintf("%s connection error", backend),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewBackendQueryFailedError creates a retryable query error.
func NewBackendQueryFailedError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendQueryFailed,
		Message:   fmt.Sprintf("%s query error", backend),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewBackendTimeoutError creates a retryable timeout error.
func NewBackendTimeoutError(backend string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendTimeout,
		Message:   fmt.Sprintf("%s timeout", backend),
		Details:   err.Error(),
		Retryable: true,
		Metadata:  map[string]interface{}{"backend": backend},
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewConfigInvalidError wraps a configuration problem.
func NewConfigInvalidError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeConfigInvalid,
		Message:   "Configuration is invalid",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// GetRetryCount returns the recommended retry count for a code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeBackendConnectionFailed, ErrCodeBackendQueryFailed:
		return 3
	case ErrCodeBackendTimeout:
		return 2
	default:
		return 0
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// IsRetryable reports whether err, or any StandardError it wraps, is retryable.
func IsRetryable(err error) bool {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	return false
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "DICTIONARY"):
		return "DICTIONARY"
	case strings.Contains(codeStr, "RECORD"):
		return "RECORD"
	case strings.Contains(codeStr, "KNOWLEDGE"):
		return "KNOWLEDGE"
	case strings.Contains(codeStr, "BACKEND"):
		return "BACKEND"
	case strings.Contains(codeStr, "CONFIG"):
		return "CONFIG"
	default:
		return "OTHER"
	}
}

// Normalize ensures we always have a StandardError.
func Normalize(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}
