package knowledge

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"medical-qa-bot/internal/common/config"
	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeSource struct {
	calls   int32
	results []func() (*LoadResult, error)
}

func (f *fakeSource) Name() string { return "fake" }

func (f *fakeSource) Load(ctx context.Context) (*LoadResult, error) {
	n := int(atomic.AddInt32(&f.calls, 1)) - 1
	if n >= len(f.results) {
		n = len(f.results) - 1
	}
	return f.results[n]()
}

type countingRecorder struct {
	codes []string
}

func (r *countingRecorder) RecordLoadError(source, code string) {
	r.codes = append(r.codes, code)
}

func createTestKnowledgeConfig() config.KnowledgeConfig {
	return config.KnowledgeConfig{
		Backend:     config.BackendFile,
		LoadTimeout: 2000,
		MaxRetries:  3,
		RetryDelay:  1,
	}
}

func ok(records ...models.KnowledgeRecord) func() (*LoadResult, error) {
	return func() (*LoadResult, error) { return &LoadResult{Records: records}, nil }
}

func fail(err error) func() (*LoadResult, error) {
	return func() (*LoadResult, error) { return nil, err }
}

// ==========================
// Core Functionality Tests
// ==========================

func TestLoader_Load_File(t *testing.T) {
	recorder := &countingRecorder{}
	diag := apperrors.NewDiagnosticHandler(logger.NewTestLogger(t), recorder)
	source := NewFileSource(filepath.Join("testdata", "medical.json"))

	store, err := NewLoader(createTestKnowledgeConfig(), source, logger.NewTestLogger(t), diag).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, store.Len())
	rec, found := store.Lookup("感冒")
	require.True(t, found)
	assert.Equal(t, "第二条感冒记录。", rec.Desc, "later duplicate replaces earlier record")

	assert.ElementsMatch(t, []string{
		"KNOWLEDGE_RECORD_MALFORMED",
		"KNOWLEDGE_RECORD_INVALID",
		"KNOWLEDGE_RECORD_INVALID",
	}, recorder.codes)
}

func TestLoader_Load_RetriesRetryableErrors(t *testing.T) {
	source := &fakeSource{results: []func() (*LoadResult, error){
		fail(apperrors.NewBackendQueryFailedError("postgres", fmt.Errorf("connection refused"))),
		fail(apperrors.NewBackendQueryFailedError("postgres", fmt.Errorf("connection refused"))),
		ok(models.KnowledgeRecord{Name: "感冒"}),
	}}

	store, err := NewLoader(createTestKnowledgeConfig(), source, logger.NewTestLogger(t), nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.calls))
}

// ==========================
// Error Handling Tests
// ==========================

func TestLoader_Load_ExhaustedRetriesGiveEmptyStore(t *testing.T) {
	recorder := &countingRecorder{}
	diag := apperrors.NewDiagnosticHandler(logger.NewTestLogger(t), recorder)
	source := &fakeSource{results: []func() (*LoadResult, error){
		fail(apperrors.NewBackendQueryFailedError("redis", fmt.Errorf("i/o timeout"))),
	}}

	store, err := NewLoader(createTestKnowledgeConfig(), source, logger.NewTestLogger(t), diag).Load(context.Background())

	require.Error(t, err)
	require.NotNil(t, store)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int32(3), atomic.LoadInt32(&source.calls))
	assert.Equal(t, []string{"BACKEND_QUERY_FAILED"}, recorder.codes)
}

func TestLoader_Load_NonRetryableStopsImmediately(t *testing.T) {
	source := &fakeSource{results: []func() (*LoadResult, error){
		fail(apperrors.NewKnowledgeLoadFailedError("fake", errors.New("permission denied"))),
	}}

	store, err := NewLoader(createTestKnowledgeConfig(), source, logger.NewTestLogger(t), nil).Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, 0, store.Len())
	assert.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
}

func TestLoader_Load_MissingFile(t *testing.T) {
	source := NewFileSource(filepath.Join(t.TempDir(), "medical.json"))

	store, err := NewLoader(createTestKnowledgeConfig(), source, logger.NewNoOpLogger(), nil).Load(context.Background())

	require.Error(t, err)
	_, found := store.Lookup("感冒")
	assert.False(t, found)
}

func TestClassifyBackendError(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(classifyBackendError(ctx, "redis", ctx.Err()), &stdErr))
	assert.Equal(t, apperrors.ErrCodeBackendTimeout, stdErr.Code)

	require.True(t, errors.As(classifyBackendError(context.Background(), "redis", context.Canceled), &stdErr))
	assert.Equal(t, apperrors.ErrCodeKnowledgeLoadFailed, stdErr.Code)

	require.True(t, errors.As(classifyBackendError(context.Background(), "redis", errors.New("boom")), &stdErr))
	assert.Equal(t, apperrors.ErrCodeBackendQueryFailed, stdErr.Code)
}
