// internal/knowledge/loader.go
package knowledge

import (
	"context"
	"errors"
	"time"

	"medical-qa-bot/internal/common/config"
	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/common/logger"

	"github.com/avast/retry-go/v4"
)

// Source produces knowledge records once, at startup.
type Source interface {
	Name() string
	Load(ctx context.Context) (*LoadResult, error)
}

// Loader fills a MemoryStore from a Source. It never fails: an unusable
// source yields an empty store and a diagnostic.
type Loader struct {
	source      Source
	timeout     time.Duration
	attempts    uint
	retryDelay  time.Duration
	logger      logger.Logger
	diagnostics *apperrors.DiagnosticHandler
}

func NewLoader(cfg config.KnowledgeConfig, source Source, log logger.Logger, diagnostics *apperrors.DiagnosticHandler) *Loader {
	attempts := cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	return &Loader{
		source:      source,
		timeout:     config.GetDuration(cfg.LoadTimeout),
		attempts:    uint(attempts),
		retryDelay:  config.GetDuration(cfg.RetryDelay),
		logger:      log.With(map[string]interface{}{"source": source.Name()}),
		diagnostics: diagnostics,
	}
}

// Load returns the populated store and the last fatal source error, if any.
func (l *Loader) Load(ctx context.Context) (*MemoryStore, error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	var result *LoadResult
	err := retry.Do(
		func() error {
			var loadErr error
			result, loadErr = l.source.Load(ctx)
			return loadErr
		},
		retry.Context(ctx),
		retry.Attempts(l.attempts),
		retry.Delay(l.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(apperrors.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			l.logger.Warn("Knowledge source failed, retrying", map[string]interface{}{
				"attempt": n + 1,
				"error":   err.Error(),
			})
		}),
	)
	if err != nil {
		l.report(err)
		l.logger.Warn("Knowledge store is empty; every lookup will miss", nil)
		return EmptyStore(), err
	}

	for _, skipped := range result.Skipped {
		l.report(skipped)
	}

	store := NewMemoryStore(result.Records)
	if dups := len(result.Records) - store.Len(); dups > 0 {
		l.logger.Debug("Duplicate record names replaced by later records", map[string]interface{}{"duplicates": dups})
	}
	l.logger.Info("Knowledge store ready", map[string]interface{}{
		"records":  store.Len(),
		"skipped":  len(result.Skipped),
		"duration": time.Since(start).String(),
	})
	return store, nil
}

func (l *Loader) report(err error) {
	if l.diagnostics != nil {
		l.diagnostics.Report(l.source.Name(), err)
	}
}

// classifyBackendError maps driver errors to StandardErrors so the loader knows what to retry.
func classifyBackendError(ctx context.Context, backend string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apperrors.NewBackendTimeoutError(backend, err)
	}
	if errors.Is(err, context.Canceled) {
		return apperrors.NewKnowledgeLoadFailedError(backend, err)
	}
	return apperrors.NewBackendQueryFailedError(backend, err)
}
