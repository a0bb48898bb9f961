// Package app assembles the question answering pipeline from configuration.
package app

import (
	"context"
	"fmt"

	"medical-qa-bot/internal/classifier"
	"medical-qa-bot/internal/common/config"
	"medical-qa-bot/internal/common/database"
	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/common/logger"
	"medical-qa-bot/internal/common/metrics"
	"medical-qa-bot/internal/dictionary"
	"medical-qa-bot/internal/knowledge"
	"medical-qa-bot/internal/models"
	"medical-qa-bot/internal/pipeline"

	"github.com/jmoiron/sqlx"
)

// App owns the loaded stores and any backend connections.
type App struct {
	Config     *config.Config
	Dictionary *dictionary.Store
	Knowledge  *knowledge.MemoryStore
	Pipeline   *pipeline.Pipeline

	logger  logger.Logger
	closers []func() error
}

type options struct {
	observer pipeline.Observer
	source   knowledge.Source
}

// Option customises New.
type Option func(*options)

// WithObserver attaches answer timing instrumentation.
func WithObserver(o pipeline.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithSource replaces the configured knowledge backend.
func WithSource(s knowledge.Source) Option {
	return func(opts *options) { opts.source = s }
}

// New loads dictionaries and knowledge records and wires the pipeline.
// Missing or malformed data only produces diagnostics; an error is
// returned only when a backend client cannot be constructed.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, opts ...Option) (*App, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	a := &App{Config: cfg, logger: log}
	recorder := metrics.NewRecorder()
	diagnostics := apperrors.NewDiagnosticHandler(log, recorder)

	dict, err := dictionary.NewLoader(cfg.Data, log, diagnostics).Load()
	if err != nil {
		log.Warn("Some dictionaries could not be loaded", map[string]interface{}{"error": err.Error()})
	}
	a.Dictionary = dict
	for _, category := range models.AllCategories {
		recorder.SetStoreEntries("dictionary:"+string(category), dict.Len(category))
	}

	source := o.source
	if source == nil {
		var closeFn func() error
		source, closeFn, err = OpenSource(cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeFn)
	}

	store, err := knowledge.NewLoader(cfg.Knowledge, source, log, diagnostics).Load(ctx)
	if err != nil {
		log.Warn("Knowledge records could not be loaded", map[string]interface{}{
			"source": source.Name(),
			"error":  err.Error(),
		})
	}
	a.Knowledge = store
	recorder.SetStoreEntries("knowledge", store.Len())

	pipelineOpts := []pipeline.Option{
		pipeline.WithLogger(log),
		pipeline.WithRecorder(recorder),
	}
	if o.observer != nil {
		pipelineOpts = append(pipelineOpts, pipeline.WithObserver(o.observer))
	}
	a.Pipeline = pipeline.New(classifier.New(dict), store, pipelineOpts...)

	return a, nil
}

func noopClose() error { return nil }

// OpenSource builds the knowledge source selected by cfg.Knowledge.Backend.
// The returned close function releases the backend client.
func OpenSource(cfg *config.Config) (knowledge.Source, func() error, error) {
	switch cfg.Knowledge.Backend {
	case config.BackendPostgres:
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, err
		}
		db := sqlx.NewDb(pg.DB, "postgres")
		return knowledge.NewPostgresSource(db, cfg.Knowledge.Table, cfg.Knowledge.MaxRecords), pg.Close, nil

	case config.BackendElasticsearch:
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, nil, err
		}
		return knowledge.NewElasticsearchSource(es.Client, cfg.Knowledge.Index, cfg.Knowledge.MaxRecords), noopClose, nil

	case config.BackendRedis:
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, err
		}
		return knowledge.NewRedisSource(rdb.Client, cfg.Knowledge.RedisKey), rdb.Close, nil

	case config.BackendFile, "":
		return knowledge.NewFileSource(cfg.Data.KnowledgeFile), noopClose, nil
	}
	return nil, nil, apperrors.NewConfigInvalidError(fmt.Errorf("unknown knowledge backend %q", cfg.Knowledge.Backend))
}

// Close releases backend connections. The loaded stores stay usable.
func (a *App) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("Failed to close backend connection", map[string]interface{}{"error": err.Error()})
		}
	}
	a.closers = nil
}
