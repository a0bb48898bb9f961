// internal/knowledge/postgres.go
package knowledge

import (
	"context"
	"fmt"

	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const backendPostgres = "postgres"

// PostgresSource reads records from a table with one row per disease.
// symptom and cure_way are JSONB arrays.
type PostgresSource struct {
	db         *sqlx.DB
	table      string
	maxRecords int
}

func NewPostgresSource(db *sqlx.DB, table string, maxRecords int) *PostgresSource {
	return &PostgresSource{db: db, table: table, maxRecords: maxRecords}
}

func (s *PostgresSource) Name() string {
	return "postgres:" + s.table
}

func (s *PostgresSource) selectQuery() string {
	return fmt.Sprintf(`SELECT name,
		COALESCE(symptom, '[]') AS symptom,
		COALESCE(cause, '') AS cause,
		COALESCE(cure_way, '[]') AS cure_way,
		COALESCE(cure_lasttime, '') AS cure_lasttime,
		COALESCE(cured_prob, '') AS cured_prob,
		COALESCE(description, '') AS description
	FROM %s ORDER BY name LIMIT $1`, pq.QuoteIdentifier(s.table))
}

func (s *PostgresSource) Load(ctx context.Context) (*LoadResult, error) {
	var rows []models.KnowledgeRecord
	if err := s.db.SelectContext(ctx, &rows, s.selectQuery(), s.maxRecords); err != nil {
		return nil, classifyBackendError(ctx, backendPostgres, err)
	}

	decoder := newRecordDecoder(s.Name())
	result := &LoadResult{}
	for i := range rows {
		raw, err := json.Marshal(&rows[i])
		if err != nil {
			result.skip(apperrors.NewRecordMalformedError(s.Name(), i+1, err))
			continue
		}
		rec, err := decoder.decode(raw, i+1)
		if err != nil {
			result.skip(err)
			continue
		}
		result.Records = append(result.Records, *rec)
	}
	return result, nil
}

// EnsurePostgresTable creates the knowledge table if it does not exist.
func EnsurePostgresTable(ctx context.Context, db *sqlx.DB, table string) error {
	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name TEXT PRIMARY KEY,
		symptom JSONB,
		cause TEXT,
		cure_way JSONB,
		cure_lasttime TEXT,
		cured_prob TEXT,
		description TEXT
	)`, pq.QuoteIdentifier(table))
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return apperrors.NewBackendQueryFailedError(backendPostgres, err)
	}
	return nil
}

// SeedPostgres upserts records in one transaction.
func SeedPostgres(ctx context.Context, db *sqlx.DB, table string, records []models.KnowledgeRecord) error {
	upsert := fmt.Sprintf(`INSERT INTO %s (name, symptom, cause, cure_way, cure_lasttime, cured_prob, description)
		VALUES (:name, :symptom, :cause, :cure_way, :cure_lasttime, :cured_prob, :description)
		ON CONFLICT (name) DO UPDATE SET
			symptom = EXCLUDED.symptom,
			cause = EXCLUDED.cause,
			cure_way = EXCLUDED.cure_way,
			cure_lasttime = EXCLUDED.cure_lasttime,
			cured_prob = EXCLUDED.cured_prob,
			description = EXCLUDED.description`, pq.QuoteIdentifier(table))

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return apperrors.NewBackendConnectionFailedError(backendPostgres, err)
	}
	for i := range records {
		if _, err := tx.NamedExecContext(ctx, upsert, &records[i]); err != nil {
			_ = tx.Rollback()
			return apperrors.NewBackendQueryFailedError(backendPostgres, fmt.Errorf("record %q: %w", records[i].Name, err))
		}
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewBackendQueryFailedError(backendPostgres, err)
	}
	return nil
}
