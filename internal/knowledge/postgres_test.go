package knowledge

import (
	"context"
	"errors"
	"fmt"
	"testing"

	apperrors "medical-qa-bot/internal/common/errors"
	"medical-qa-bot/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{"name", "symptom", "cause", "cure_way", "cure_lasttime", "cured_prob", "description"}

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestPostgresSource_Load(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`(?s)SELECT name,.*FROM "medical_records" ORDER BY name LIMIT \$1`).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("感冒", `["发热","咳嗽"]`, "病毒感染", `["药物治疗"]`, "7天", "95%", "常见病").
			AddRow("", `[]`, "", `[]`, "", "", "").
			AddRow("肺癌", []byte(`[]`), "", []byte(`["手术治疗"]`), "", "", ""))

	result, err := NewPostgresSource(db, "medical_records", 100).Load(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Records, 2)
	assert.Equal(t, "感冒", result.Records[0].Name)
	assert.Equal(t, models.StringList{"发热", "咳嗽"}, result.Records[0].Symptom)
	assert.Equal(t, "常见病", result.Records[0].Desc)
	assert.Equal(t, models.StringList{"手术治疗"}, result.Records[1].CureWay)

	require.Len(t, result.Skipped, 1)
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(result.Skipped[0], &stdErr))
	assert.Equal(t, apperrors.ErrCodeKnowledgeRecordInvalid, stdErr.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_Load_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectQuery(`SELECT name`).WillReturnError(fmt.Errorf("postgres: connection refused"))

	_, err := NewPostgresSource(db, "medical_records", 100).Load(context.Background())
	require.Error(t, err)

	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, apperrors.ErrCodeBackendQueryFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, "connection refused")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsurePostgresTable(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "medical_records"`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, EnsurePostgresTable(context.Background(), db, "medical_records"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgres(t *testing.T) {
	db, mock := setupMockDB(t)
	records := []models.KnowledgeRecord{
		{Name: "感冒", Symptom: models.StringList{"发热"}, Cause: "病毒感染"},
		{Name: "肺癌", CureWay: models.StringList{"手术治疗"}},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "medical_records"`).
		WithArgs("感冒", `["发热"]`, "病毒感染", `[]`, "", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "medical_records"`).
		WithArgs("肺癌", `[]`, "", `["手术治疗"]`, "", "", "").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, SeedPostgres(context.Background(), db, "medical_records", records))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPostgres_RollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "medical_records"`).WillReturnError(fmt.Errorf("duplicate key"))
	mock.ExpectRollback()

	err := SeedPostgres(context.Background(), db, "medical_records", []models.KnowledgeRecord{{Name: "感冒"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres query error")
	assert.NoError(t, mock.ExpectationsWereMet())
}
