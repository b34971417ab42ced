package vector

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supportbrain/backend/internal/domain/knowledge"
)

func newMockStore(t *testing.T) (*PgVectorStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := NewPgVectorStore(db, "support_knowledge")
	require.NoError(t, err)
	return store, mock
}

func TestNewPgVectorStore_RejectsBadTableName(t *testing.T) {
	_, err := NewPgVectorStore(nil, "chunks; DROP TABLE x")
	assert.Error(t, err)
}

func TestPgVectorStore_EnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS vector`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`(?s)CREATE TABLE IF NOT EXISTS support_knowledge .*vector\(1536\)`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IF NOT EXISTS idx_support_knowledge_namespace`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background(), 1536))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgVectorStore_Upsert(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`(?s)INSERT INTO support_knowledge .*ON CONFLICT \(namespace, id\) DO UPDATE`).
		WithArgs("org_1", "t1", sqlmock.AnyArg(), `{"text":"hello"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO support_knowledge`).
		WithArgs("org_1", "t2", sqlmock.AnyArg(), `{"text":"world"}`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Upsert(context.Background(), "org_1", []knowledge.Record{
		{ID: "t1", Vector: []float32{0.1, 0.2}, Metadata: map[string]any{"text": "hello"}},
		{ID: "t2", Vector: []float32{0.3, 0.4}, Metadata: map[string]any{"text": "world"}},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgVectorStore_UpsertRollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO support_knowledge`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := store.Upsert(context.Background(), "org_1", []knowledge.Record{
		{ID: "t1", Vector: []float32{0.1}, Metadata: map[string]any{}},
	})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgVectorStore_Query(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "score", "metadata"}).
		AddRow("t1", 0.91, []byte(`{"text":"refund policy","unix_timestamp":1700000000}`)).
		AddRow("t2", 0.42, []byte(`{}`))
	mock.ExpectQuery(`SELECT id, 1 - \(embedding <=> \$1\) AS score, metadata\s+FROM support_knowledge\s+WHERE namespace = \$2`).
		WithArgs(sqlmock.AnyArg(), "org_1", 5).
		WillReturnRows(rows)

	results, err := store.Query(context.Background(), "org_1", []float32{0.1, 0.2}, 5)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "t1", results[0].ID)
	assert.InDelta(t, 0.91, results[0].Score, 1e-9)
	assert.Equal(t, "refund policy", results[0].Metadata["text"])
	assert.Equal(t, float64(1700000000), results[0].Metadata["unix_timestamp"])
	assert.Empty(t, results[1].Metadata)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgVectorStore_QueryZeroTopK(t *testing.T) {
	store, _ := newMockStore(t)
	results, err := store.Query(context.Background(), "org_1", []float32{0.1}, 0)
	require.NoError(t, err)
	assert.Nil(t, results)
}
