package pgsql

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTx records the statements run against it. Methods not overridden panic
// through the nil embedded interface.
type fakeTx struct {
	pgx.Tx

	updateTag  pgconn.CommandTag
	insertErr  error
	exists     bool
	statements []string
	committed  bool
	rolledBack bool
}

func (f *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	sql = strings.TrimSpace(sql)
	f.statements = append(f.statements, sql)
	if strings.HasPrefix(sql, "UPDATE documents") {
		return f.updateTag, nil
	}
	return pgconn.NewCommandTag("INSERT 0 1"), f.insertErr
}

func (f *fakeTx) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	f.statements = append(f.statements, strings.TrimSpace(sql))
	return existsRow{exists: f.exists}
}

func (f *fakeTx) Commit(context.Context) error {
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type existsRow struct{ exists bool }

func (r existsRow) Scan(dest ...any) error {
	*dest[0].(*bool) = r.exists
	return nil
}

func transitionEntry() domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		HistoryID:  "h1",
		DocumentID: "d1",
		FromStatus: domain.StatusPortfolio,
		ToStatus:   domain.StatusCollected,
		ActorID:    "u1",
		CreatedAt:  time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func countPrefix(statements []string, prefix string) int {
	n := 0
	for _, s := range statements {
		if strings.HasPrefix(s, prefix) {
			n++
		}
	}
	return n
}

func TestTransitionStatusTx_CommitsUpdateAndHistory(t *testing.T) {
	repo := &PgxDocumentRepository{}
	tx := &fakeTx{updateTag: pgconn.NewCommandTag("UPDATE 1")}

	require.NoError(t, repo.transitionStatusTx(context.Background(), tx, transitionEntry()))

	assert.Equal(t, 1, countPrefix(tx.statements, "UPDATE documents"))
	assert.Equal(t, 1, countPrefix(tx.statements, "INSERT INTO document_status_history"))
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestTransitionStatusTx_StatusChangedConcurrently(t *testing.T) {
	repo := &PgxDocumentRepository{}
	tx := &fakeTx{updateTag: pgconn.NewCommandTag("UPDATE 0"), exists: true}

	err := repo.transitionStatusTx(context.Background(), tx, transitionEntry())

	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Zero(t, countPrefix(tx.statements, "INSERT INTO document_status_history"))
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestTransitionStatusTx_MissingDocument(t *testing.T) {
	repo := &PgxDocumentRepository{}
	tx := &fakeTx{updateTag: pgconn.NewCommandTag("UPDATE 0"), exists: false}

	err := repo.transitionStatusTx(context.Background(), tx, transitionEntry())

	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Zero(t, countPrefix(tx.statements, "INSERT INTO document_status_history"))
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestTransitionStatusTx_HistoryInsertFailureRollsBack(t *testing.T) {
	repo := &PgxDocumentRepository{}
	tx := &fakeTx{updateTag: pgconn.NewCommandTag("UPDATE 1"), insertErr: errors.New("disk full")}

	err := repo.transitionStatusTx(context.Background(), tx, transitionEntry())

	require.Error(t, err)
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}
