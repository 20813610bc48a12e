package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/SscSPs/cek_senet_app/internal/models"
	"github.com/SscSPs/cek_senet_app/internal/utils/mapping"
	"github.com/SscSPs/cek_senet_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const documentColumns = `
	d.document_id, d.document_type, d.document_number, d.amount, d.currency_code, d.due_date, d.issue_date,
	d.issuer_name, d.bank_name, d.branch_name, d.account_number, d.party_id, p.name, d.direction, d.status, d.notes,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by`

const documentFrom = `
	FROM documents d
	LEFT JOIN parties p ON p.party_id = d.party_id`

type PgxDocumentRepository struct {
	BaseRepository
}

func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryWithTx {
	return &PgxDocumentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxDocumentRepository implements portsrepo.DocumentRepositoryWithTx
var _ portsrepo.DocumentRepositoryWithTx = (*PgxDocumentRepository)(nil)

func scanDocument(row pgx.Row) (models.Document, error) {
	var m models.Document
	err := row.Scan(
		&m.DocumentID,
		&m.DocumentType,
		&m.DocumentNumber,
		&m.Amount,
		&m.CurrencyCode,
		&m.DueDate,
		&m.IssueDate,
		&m.IssuerName,
		&m.BankName,
		&m.BranchName,
		&m.AccountNumber,
		&m.PartyID,
		&m.PartyName,
		&m.Direction,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// documentFilterClause renders filter as " AND ..." conditions on the d/p aliases,
// numbering placeholders after the args already present.
func documentFilterClause(filter domain.DocumentFilter, args []any) (string, []any) {
	var b strings.Builder
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		b.WriteString(" AND d.status = " + next(string(*filter.Status)))
	}
	if filter.DocumentType != nil {
		b.WriteString(" AND d.document_type = " + next(string(*filter.DocumentType)))
	}
	if filter.Direction != nil {
		b.WriteString(" AND d.direction = " + next(string(*filter.Direction)))
	}
	if filter.PartyID != nil {
		b.WriteString(" AND d.party_id = " + next(*filter.PartyID))
	}
	if filter.DueFrom != nil {
		b.WriteString(" AND d.due_date >= " + next(*filter.DueFrom))
	}
	if filter.DueTo != nil {
		b.WriteString(" AND d.due_date <= " + next(*filter.DueTo))
	}
	if s := strings.TrimSpace(filter.Search); s != "" {
		p := next("%" + s + "%")
		b.WriteString(" AND (d.document_number ILIKE " + p + " OR d.issuer_name ILIKE " + p +
			" OR d.bank_name ILIKE " + p + " OR p.name ILIKE " + p + ")")
	}
	return b.String(), args
}

func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		INSERT INTO documents (
			document_id, document_type, document_number, amount, currency_code, due_date, issue_date,
			issuer_name, bank_name, branch_name, account_number, party_id, direction, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.DocumentID, m.DocumentType, m.DocumentNumber, m.Amount, m.CurrencyCode, m.DueDate, m.IssueDate,
		m.IssuerName, m.BankName, m.BranchName, m.AccountNumber, m.PartyID, m.Direction, m.Status, m.Notes,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if hasSQLState(err, pgUniqueViolation) {
			return fmt.Errorf("document number %s: %w", m.DocumentNumber, apperrors.ErrDuplicate)
		}
		if hasSQLState(err, pgForeignKeyViolation) {
			return apperrors.NewValidationError("party does not exist")
		}
		return apperrors.NewAppError(500, "failed to insert document "+m.DocumentID, err)
	}
	return nil
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := "SELECT " + documentColumns + documentFrom + " WHERE d.document_id = $1;"
	m, err := scanDocument(r.Pool.QueryRow(ctx, query, documentID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find document by ID "+documentID, err)
	}
	d := mapping.ToDomainDocument(m)
	return &d, nil
}

// ListDocuments pages through documents ordered by due date, creation time and ID.
func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	whereClause, args := documentFilterClause(filter, nil)
	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, cursor.DueDate, cursor.CreatedAt, cursor.DocumentID)
		n := len(args)
		whereClause += " AND (d.due_date, d.created_at, d.document_id) > ($" + strconv.Itoa(n-2) +
			", $" + strconv.Itoa(n-1) + ", $" + strconv.Itoa(n) + ")"
	}
	args = append(args, fetchLimit)
	query := "SELECT " + documentColumns + documentFrom + " WHERE TRUE" + whereClause +
		" ORDER BY d.due_date ASC, d.created_at ASC, d.document_id ASC LIMIT $" + strconv.Itoa(len(args)) + ";"

	ms, err := r.queryDocuments(ctx, query, args...)
	if err != nil {
		return nil, nil, err
	}

	var next *string
	if len(ms) > limit {
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.DocumentCursor{
			DueDate:    last.DueDate,
			CreatedAt:  last.CreatedAt,
			DocumentID: last.DocumentID,
		})
		next = &token
		ms = ms[:limit]
	}
	return mapping.ToDomainDocumentSlice(ms), next, nil
}

func (r *PgxDocumentRepository) FindAllDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	whereClause, args := documentFilterClause(filter, nil)
	query := "SELECT " + documentColumns + documentFrom + " WHERE TRUE" + whereClause +
		" ORDER BY d.due_date ASC, d.created_at ASC, d.document_id ASC;"
	ms, err := r.queryDocuments(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return mapping.ToDomainDocumentSlice(ms), nil
}

func (r *PgxDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query documents", err)
	}
	defer rows.Close()

	ms := []models.Document{}
	for rows.Next() {
		m, err := scanDocument(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan document row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating document rows", err)
	}
	return ms, nil
}

func (r *PgxDocumentRepository) CountDocumentsByParty(ctx context.Context, partyID string) (int, error) {
	var count int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE party_id = $1;`, partyID).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count documents for party "+partyID, err)
	}
	return count, nil
}

func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	m := mapping.ToModelDocument(document)
	query := `
		UPDATE documents
		SET document_type = $1, document_number = $2, amount = $3, currency_code = $4, due_date = $5,
		    issue_date = $6, issuer_name = $7, bank_name = $8, branch_name = $9, account_number = $10,
		    party_id = $11, direction = $12, notes = $13, last_updated_at = $14, last_updated_by = $15
		WHERE document_id = $16;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.DocumentType, m.DocumentNumber, m.Amount, m.CurrencyCode, m.DueDate,
		m.IssueDate, m.IssuerName, m.BankName, m.BranchName, m.AccountNumber,
		m.PartyID, m.Direction, m.Notes, m.LastUpdatedAt, m.LastUpdatedBy,
		m.DocumentID,
	)
	if err != nil {
		if hasSQLState(err, pgUniqueViolation) {
			return fmt.Errorf("document number %s: %w", m.DocumentNumber, apperrors.ErrDuplicate)
		}
		if hasSQLState(err, pgForeignKeyViolation) {
			return apperrors.NewValidationError("party does not exist")
		}
		return apperrors.NewAppError(500, "failed to update document "+m.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteDocument relies on ON DELETE CASCADE to drop the document's history.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document "+documentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxDocumentRepository) TransitionStatus(ctx context.Context, entry domain.StatusHistoryEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	return r.transitionStatusTx(ctx, tx, entry)
}

// transitionStatusTx moves the document out of entry.FromStatus and records
// the history row inside tx. Nothing is written unless both statements succeed.
func (r *PgxDocumentRepository) transitionStatusTx(ctx context.Context, tx pgx.Tx, entry domain.StatusHistoryEntry) error {
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	cmdTag, err := tx.Exec(ctx, `
		UPDATE documents
		SET status = $1, last_updated_at = $2, last_updated_by = $3
		WHERE document_id = $4 AND status = $5;`,
		string(entry.ToStatus), entry.CreatedAt, entry.ActorID, entry.DocumentID, string(entry.FromStatus),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of document "+entry.DocumentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM documents WHERE document_id = $1);`, entry.DocumentID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check document "+entry.DocumentID, err)
		}
		if !exists {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("document %s is no longer %s: %w", entry.DocumentID, entry.FromStatus, apperrors.ErrConflict)
	}

	h := mapping.ToModelStatusHistory(entry)
	_, err = tx.Exec(ctx, `
		INSERT INTO document_status_history (history_id, document_id, from_status, to_status, description, actor_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		h.HistoryID, h.DocumentID, h.FromStatus, h.ToStatus, h.Description, h.ActorID, h.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert status history for document "+entry.DocumentID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) FindHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error) {
	return r.queryHistory(ctx, `
		SELECT history_id, document_id, from_status, to_status, description, actor_id, created_at
		FROM document_status_history
		WHERE document_id = $1
		ORDER BY created_at ASC, history_id ASC;`, documentID)
}

func (r *PgxDocumentRepository) FindAllHistory(ctx context.Context) ([]domain.StatusHistoryEntry, error) {
	return r.queryHistory(ctx, `
		SELECT history_id, document_id, from_status, to_status, description, actor_id, created_at
		FROM document_status_history
		ORDER BY created_at ASC, history_id ASC;`)
}

func (r *PgxDocumentRepository) queryHistory(ctx context.Context, query string, args ...any) ([]domain.StatusHistoryEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query status history", err)
	}
	defer rows.Close()

	entries := []domain.StatusHistoryEntry{}
	for rows.Next() {
		var h models.StatusHistory
		if err := rows.Scan(&h.HistoryID, &h.DocumentID, &h.FromStatus, &h.ToStatus, &h.Description, &h.ActorID, &h.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan status history row", err)
		}
		entries = append(entries, mapping.ToDomainStatusHistory(h))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating status history rows", err)
	}
	return entries, nil
}
