package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/SscSPs/cek_senet_app/internal/models"
	"github.com/SscSPs/cek_senet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const creditColumns = `credit_id, lender_name, description, principal, annual_rate, term_months, start_date,
	currency_code, monthly_payment, created_at, created_by, last_updated_at, last_updated_by`

const installmentColumns = `installment_id, credit_id, sequence_number, due_date, amount, paid_amount, status, paid_at`

type PgxCreditRepository struct {
	BaseRepository
}

func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryWithTx {
	return &PgxCreditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CreditRepositoryWithTx = (*PgxCreditRepository)(nil)

func scanCredit(row pgx.Row) (models.Credit, error) {
	var m models.Credit
	err := row.Scan(
		&m.CreditID, &m.LenderName, &m.Description, &m.Principal, &m.AnnualRate, &m.TermMonths, &m.StartDate,
		&m.CurrencyCode, &m.MonthlyPayment, &m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveCredit inserts the credit row and bulk-copies its installments in one transaction.
func (r *PgxCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelCredit(credit)
	_, err = tx.Exec(ctx, `
		INSERT INTO credits (`+creditColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`,
		m.CreditID, m.LenderName, m.Description, m.Principal, m.AnnualRate, m.TermMonths, m.StartDate,
		m.CurrencyCode, m.MonthlyPayment, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert credit "+m.CreditID, err)
	}

	_, err = tx.CopyFrom(ctx,
		pgx.Identifier{"installments"},
		[]string{"installment_id", "credit_id", "sequence_number", "due_date", "amount", "paid_amount", "status", "paid_at"},
		pgx.CopyFromSlice(len(credit.Installments), func(i int) ([]any, error) {
			inst := mapping.ToModelInstallment(credit.Installments[i])
			return []any{inst.InstallmentID, inst.CreditID, inst.SequenceNumber, inst.DueDate,
				inst.Amount, inst.PaidAmount, inst.Status, inst.PaidAt}, nil
		}),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to copy installments for credit "+m.CreditID, err)
	}

	return r.Commit(ctx, tx)
}

func (r *PgxCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	m, err := scanCredit(r.Pool.QueryRow(ctx, `SELECT `+creditColumns+` FROM credits WHERE credit_id = $1;`, creditID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find credit by ID "+creditID, err)
	}
	credit := mapping.ToDomainCredit(m)

	credit.Installments, err = r.queryInstallments(ctx,
		`SELECT `+installmentColumns+` FROM installments WHERE credit_id = $1 ORDER BY sequence_number ASC;`, creditID)
	if err != nil {
		return nil, err
	}
	return &credit, nil
}

func (r *PgxCreditRepository) ListCredits(ctx context.Context, limit int, offset int) ([]domain.Credit, error) {
	query := `SELECT ` + creditColumns + ` FROM credits ORDER BY created_at DESC, credit_id ASC`
	var args []any
	if limit > 0 {
		if offset < 0 {
			offset = 0
		}
		query += " LIMIT $1 OFFSET $2"
		args = append(args, limit, offset)
	}

	rows, err := r.Pool.Query(ctx, query+";", args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credits", err)
	}
	defer rows.Close()

	credits := []domain.Credit{}
	for rows.Next() {
		m, err := scanCredit(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan credit row", err)
		}
		credits = append(credits, mapping.ToDomainCredit(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating credit rows", err)
	}
	return credits, nil
}

func (r *PgxCreditRepository) FindInstallmentByID(ctx context.Context, creditID, installmentID string) (*domain.Installment, error) {
	insts, err := r.queryInstallments(ctx,
		`SELECT `+installmentColumns+` FROM installments WHERE credit_id = $1 AND installment_id = $2;`, creditID, installmentID)
	if err != nil {
		return nil, err
	}
	if len(insts) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return &insts[0], nil
}

func (r *PgxCreditRepository) FindAllInstallments(ctx context.Context) ([]domain.Installment, error) {
	return r.queryInstallments(ctx, `SELECT `+installmentColumns+` FROM installments ORDER BY credit_id ASC, sequence_number ASC;`)
}

func (r *PgxCreditRepository) queryInstallments(ctx context.Context, query string, args ...any) ([]domain.Installment, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query installments", err)
	}
	defer rows.Close()

	insts := []domain.Installment{}
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(&m.InstallmentID, &m.CreditID, &m.SequenceNumber, &m.DueDate,
			&m.Amount, &m.PaidAmount, &m.Status, &m.PaidAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan installment row", err)
		}
		insts = append(insts, mapping.ToDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating installment rows", err)
	}
	return insts, nil
}

func (r *PgxCreditRepository) UpdateInstallmentPayment(ctx context.Context, installment domain.Installment, expected domain.InstallmentStatus) error {
	m := mapping.ToModelInstallment(installment)
	cmdTag, err := r.Pool.Exec(ctx, `
		UPDATE installments
		SET paid_amount = $1, status = $2, paid_at = $3
		WHERE credit_id = $4 AND installment_id = $5 AND status = $6;`,
		m.PaidAmount, m.Status, m.PaidAt, m.CreditID, m.InstallmentID, string(expected),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update installment "+m.InstallmentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		if _, err := r.FindInstallmentByID(ctx, m.CreditID, m.InstallmentID); err != nil {
			return err
		}
		return fmt.Errorf("installment %s is no longer %s: %w", m.InstallmentID, expected, apperrors.ErrConflict)
	}
	return nil
}

// DeleteCredit relies on ON DELETE CASCADE to drop the installments.
func (r *PgxCreditRepository) DeleteCredit(ctx context.Context, creditID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM credits WHERE credit_id = $1;`, creditID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete credit "+creditID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
