package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// openStatusClause excludes collected and bounced documents.
const openStatusClause = " AND d.status NOT IN ('collected', 'bounced')"

// GetStatusSummary groups matching documents by status and currency
func (r *reportingRepository) GetStatusSummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.StatusSummary, error) {
	whereClause, args := documentFilterClause(filter, nil)
	query := `
		SELECT d.status, d.currency_code, COUNT(*), COALESCE(SUM(d.amount), 0)
		FROM documents d
		LEFT JOIN parties p ON p.party_id = d.party_id
		WHERE TRUE` + whereClause + `
		GROUP BY d.status, d.currency_code
		ORDER BY CASE d.status
			WHEN 'portfolio' THEN 1 WHEN 'at_bank' THEN 2 WHEN 'endorsed' THEN 3
			WHEN 'collected' THEN 4 ELSE 5 END, d.currency_code
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying status summary: %w", err)
	}
	defer rows.Close()

	result := []domain.StatusSummary{}
	for rows.Next() {
		var row domain.StatusSummary
		var status string
		if err := rows.Scan(&status, &row.CurrencyCode, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning status summary row: %w", err)
		}
		row.Status = domain.DocumentStatus(status)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating status summary rows: %w", err)
	}
	return result, nil
}

// GetPartySummary groups open documents by party and currency, largest exposure first
func (r *reportingRepository) GetPartySummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error) {
	whereClause, args := documentFilterClause(filter, nil)
	query := `
		SELECT d.party_id, p.name, d.currency_code, COUNT(*), COALESCE(SUM(d.amount), 0)
		FROM documents d
		JOIN parties p ON p.party_id = d.party_id
		WHERE TRUE` + openStatusClause + whereClause + `
		GROUP BY d.party_id, p.name, d.currency_code
		ORDER BY SUM(d.amount) DESC, p.name, d.currency_code
	`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying party summary: %w", err)
	}
	defer rows.Close()

	result := []domain.PartySummary{}
	for rows.Next() {
		var row domain.PartySummary
		if err := rows.Scan(&row.PartyID, &row.PartyName, &row.CurrencyCode, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning party summary row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating party summary rows: %w", err)
	}
	return result, nil
}

// GetMonthlyDue groups every document due in year by month and currency
func (r *reportingRepository) GetMonthlyDue(ctx context.Context, year int) ([]domain.MonthlyDue, error) {
	query := `
		SELECT EXTRACT(MONTH FROM due_date)::int AS month, currency_code, COUNT(*), COALESCE(SUM(amount), 0)
		FROM documents
		WHERE EXTRACT(YEAR FROM due_date)::int = $1
		GROUP BY month, currency_code
		ORDER BY month, currency_code
	`
	rows, err := r.Pool.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("error querying monthly due totals: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlyDue{}
	for rows.Next() {
		var row domain.MonthlyDue
		if err := rows.Scan(&row.Month, &row.CurrencyCode, &row.Count, &row.TotalAmount); err != nil {
			return nil, fmt.Errorf("error scanning monthly due row: %w", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly due rows: %w", err)
	}
	return result, nil
}
