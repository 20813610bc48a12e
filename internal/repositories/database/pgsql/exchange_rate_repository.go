package pgsql

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	"github.com/SscSPs/cek_senet_app/internal/models"
	"github.com/SscSPs/cek_senet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores every fetched rate snapshot so a later outage can fall back to it.
type PgxExchangeRateRepository struct {
	BaseRepository
}

func newPgxExchangeRateRepository(db *pgxpool.Pool) portsrepo.ExchangeRateRepositoryFacade {
	return &PgxExchangeRateRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

// SaveRateTable writes all quotes of the snapshot in a single batch. Re-saving a snapshot is a no-op.
func (r *PgxExchangeRateRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	query := `
		INSERT INTO exchange_rates (currency_code, unit, buying, selling, rate_date, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (fetched_at, currency_code) DO NOTHING;
	`
	for _, m := range mapping.ToModelExchangeRates(table) {
		batch.Queue(query, m.CurrencyCode, m.Unit, m.Buying, m.Selling, m.RateDate, m.FetchedAt)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to save exchange rate snapshot", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxExchangeRateRepository) FindLatestRateTable(ctx context.Context) (*domain.RateTable, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT currency_code, unit, buying, selling, rate_date, fetched_at
		FROM exchange_rates
		WHERE fetched_at = (SELECT MAX(fetched_at) FROM exchange_rates)
		ORDER BY currency_code;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query latest exchange rates", err)
	}
	defer rows.Close()

	var ms []models.ExchangeRate
	for rows.Next() {
		var m models.ExchangeRate
		if err := rows.Scan(&m.CurrencyCode, &m.Unit, &m.Buying, &m.Selling, &m.RateDate, &m.FetchedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan exchange rate row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating exchange rate rows", err)
	}

	table := mapping.ToDomainRateTable(ms)
	if table == nil {
		return nil, apperrors.ErrNotFound
	}
	return table, nil
}
