package repositories

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// ExchangeRateReader defines read operations for persisted rate snapshots
type ExchangeRateReader interface {
	// FindLatestRateTable returns the most recently fetched snapshot, or apperrors.ErrNotFound.
	FindLatestRateTable(ctx context.Context) (*domain.RateTable, error)
}

// ExchangeRateWriter defines write operations for rate snapshots
type ExchangeRateWriter interface {
	// SaveRateTable persists every quote of a snapshot.
	SaveRateTable(ctx context.Context, table domain.RateTable) error
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
