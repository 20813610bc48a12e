package services

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider fetches the current rate table from an external source.
type RateProvider interface {
	FetchRates(ctx context.Context) (*domain.RateTable, error)
}

// ExchangeRateSvcFacade defines currency rate lookups and conversions
type ExchangeRateSvcFacade interface {
	// GetRates returns the current rate table, falling back to the last known one
	// when the central bank cannot be reached.
	GetRates(ctx context.Context) (*domain.RateTable, error)

	// Convert converts amount between two currencies using selling rates with TRY as the pivot.
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*domain.Conversion, error)

	// ClearCache drops the in-memory rate table so the next call refetches.
	ClearCache()
}
