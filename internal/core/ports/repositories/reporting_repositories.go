package repositories

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// ReportingRepository defines aggregate queries over documents
type ReportingRepository interface {
	// GetStatusSummary groups matching documents by status and currency.
	GetStatusSummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.StatusSummary, error)

	// GetPartySummary groups open (non-terminal) documents by party and currency.
	GetPartySummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error)

	// GetMonthlyDue groups documents due in the given year by month and currency.
	// Months without documents are not returned.
	GetMonthlyDue(ctx context.Context, year int) ([]domain.MonthlyDue, error)
}
