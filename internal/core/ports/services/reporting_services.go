package services

import (
	"context"
	"io"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// ReportingService defines aggregate reports over documents and their exports
type ReportingService interface {
	// Summary groups documents by status and currency with a best-effort TRY total.
	Summary(ctx context.Context, filter domain.DocumentFilter) (*domain.SummaryReport, error)

	// ByParty groups open documents by party.
	ByParty(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error)

	// Upcoming lists open documents due within days, plus the overdue ones.
	Upcoming(ctx context.Context, days int) (*domain.UpcomingReport, error)

	// Monthly returns due totals per month of year.
	Monthly(ctx context.Context, year int) ([]domain.MonthlyDue, error)

	// ExportDocuments writes the filtered documents and a summary sheet as an xlsx workbook.
	ExportDocuments(ctx context.Context, filter domain.DocumentFilter, w io.Writer) error

	// ExportCreditSchedule writes a credit's installment table as an xlsx workbook.
	ExportCreditSchedule(ctx context.Context, creditID string, w io.Writer) error
}
