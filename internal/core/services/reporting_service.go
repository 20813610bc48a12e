package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/export"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	docRepo       portsrepo.DocumentReader
	creditRepo    portsrepo.CreditReader
	rates         portssvc.ExchangeRateSvcFacade
}

// NewReportingService creates a new reporting service
func NewReportingService(
	reportingRepo portsrepo.ReportingRepository,
	docRepo portsrepo.DocumentReader,
	creditRepo portsrepo.CreditReader,
	rates portssvc.ExchangeRateSvcFacade,
	opts ...ServiceOption,
) portssvc.ReportingService {
	return &reportingService{
		BaseService:   newBaseService(opts...),
		reportingRepo: reportingRepo,
		docRepo:       docRepo,
		creditRepo:    creditRepo,
		rates:         rates,
	}
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) Summary(ctx context.Context, filter domain.DocumentFilter) (*domain.SummaryReport, error) {
	rows, err := s.reportingRepo.GetStatusSummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to get status summary")
		return nil, fmt.Errorf("failed to get status summary: %w", err)
	}
	if rows == nil {
		rows = []domain.StatusSummary{}
	}

	docs, err := s.docRepo.FindAllDocuments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load documents for summary")
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}

	today := s.Today()
	report := &domain.SummaryReport{Rows: rows, GeneratedAt: s.Now()}
	for _, row := range rows {
		report.TotalCount += row.Count
	}
	for _, d := range docs {
		if d.IsOverdue(today) {
			report.OverdueCount++
		}
	}
	report.TotalInTRY = s.totalInTRY(ctx, rows)
	return report, nil
}

// totalInTRY converts every row to TRY. It returns nil if any conversion fails.
func (s *reportingService) totalInTRY(ctx context.Context, rows []domain.StatusSummary) *decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		if row.CurrencyCode == domain.DefaultCurrencyCode {
			total = total.Add(row.TotalAmount)
			continue
		}
		conv, err := s.rates.Convert(ctx, row.TotalAmount, row.CurrencyCode, domain.DefaultCurrencyCode)
		if err != nil {
			s.LogWarn(ctx, "Omitting TRY total from summary",
				slog.String("currency", row.CurrencyCode),
				slog.String("error", err.Error()))
			return nil
		}
		total = total.Add(conv.Result)
	}
	return &total
}

func (s *reportingService) ByParty(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error) {
	rows, err := s.reportingRepo.GetPartySummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to get party summary")
		return nil, fmt.Errorf("failed to get party summary: %w", err)
	}
	if rows == nil {
		return []domain.PartySummary{}, nil
	}
	return rows, nil
}

func (s *reportingService) Upcoming(ctx context.Context, days int) (*domain.UpcomingReport, error) {
	if days <= 0 {
		return nil, apperrors.NewValidationError("days must be positive")
	}
	today := s.Today()
	until := today.AddDate(0, 0, days)
	yesterday := today.AddDate(0, 0, -1)

	upcoming, err := s.docRepo.FindAllDocuments(ctx, domain.DocumentFilter{DueFrom: &today, DueTo: &until})
	if err != nil {
		s.LogError(ctx, err, "Failed to load upcoming documents", slog.Int("days", days))
		return nil, fmt.Errorf("failed to load upcoming documents: %w", err)
	}
	overdue, err := s.docRepo.FindAllDocuments(ctx, domain.DocumentFilter{DueTo: &yesterday})
	if err != nil {
		s.LogError(ctx, err, "Failed to load overdue documents")
		return nil, fmt.Errorf("failed to load overdue documents: %w", err)
	}

	return &domain.UpcomingReport{
		Days:     days,
		Upcoming: openDocuments(upcoming),
		Overdue:  openDocuments(overdue),
	}, nil
}

func openDocuments(docs []domain.Document) []domain.Document {
	out := make([]domain.Document, 0, len(docs))
	for _, d := range docs {
		if !d.Status.IsTerminal() {
			out = append(out, d)
		}
	}
	return out
}

// Monthly always returns at least one row per month; empty months get a zero TRY row.
func (s *reportingService) Monthly(ctx context.Context, year int) ([]domain.MonthlyDue, error) {
	if year == 0 {
		year = s.Today().Year()
	}
	rows, err := s.reportingRepo.GetMonthlyDue(ctx, year)
	if err != nil {
		s.LogError(ctx, err, "Failed to get monthly due totals", slog.Int("year", year))
		return nil, fmt.Errorf("failed to get monthly due totals: %w", err)
	}

	seen := make(map[int]bool, 12)
	for _, r := range rows {
		seen[r.Month] = true
	}
	for m := 1; m <= 12; m++ {
		if !seen[m] {
			rows = append(rows, domain.MonthlyDue{Month: m, CurrencyCode: domain.DefaultCurrencyCode, TotalAmount: decimal.Zero})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Month != rows[j].Month {
			return rows[i].Month < rows[j].Month
		}
		return rows[i].CurrencyCode < rows[j].CurrencyCode
	})
	return rows, nil
}

func (s *reportingService) ExportDocuments(ctx context.Context, filter domain.DocumentFilter, w io.Writer) error {
	docs, err := s.docRepo.FindAllDocuments(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to load documents for export")
		return fmt.Errorf("failed to load documents: %w", err)
	}
	summary, err := s.reportingRepo.GetStatusSummary(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to get status summary for export")
		return fmt.Errorf("failed to get status summary: %w", err)
	}

	if err := export.WriteDocuments(w, docs, summary, s.Today()); err != nil {
		s.LogError(ctx, err, "Failed to write documents workbook")
		return err
	}
	s.LogInfo(ctx, "Documents exported", slog.Int("count", len(docs)))
	return nil
}

func (s *reportingService) ExportCreditSchedule(ctx context.Context, creditID string, w io.Writer) error {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load credit for export", slog.String("credit_id", creditID))
		}
		return err
	}
	if err := export.WriteCreditSchedule(w, *credit, s.Today()); err != nil {
		s.LogError(ctx, err, "Failed to write schedule workbook", slog.String("credit_id", creditID))
		return err
	}
	return nil
}
