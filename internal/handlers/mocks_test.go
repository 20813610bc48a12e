package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock DocumentService ---
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Document), next, args.Error(2)
}
func (m *MockDocumentService) GetDocumentHistory(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}
func (m *MockDocumentService) GetAllowedTransitions(ctx context.Context, documentID string) (domain.DocumentStatus, []domain.DocumentStatus, error) {
	args := m.Called(ctx, documentID)
	if args.Get(1) == nil {
		return args.Get(0).(domain.DocumentStatus), nil, args.Error(2)
	}
	return args.Get(0).(domain.DocumentStatus), args.Get(1).([]domain.DocumentStatus), args.Error(2)
}
func (m *MockDocumentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string, userID string) error {
	args := m.Called(ctx, documentID, userID)
	return args.Error(0)
}
func (m *MockDocumentService) ImportDocuments(ctx context.Context, workbook io.Reader, userID string) (*domain.ImportResult, error) {
	args := m.Called(ctx, workbook, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ImportResult), args.Error(1)
}
func (m *MockDocumentService) TransitionDocument(ctx context.Context, documentID string, target domain.DocumentStatus, description string, actorID string) (*domain.TransitionResult, error) {
	args := m.Called(ctx, documentID, target, description, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransitionResult), args.Error(1)
}
func (m *MockDocumentService) BulkTransition(ctx context.Context, documentIDs []string, target domain.DocumentStatus, description string, actorID string) (*domain.BulkTransitionResult, error) {
	args := m.Called(ctx, documentIDs, target, description, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BulkTransitionResult), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}
func (m *MockExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*domain.Conversion, error) {
	args := m.Called(ctx, amount, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversion), args.Error(1)
}
func (m *MockExchangeRateService) ClearCache() {
	m.Called()
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) Summary(ctx context.Context, filter domain.DocumentFilter) (*domain.SummaryReport, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SummaryReport), args.Error(1)
}
func (m *MockReportingService) ByParty(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartySummary), args.Error(1)
}
func (m *MockReportingService) Upcoming(ctx context.Context, days int) (*domain.UpcomingReport, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UpcomingReport), args.Error(1)
}
func (m *MockReportingService) Monthly(ctx context.Context, year int) ([]domain.MonthlyDue, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyDue), args.Error(1)
}
func (m *MockReportingService) ExportDocuments(ctx context.Context, filter domain.DocumentFilter, w io.Writer) error {
	args := m.Called(ctx, filter, w)
	if fn, ok := args.Get(0).(func(io.Writer) error); ok {
		return fn(w)
	}
	return args.Error(0)
}
func (m *MockReportingService) ExportCreditSchedule(ctx context.Context, creditID string, w io.Writer) error {
	args := m.Called(ctx, creditID, w)
	return args.Error(0)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)
