package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionManager ---
type mockTxManager struct{}

func (mockTxManager) Begin(ctx context.Context) (pgx.Tx, error)     { return nil, nil }
func (mockTxManager) Commit(ctx context.Context, tx pgx.Tx) error   { return nil }
func (mockTxManager) Rollback(ctx context.Context, tx pgx.Tx) error { return nil }

// --- Mock DocumentRepository ---
type MockDocumentRepository struct {
	mock.Mock
	mockTxManager
}

var _ portsrepo.DocumentRepositoryWithTx = (*MockDocumentRepository)(nil)

func (m *MockDocumentRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Copy so the service cannot mutate the fixture between calls.
	doc := *args.Get(0).(*domain.Document)
	return &doc, args.Error(1)
}

func (m *MockDocumentRepository) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		token = &tokenVal
	}
	return args.Get(0).([]domain.Document), token, args.Error(2)
}

func (m *MockDocumentRepository) FindAllDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountDocumentsByParty(ctx context.Context, partyID string) (int, error) {
	args := m.Called(ctx, partyID)
	return args.Int(0), args.Error(1)
}

func (m *MockDocumentRepository) SaveDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateDocument(ctx context.Context, document domain.Document) error {
	args := m.Called(ctx, document)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteDocument(ctx context.Context, documentID string) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}

func (m *MockDocumentRepository) TransitionStatus(ctx context.Context, entry domain.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockDocumentRepository) FindHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

func (m *MockDocumentRepository) FindAllHistory(ctx context.Context) ([]domain.StatusHistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusHistoryEntry), args.Error(1)
}

// --- Mock PartyRepository ---
type MockPartyRepository struct {
	mock.Mock
}

var _ portsrepo.PartyRepositoryFacade = (*MockPartyRepository)(nil)

func (m *MockPartyRepository) FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	args := m.Called(ctx, partyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	party := *args.Get(0).(*domain.Party)
	return &party, args.Error(1)
}

func (m *MockPartyRepository) ListParties(ctx context.Context, filter domain.PartyFilter, limit int, offset int) ([]domain.Party, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Party), args.Error(1)
}

func (m *MockPartyRepository) SaveParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) UpdateParty(ctx context.Context, party domain.Party) error {
	args := m.Called(ctx, party)
	return args.Error(0)
}

func (m *MockPartyRepository) DeleteParty(ctx context.Context, partyID string) error {
	args := m.Called(ctx, partyID)
	return args.Error(0)
}

// --- Mock CreditRepository ---
type MockCreditRepository struct {
	mock.Mock
	mockTxManager
}

var _ portsrepo.CreditRepositoryWithTx = (*MockCreditRepository)(nil)

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) ListCredits(ctx context.Context, limit int, offset int) ([]domain.Credit, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credit), args.Error(1)
}

func (m *MockCreditRepository) FindInstallmentByID(ctx context.Context, creditID, installmentID string) (*domain.Installment, error) {
	args := m.Called(ctx, creditID, installmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	inst := *args.Get(0).(*domain.Installment)
	return &inst, args.Error(1)
}

func (m *MockCreditRepository) FindAllInstallments(ctx context.Context) ([]domain.Installment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Installment), args.Error(1)
}

func (m *MockCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

func (m *MockCreditRepository) UpdateInstallmentPayment(ctx context.Context, installment domain.Installment, expected domain.InstallmentStatus) error {
	args := m.Called(ctx, installment, expected)
	return args.Error(0)
}

func (m *MockCreditRepository) DeleteCredit(ctx context.Context, creditID string) error {
	args := m.Called(ctx, creditID)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	user := *args.Get(0).(*domain.User)
	return &user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

func (m *MockExchangeRateRepository) FindLatestRateTable(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

func (m *MockExchangeRateRepository) SaveRateTable(ctx context.Context, table domain.RateTable) error {
	args := m.Called(ctx, table)
	return args.Error(0)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

var _ portssvc.RateProvider = (*MockRateProvider)(nil)

func (m *MockRateProvider) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetStatusSummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.StatusSummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StatusSummary), args.Error(1)
}

func (m *MockReportingRepository) GetPartySummary(ctx context.Context, filter domain.DocumentFilter) ([]domain.PartySummary, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PartySummary), args.Error(1)
}

func (m *MockReportingRepository) GetMonthlyDue(ctx context.Context, year int) ([]domain.MonthlyDue, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyDue), args.Error(1)
}

// fixedClock returns a clock frozen at t.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
