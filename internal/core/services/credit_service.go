package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type creditService struct {
	BaseService
	creditRepo portsrepo.CreditRepositoryWithTx
}

// NewCreditService creates a new credit service
func NewCreditService(creditRepo portsrepo.CreditRepositoryWithTx, opts ...ServiceOption) portssvc.CreditSvcFacade {
	return &creditService{
		BaseService: newBaseService(opts...),
		creditRepo:  creditRepo,
	}
}

var _ portssvc.CreditSvcFacade = (*creditService)(nil)

func (s *creditService) GetCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find credit", slog.String("credit_id", creditID))
		}
		return nil, err
	}
	return credit, nil
}

func (s *creditService) ListCredits(ctx context.Context, limit, offset int) ([]domain.Credit, error) {
	credits, err := s.creditRepo.ListCredits(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list credits", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list credits: %w", err)
	}
	if credits == nil {
		return []domain.Credit{}, nil
	}
	return credits, nil
}

func (s *creditService) GetCreditSummary(ctx context.Context, creditID string) (*domain.CreditSummary, error) {
	credit, err := s.GetCreditByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	summary := credit.Summarize(s.Today())
	return &summary, nil
}

func (s *creditService) PreviewSchedule(ctx context.Context, req dto.SchedulePreviewRequest) (*domain.Schedule, error) {
	schedule, err := domain.GenerateSchedule(s.scheduleInput(req))
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (s *creditService) scheduleInput(req dto.SchedulePreviewRequest) domain.ScheduleInput {
	in := domain.ScheduleInput{
		Principal:         req.Principal,
		AnnualRatePercent: req.AnnualRate,
		TermMonths:        req.TermMonths,
	}
	if !req.StartDate.IsZero() {
		in.StartDate = s.DateOf(req.StartDate)
	}
	return in
}

func (s *creditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error) {
	lender := strings.TrimSpace(req.LenderName)
	if lender == "" {
		return nil, apperrors.NewValidationError("lender name is required")
	}
	currency := utils.NormalizeCurrencyCode(req.CurrencyCode, domain.DefaultCurrencyCode)
	if !utils.IsCurrencyCode(currency) {
		return nil, apperrors.NewValidationError("currency code must be a 3-letter ISO code")
	}

	in := s.scheduleInput(req.SchedulePreviewRequest)
	schedule, err := domain.GenerateSchedule(in)
	if err != nil {
		return nil, err
	}

	credit := domain.Credit{
		CreditID:       uuid.NewString(),
		LenderName:     lender,
		Description:    req.Description,
		Principal:      in.Principal,
		AnnualRate:     in.AnnualRatePercent,
		TermMonths:     in.TermMonths,
		StartDate:      in.StartDate,
		CurrencyCode:   currency,
		MonthlyPayment: schedule.MonthlyPayment,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
		Installments:   schedule.Installments,
	}
	for i := range credit.Installments {
		credit.Installments[i].InstallmentID = uuid.NewString()
		credit.Installments[i].CreditID = credit.CreditID
	}

	if err := s.creditRepo.SaveCredit(ctx, credit); err != nil {
		s.LogError(ctx, err, "Failed to save credit", slog.String("credit_id", credit.CreditID))
		return nil, err
	}

	s.LogInfo(ctx, "Credit created",
		slog.String("credit_id", credit.CreditID),
		slog.Int("term_months", credit.TermMonths),
		slog.String("monthly_payment", credit.MonthlyPayment.StringFixed(2)))
	return &credit, nil
}

func (s *creditService) DeleteCredit(ctx context.Context, creditID string, userID string) error {
	if err := s.creditRepo.DeleteCredit(ctx, creditID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete credit", slog.String("credit_id", creditID))
		}
		return err
	}
	s.LogInfo(ctx, "Credit deleted", slog.String("credit_id", creditID), slog.String("user_id", userID))
	return nil
}

func (s *creditService) PayInstallment(ctx context.Context, creditID, installmentID string, req dto.PayInstallmentRequest, userID string) (*domain.Installment, error) {
	inst, err := s.creditRepo.FindInstallmentByID(ctx, creditID, installmentID)
	if err != nil {
		return nil, err
	}
	if inst.Status == domain.InstallmentPaid {
		return nil, fmt.Errorf("installment %d is already paid: %w", inst.SequenceNumber, apperrors.ErrConflict)
	}

	amount := inst.Amount
	if req.Amount != nil {
		amount = *req.Amount
	}
	if !amount.IsPositive() {
		return nil, apperrors.NewValidationError("payment amount must be positive")
	}
	if amount.GreaterThan(inst.Amount) {
		return nil, apperrors.NewValidationError("payment amount cannot exceed the installment amount " + inst.Amount.StringFixed(2))
	}

	paidAt := s.Now()
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}
	inst.Status = domain.InstallmentPaid
	inst.PaidAmount = amount
	inst.PaidAt = &paidAt

	if err := s.creditRepo.UpdateInstallmentPayment(ctx, *inst, domain.InstallmentPending); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to record installment payment", slog.String("installment_id", installmentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Installment paid",
		slog.String("credit_id", creditID),
		slog.Int("sequence", inst.SequenceNumber),
		slog.String("user_id", userID))
	return inst, nil
}

func (s *creditService) UnpayInstallment(ctx context.Context, creditID, installmentID string, userID string) (*domain.Installment, error) {
	inst, err := s.creditRepo.FindInstallmentByID(ctx, creditID, installmentID)
	if err != nil {
		return nil, err
	}
	if inst.Status != domain.InstallmentPaid {
		return nil, fmt.Errorf("installment %d is not paid: %w", inst.SequenceNumber, apperrors.ErrConflict)
	}

	inst.Status = domain.InstallmentPending
	inst.PaidAmount = decimal.Zero
	inst.PaidAt = nil

	if err := s.creditRepo.UpdateInstallmentPayment(ctx, *inst, domain.InstallmentPaid); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to clear installment payment", slog.String("installment_id", installmentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Installment payment reverted",
		slog.String("credit_id", creditID),
		slog.Int("sequence", inst.SequenceNumber),
		slog.String("user_id", userID))
	return inst, nil
}
