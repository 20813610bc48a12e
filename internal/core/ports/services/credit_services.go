package services

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/dto"
)

// CreditReaderSvc defines read operations for credits
type CreditReaderSvc interface {
	GetCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)
	ListCredits(ctx context.Context, limit, offset int) ([]domain.Credit, error)
	GetCreditSummary(ctx context.Context, creditID string) (*domain.CreditSummary, error)

	// PreviewSchedule runs the installment generator without saving anything.
	PreviewSchedule(ctx context.Context, req dto.SchedulePreviewRequest) (*domain.Schedule, error)
}

// CreditWriterSvc defines write operations for credits
type CreditWriterSvc interface {
	// CreateCredit generates the installment schedule and saves the credit with it.
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, userID string) (*domain.Credit, error)
	DeleteCredit(ctx context.Context, creditID string, userID string) error
}

// InstallmentPaymentSvc defines the only operations that change an installment
type InstallmentPaymentSvc interface {
	PayInstallment(ctx context.Context, creditID, installmentID string, req dto.PayInstallmentRequest, userID string) (*domain.Installment, error)
	UnpayInstallment(ctx context.Context, creditID, installmentID string, userID string) (*domain.Installment, error)
}

// CreditSvcFacade combines all credit-related service interfaces
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
	InstallmentPaymentSvc
}
