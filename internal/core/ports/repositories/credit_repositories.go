package repositories

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// CreditReader defines read operations for credits and their installments
type CreditReader interface {
	// FindCreditByID retrieves a credit with its installments ordered by sequence number.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// ListCredits retrieves credits without installments, newest first. A limit of 0 returns all of them.
	ListCredits(ctx context.Context, limit int, offset int) ([]domain.Credit, error)

	FindInstallmentByID(ctx context.Context, creditID, installmentID string) (*domain.Installment, error)

	// FindAllInstallments returns every installment, for backups.
	FindAllInstallments(ctx context.Context) ([]domain.Installment, error)
}

// CreditWriter defines write operations for credits
type CreditWriter interface {
	// SaveCredit persists a credit and all of its installments within a transaction.
	SaveCredit(ctx context.Context, credit domain.Credit) error

	// UpdateInstallmentPayment writes the payment fields of an installment.
	// expected is the persisted status the caller observed; a mismatch yields apperrors.ErrConflict.
	UpdateInstallmentPayment(ctx context.Context, installment domain.Installment, expected domain.InstallmentStatus) error

	// DeleteCredit removes a credit together with its installments.
	DeleteCredit(ctx context.Context, creditID string) error
}

// CreditRepositoryFacade combines all credit-related repository interfaces
type CreditRepositoryFacade interface {
	CreditReader
	CreditWriter
}

// CreditRepositoryWithTx extends CreditRepositoryFacade with transaction capabilities
type CreditRepositoryWithTx interface {
	CreditRepositoryFacade
	TransactionManager
}
