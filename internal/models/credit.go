package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Credit is a row of the credits table.
type Credit struct {
	CreditID       string          `db:"credit_id"`
	LenderName     string          `db:"lender_name"`
	Description    string          `db:"description"`
	Principal      decimal.Decimal `db:"principal"`
	AnnualRate     decimal.Decimal `db:"annual_rate"`
	TermMonths     int             `db:"term_months"`
	StartDate      time.Time       `db:"start_date"`
	CurrencyCode   string          `db:"currency_code"`
	MonthlyPayment decimal.Decimal `db:"monthly_payment"`
	AuditFields
}

// Installment is a row of the installments table.
type Installment struct {
	InstallmentID  string          `db:"installment_id"`
	CreditID       string          `db:"credit_id"`
	SequenceNumber int             `db:"sequence_number"`
	DueDate        time.Time       `db:"due_date"`
	Amount         decimal.Decimal `db:"amount"`
	PaidAmount     decimal.Decimal `db:"paid_amount"`
	Status         string          `db:"status"`
	PaidAt         sql.NullTime    `db:"paid_at"`
}
