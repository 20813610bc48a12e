package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentStatus is the payment state of one installment.
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	// InstallmentLate is never persisted; it is derived from a pending installment past its due date.
	InstallmentLate InstallmentStatus = "late"
)

// Credit is a loan repaid through a generated installment schedule.
type Credit struct {
	CreditID       string          `json:"creditID"`
	LenderName     string          `json:"lenderName"`
	Description    string          `json:"description"`
	Principal      decimal.Decimal `json:"principal"`
	AnnualRate     decimal.Decimal `json:"annualRate"` // Nominal, percent
	TermMonths     int             `json:"termMonths"`
	StartDate      time.Time       `json:"startDate"`
	CurrencyCode   string          `json:"currencyCode"`
	MonthlyPayment decimal.Decimal `json:"monthlyPayment"`
	AuditFields

	Installments []Installment `json:"installments,omitempty"`
}

// Installment is one scheduled repayment of a Credit.
type Installment struct {
	InstallmentID  string            `json:"installmentID"`
	CreditID       string            `json:"creditID"`
	SequenceNumber int               `json:"sequenceNumber"` // 1..term
	DueDate        time.Time         `json:"dueDate"`
	Amount         decimal.Decimal   `json:"amount"`
	PaidAmount     decimal.Decimal   `json:"paidAmount"`
	Status         InstallmentStatus `json:"status"` // Persisted: pending or paid
	PaidAt         *time.Time        `json:"paidAt,omitempty"`
}

// EffectiveStatus returns the status to present as of the given day.
func (i Installment) EffectiveStatus(asOf time.Time) InstallmentStatus {
	if i.Status == InstallmentPending && DateOnly(i.DueDate).Before(DateOnly(asOf)) {
		return InstallmentLate
	}
	return i.Status
}

// CreditSummary aggregates the repayment progress of a credit.
type CreditSummary struct {
	CreditID      string          `json:"creditID"`
	TotalPayable  decimal.Decimal `json:"totalPayable"`
	TotalPaid     decimal.Decimal `json:"totalPaid"`
	Remaining     decimal.Decimal `json:"remaining"`
	TotalInterest decimal.Decimal `json:"totalInterest"`
	PaidCount     int             `json:"paidCount"`
	PendingCount  int             `json:"pendingCount"`
	LateCount     int             `json:"lateCount"`
	NextDue       *Installment    `json:"nextDue,omitempty"`
}

// Summarize computes a CreditSummary from the credit's installments as of asOf.
func (c Credit) Summarize(asOf time.Time) CreditSummary {
	s := CreditSummary{
		CreditID:     c.CreditID,
		TotalPayable: decimal.Zero,
		TotalPaid:    decimal.Zero,
	}
	for i := range c.Installments {
		inst := c.Installments[i]
		s.TotalPayable = s.TotalPayable.Add(inst.Amount)
		s.TotalPaid = s.TotalPaid.Add(inst.PaidAmount)
		switch inst.EffectiveStatus(asOf) {
		case InstallmentPaid:
			s.PaidCount++
		case InstallmentLate:
			s.LateCount++
		default:
			s.PendingCount++
		}
		if inst.Status != InstallmentPaid && s.NextDue == nil {
			s.NextDue = &inst
		}
	}
	s.Remaining = s.TotalPayable.Sub(s.TotalPaid)
	s.TotalInterest = s.TotalPayable.Sub(c.Principal)
	return s
}
