package dto

import (
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SchedulePreviewRequest defines the loan terms used to compute a schedule.
type SchedulePreviewRequest struct {
	Principal  decimal.Decimal `json:"principal" binding:"required"`
	AnnualRate decimal.Decimal `json:"annualRate"` // Percent, e.g. 24 for 24%
	TermMonths int             `json:"termMonths" binding:"required,min=1,max=600"`
	StartDate  time.Time       `json:"startDate" binding:"required"`
}

// CreateCreditRequest defines the data needed to record a bank credit.
type CreateCreditRequest struct {
	SchedulePreviewRequest
	LenderName   string `json:"lenderName" binding:"required,max=200"`
	Description  string `json:"description"`
	CurrencyCode string `json:"currencyCode" binding:"omitempty,currency"`
}

// PayInstallmentRequest marks an installment as paid. Both fields are optional.
type PayInstallmentRequest struct {
	Amount *decimal.Decimal `json:"amount"` // Defaults to the installment amount
	PaidAt *time.Time       `json:"paidAt"` // Defaults to now
}

// ListCreditsParams defines query parameters for listing credits.
type ListCreditsParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// InstallmentResponse presents an installment with its effective status.
type InstallmentResponse struct {
	InstallmentID  string                   `json:"installmentID"`
	SequenceNumber int                      `json:"sequenceNumber"`
	DueDate        time.Time                `json:"dueDate"`
	Amount         decimal.Decimal          `json:"amount"`
	PaidAmount     decimal.Decimal          `json:"paidAmount"`
	Status         domain.InstallmentStatus `json:"status"`
	PaidAt         *time.Time               `json:"paidAt,omitempty"`
}

// CreditResponse defines the data returned for a credit.
type CreditResponse struct {
	CreditID       string                `json:"creditID"`
	LenderName     string                `json:"lenderName"`
	Description    string                `json:"description"`
	Principal      decimal.Decimal       `json:"principal"`
	AnnualRate     decimal.Decimal       `json:"annualRate"`
	TermMonths     int                   `json:"termMonths"`
	StartDate      time.Time             `json:"startDate"`
	CurrencyCode   string                `json:"currencyCode"`
	MonthlyPayment decimal.Decimal       `json:"monthlyPayment"`
	CreatedAt      time.Time             `json:"createdAt"`
	CreatedBy      string                `json:"createdBy"`
	Installments   []InstallmentResponse `json:"installments,omitempty"`
}

// SchedulePreviewResponse is a schedule computed without saving.
type SchedulePreviewResponse struct {
	MonthlyPayment decimal.Decimal       `json:"monthlyPayment"`
	TotalPayable   decimal.Decimal       `json:"totalPayable"`
	TotalInterest  decimal.Decimal       `json:"totalInterest"`
	Installments   []InstallmentResponse `json:"installments"`
}

// ToInstallmentResponse converts a domain.Installment, deriving late from asOf.
func ToInstallmentResponse(inst domain.Installment, asOf time.Time) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:  inst.InstallmentID,
		SequenceNumber: inst.SequenceNumber,
		DueDate:        inst.DueDate,
		Amount:         inst.Amount,
		PaidAmount:     inst.PaidAmount,
		Status:         inst.EffectiveStatus(asOf),
		PaidAt:         inst.PaidAt,
	}
}

// ToCreditResponse converts a domain.Credit to CreditResponse DTO
func ToCreditResponse(c *domain.Credit, asOf time.Time) CreditResponse {
	res := CreditResponse{
		CreditID:       c.CreditID,
		LenderName:     c.LenderName,
		Description:    c.Description,
		Principal:      c.Principal,
		AnnualRate:     c.AnnualRate,
		TermMonths:     c.TermMonths,
		StartDate:      c.StartDate,
		CurrencyCode:   c.CurrencyCode,
		MonthlyPayment: c.MonthlyPayment,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
	}
	for _, inst := range c.Installments {
		res.Installments = append(res.Installments, ToInstallmentResponse(inst, asOf))
	}
	return res
}

// ToListCreditResponse converts a slice of domain.Credit to CreditResponse DTOs
func ToListCreditResponse(credits []domain.Credit, asOf time.Time) []CreditResponse {
	res := make([]CreditResponse, len(credits))
	for i := range credits {
		res[i] = ToCreditResponse(&credits[i], asOf)
	}
	return res
}

// ToSchedulePreviewResponse converts a generated schedule.
func ToSchedulePreviewResponse(principal decimal.Decimal, s domain.Schedule, asOf time.Time) SchedulePreviewResponse {
	total := decimal.Zero
	insts := make([]InstallmentResponse, len(s.Installments))
	for i, inst := range s.Installments {
		total = total.Add(inst.Amount)
		insts[i] = ToInstallmentResponse(inst, asOf)
	}
	return SchedulePreviewResponse{
		MonthlyPayment: s.MonthlyPayment,
		TotalPayable:   total,
		TotalInterest:  total.Sub(principal),
		Installments:   insts,
	}
}
