package domain

import (
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// scheduleScale is the number of decimal places kept while compounding the monthly rate.
const scheduleScale = 24

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// ScheduleInput holds a loan's terms.
type ScheduleInput struct {
	Principal         decimal.Decimal
	AnnualRatePercent decimal.Decimal
	TermMonths        int
	StartDate         time.Time
}

// Schedule is the deterministic repayment plan for a ScheduleInput.
type Schedule struct {
	MonthlyPayment decimal.Decimal
	Installments   []Installment
}

// Validate rejects out-of-range terms instead of clamping them.
func (in ScheduleInput) Validate() error {
	if !in.Principal.IsPositive() {
		return apperrors.NewValidationError("principal must be positive")
	}
	if in.AnnualRatePercent.IsNegative() {
		return apperrors.NewValidationError("annual rate cannot be negative")
	}
	if in.TermMonths <= 0 {
		return apperrors.NewValidationError("term must be a positive number of months")
	}
	if in.StartDate.IsZero() {
		return apperrors.NewValidationError("start date is required")
	}
	if !in.Principal.Equal(in.Principal.Truncate(2)) {
		return apperrors.NewValidationError("principal cannot have more than 2 decimal places")
	}
	if in.AnnualRatePercent.IsZero() {
		if in.Principal.Shift(2).IntPart() < int64(in.TermMonths) {
			return apperrors.NewValidationError("principal is too small to split into a non-zero payment per month")
		}
	} else if !MonthlyPayment(in.Principal, in.AnnualRatePercent, in.TermMonths).IsPositive() {
		return apperrors.NewValidationError("monthly payment rounds to zero")
	}
	return nil
}

// MonthlyPayment computes the fixed annuity payment rounded to 2 places.
// With a zero rate the principal is split evenly.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, termMonths int) decimal.Decimal {
	n := decimal.NewFromInt(int64(termMonths))
	r := annualRatePercent.Div(twelve).Div(hundred)
	if r.IsZero() {
		return principal.Div(n).Round(2)
	}
	factor := compound(decimal.NewFromInt(1).Add(r), termMonths)
	numerator := principal.Mul(r).Mul(factor)
	denominator := factor.Sub(decimal.NewFromInt(1))
	return numerator.DivRound(denominator, scheduleScale).Round(2)
}

// compound raises base to a non-negative integer power, keeping scheduleScale places per step.
func compound(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for i := 0; i < exp; i++ {
		result = result.Mul(base).Round(scheduleScale)
	}
	return result
}

// GenerateSchedule turns a loan's terms into its ordered installments.
// Installment k is due k calendar months after the start date. With a zero rate
// the principal is split in whole cents: the last principal%term installments get
// one extra cent, so each stays within 0.01 of principal/term and the total equals
// the principal. The returned installments carry no IDs.
func GenerateSchedule(in ScheduleInput) (Schedule, error) {
	if err := in.Validate(); err != nil {
		return Schedule{}, err
	}

	payment := MonthlyPayment(in.Principal, in.AnnualRatePercent, in.TermMonths)
	start := DateOnly(in.StartDate)

	installments := make([]Installment, in.TermMonths)
	for k := 1; k <= in.TermMonths; k++ {
		installments[k-1] = Installment{
			SequenceNumber: k,
			DueDate:        AddMonthsClamped(start, k),
			Amount:         payment,
			PaidAmount:     decimal.Zero,
			Status:         InstallmentPending,
		}
	}

	if in.AnnualRatePercent.IsZero() {
		splitEvenly(installments, in.Principal)
	}

	return Schedule{MonthlyPayment: payment, Installments: installments}, nil
}

// AddMonthsClamped moves t forward by months calendar months, keeping t's day of month
// but clamping to the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month(), t.Location()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// splitEvenly spreads principal over the installments in whole cents.
func splitEvenly(installments []Installment, principal decimal.Decimal) {
	n := int64(len(installments))
	cents := principal.Shift(2).IntPart()
	base, extra := cents/n, cents%n
	for i := range installments {
		c := base
		if int64(i) >= n-extra {
			c++
		}
		installments[i].Amount = decimal.New(c, -2)
	}
}
