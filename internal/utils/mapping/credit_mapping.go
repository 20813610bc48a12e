package mapping

import (
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/models"
)

// ToModelCredit converts a domain Credit to a model Credit. Installments are mapped separately.
func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:       d.CreditID,
		LenderName:     d.LenderName,
		Description:    d.Description,
		Principal:      d.Principal,
		AnnualRate:     d.AnnualRate,
		TermMonths:     d.TermMonths,
		StartDate:      d.StartDate,
		CurrencyCode:   d.CurrencyCode,
		MonthlyPayment: d.MonthlyPayment,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCredit converts a model Credit to a domain Credit without installments.
func ToDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:       m.CreditID,
		LenderName:     m.LenderName,
		Description:    m.Description,
		Principal:      m.Principal,
		AnnualRate:     m.AnnualRate,
		TermMonths:     m.TermMonths,
		StartDate:      m.StartDate,
		CurrencyCode:   m.CurrencyCode,
		MonthlyPayment: m.MonthlyPayment,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInstallment converts a domain Installment to a model Installment
func ToModelInstallment(d domain.Installment) models.Installment {
	return models.Installment{
		InstallmentID:  d.InstallmentID,
		CreditID:       d.CreditID,
		SequenceNumber: d.SequenceNumber,
		DueDate:        d.DueDate,
		Amount:         d.Amount,
		PaidAmount:     d.PaidAmount,
		Status:         string(d.Status),
		PaidAt:         nullTime(d.PaidAt),
	}
}

// ToDomainInstallment converts a model Installment to a domain Installment
func ToDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:  m.InstallmentID,
		CreditID:       m.CreditID,
		SequenceNumber: m.SequenceNumber,
		DueDate:        m.DueDate,
		Amount:         m.Amount,
		PaidAmount:     m.PaidAmount,
		Status:         domain.InstallmentStatus(m.Status),
		PaidAt:         timePtr(m.PaidAt),
	}
}
