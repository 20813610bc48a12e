package mapping

import (
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/models"
)

// ToModelParty converts a domain Party to a model Party
func ToModelParty(d domain.Party) models.Party {
	return models.Party{
		PartyID:     d.PartyID,
		Name:        d.Name,
		PartyType:   string(d.PartyType),
		TaxNumber:   d.TaxNumber,
		Phone:       d.Phone,
		Email:       d.Email,
		Address:     d.Address,
		Notes:       d.Notes,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParty converts a model Party to a domain Party
func ToDomainParty(m models.Party) domain.Party {
	return domain.Party{
		PartyID:     m.PartyID,
		Name:        m.Name,
		PartyType:   domain.PartyType(m.PartyType),
		TaxNumber:   m.TaxNumber,
		Phone:       m.Phone,
		Email:       m.Email,
		Address:     m.Address,
		Notes:       m.Notes,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
