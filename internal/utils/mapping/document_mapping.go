package mapping

import (
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/models"
)

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:     d.DocumentID,
		DocumentType:   string(d.DocumentType),
		DocumentNumber: d.DocumentNumber,
		Amount:         d.Amount,
		CurrencyCode:   d.CurrencyCode,
		DueDate:        d.DueDate,
		IssueDate:      nullTime(d.IssueDate),
		IssuerName:     d.IssuerName,
		BankName:       d.BankName,
		BranchName:     d.BranchName,
		AccountNumber:  d.AccountNumber,
		PartyID:        nullString(d.PartyID),
		Direction:      string(d.Direction),
		Status:         string(d.Status),
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:     m.DocumentID,
		DocumentType:   domain.DocumentType(m.DocumentType),
		DocumentNumber: m.DocumentNumber,
		Amount:         m.Amount,
		CurrencyCode:   m.CurrencyCode,
		DueDate:        m.DueDate,
		IssueDate:      timePtr(m.IssueDate),
		IssuerName:     m.IssuerName,
		BankName:       m.BankName,
		BranchName:     m.BranchName,
		AccountNumber:  m.AccountNumber,
		PartyID:        stringPtr(m.PartyID),
		PartyName:      m.PartyName.String,
		Direction:      domain.DocumentDirection(m.Direction),
		Status:         domain.DocumentStatus(m.Status),
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents to a slice of domain Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	ds := make([]domain.Document, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDocument(m)
	}
	return ds
}

// ToModelStatusHistory converts a domain StatusHistoryEntry to a model StatusHistory
func ToModelStatusHistory(d domain.StatusHistoryEntry) models.StatusHistory {
	return models.StatusHistory{
		HistoryID:   d.HistoryID,
		DocumentID:  d.DocumentID,
		FromStatus:  string(d.FromStatus),
		ToStatus:    string(d.ToStatus),
		Description: d.Description,
		ActorID:     d.ActorID,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainStatusHistory converts a model StatusHistory to a domain StatusHistoryEntry
func ToDomainStatusHistory(m models.StatusHistory) domain.StatusHistoryEntry {
	return domain.StatusHistoryEntry{
		HistoryID:   m.HistoryID,
		DocumentID:  m.DocumentID,
		FromStatus:  domain.DocumentStatus(m.FromStatus),
		ToStatus:    domain.DocumentStatus(m.ToStatus),
		Description: m.Description,
		ActorID:     m.ActorID,
		CreatedAt:   m.CreatedAt,
	}
}
