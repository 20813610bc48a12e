package dto

import (
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDocumentRequest defines the data needed to record a new check or note.
type CreateDocumentRequest struct {
	DocumentType   domain.DocumentType      `json:"documentType" binding:"required,oneof=check note"`
	DocumentNumber string                   `json:"documentNumber" binding:"required,max=64"`
	Amount         decimal.Decimal          `json:"amount" binding:"required"`
	CurrencyCode   string                   `json:"currencyCode" binding:"omitempty,currency"` // Defaults to TRY
	DueDate        time.Time                `json:"dueDate" binding:"required"`
	IssueDate      *time.Time               `json:"issueDate"`
	IssuerName     string                   `json:"issuerName" binding:"max=200"`
	BankName       string                   `json:"bankName" binding:"max=200"`
	BranchName     string                   `json:"branchName" binding:"max=200"`
	AccountNumber  string                   `json:"accountNumber" binding:"max=64"`
	PartyID        *string                  `json:"partyID" binding:"omitempty,uuid"`
	Direction      domain.DocumentDirection `json:"direction" binding:"omitempty,oneof=received issued"` // Defaults to received
	Notes          string                   `json:"notes"`
}

// UpdateDocumentRequest defines the editable fields of a document.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateDocumentRequest struct {
	DocumentNumber *string                   `json:"documentNumber" binding:"omitempty,max=64"`
	Amount         *decimal.Decimal          `json:"amount"`
	CurrencyCode   *string                   `json:"currencyCode" binding:"omitempty,currency"`
	DueDate        *time.Time                `json:"dueDate"`
	IssueDate      *time.Time                `json:"issueDate"`
	IssuerName     *string                   `json:"issuerName"`
	BankName       *string                   `json:"bankName"`
	BranchName     *string                   `json:"branchName"`
	AccountNumber  *string                   `json:"accountNumber"`
	PartyID        *string                   `json:"partyID" binding:"omitempty,uuid"` // Empty string clears the party
	Direction      *domain.DocumentDirection `json:"direction" binding:"omitempty,oneof=received issued"`
	Notes          *string                   `json:"notes"`
}

// TransitionRequest asks for one status change.
type TransitionRequest struct {
	Status      domain.DocumentStatus `json:"status" binding:"required"`
	Description string                `json:"description" binding:"max=500"`
}

// BulkTransitionRequest asks for the same status change on many documents.
type BulkTransitionRequest struct {
	DocumentIDs []string              `json:"documentIDs" binding:"required,min=1,max=500,dive,required"`
	Status      domain.DocumentStatus `json:"status" binding:"required"`
	Description string                `json:"description" binding:"max=500"`
}

// ListDocumentsParams defines query parameters for listing documents.
// Dates use the YYYY-MM-DD layout.
type ListDocumentsParams struct {
	Status       string  `form:"status"`
	DocumentType string  `form:"documentType"`
	Direction    string  `form:"direction"`
	PartyID      string  `form:"partyID"`
	DueFrom      string  `form:"dueFrom"`
	DueTo        string  `form:"dueTo"`
	Search       string  `form:"search"`
	Limit        int     `form:"limit,default=20" binding:"min=1,max=500"`
	NextToken    *string `form:"nextToken"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	domain.Document
	IsOverdue bool `json:"isOverdue"`
}

// ListDocumentsResponse wraps a page of documents.
type ListDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// AllowedTransitionsResponse lists the statuses a document can move to next.
type AllowedTransitionsResponse struct {
	DocumentID      string                  `json:"documentID"`
	CurrentStatus   domain.DocumentStatus   `json:"currentStatus"`
	AllowedStatuses []domain.DocumentStatus `json:"allowedStatuses"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO
func ToDocumentResponse(doc *domain.Document, asOf time.Time) DocumentResponse {
	return DocumentResponse{Document: *doc, IsOverdue: doc.IsOverdue(asOf)}
}

// ToListDocumentResponse converts a page of documents to ListDocumentsResponse DTO
func ToListDocumentResponse(docs []domain.Document, nextToken *string, asOf time.Time) ListDocumentsResponse {
	res := make([]DocumentResponse, len(docs))
	for i := range docs {
		res[i] = ToDocumentResponse(&docs[i], asOf)
	}
	return ListDocumentsResponse{Documents: res, NextToken: nextToken}
}
