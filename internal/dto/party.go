package dto

import (
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// CreatePartyRequest defines the data needed to create a customer or supplier.
type CreatePartyRequest struct {
	Name      string           `json:"name" binding:"required,max=200"`
	PartyType domain.PartyType `json:"partyType" binding:"required,oneof=customer supplier"`
	TaxNumber string           `json:"taxNumber" binding:"max=20"`
	Phone     string           `json:"phone" binding:"max=32"`
	Email     string           `json:"email" binding:"omitempty,email"`
	Address   string           `json:"address"`
	Notes     string           `json:"notes"`
}

// UpdatePartyRequest defines the data allowed for updating a party.
type UpdatePartyRequest struct {
	Name      *string           `json:"name" binding:"omitempty,min=1,max=200"`
	PartyType *domain.PartyType `json:"partyType" binding:"omitempty,oneof=customer supplier"`
	TaxNumber *string           `json:"taxNumber" binding:"omitempty,max=20"`
	Phone     *string           `json:"phone" binding:"omitempty,max=32"`
	Email     *string           `json:"email" binding:"omitempty,email"`
	Address   *string           `json:"address"`
	Notes     *string           `json:"notes"`
	IsActive  *bool             `json:"isActive"`
}

// ListPartiesParams defines query parameters for listing parties.
type ListPartiesParams struct {
	PartyType string `form:"partyType" binding:"omitempty,oneof=customer supplier"`
	Search    string `form:"search"`
	Limit     int    `form:"limit,default=50" binding:"min=1,max=500"`
	Offset    int    `form:"offset,default=0" binding:"min=0"`
}

// ListPartiesResponse wraps the list of parties.
type ListPartiesResponse struct {
	Parties []domain.Party `json:"parties"`
}

// PartyStatementResponse is a party's statement with overdue flags on its documents.
type PartyStatementResponse struct {
	Party     domain.Party           `json:"party"`
	Documents []DocumentResponse     `json:"documents"`
	Totals    []domain.StatusSummary `json:"totals"`
}

// ToPartyStatementResponse converts a domain.PartyStatement to its DTO
func ToPartyStatementResponse(s *domain.PartyStatement, asOf time.Time) PartyStatementResponse {
	docs := make([]DocumentResponse, len(s.Documents))
	for i := range s.Documents {
		docs[i] = ToDocumentResponse(&s.Documents[i], asOf)
	}
	return PartyStatementResponse{Party: s.Party, Documents: docs, Totals: s.Totals}
}
