package services

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/dto"
)

// PartyReaderSvc defines read operations for parties
type PartyReaderSvc interface {
	GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, filter domain.PartyFilter, limit, offset int) ([]domain.Party, error)

	// GetPartyStatement returns the party's documents with totals per status and currency.
	GetPartyStatement(ctx context.Context, partyID string) (*domain.PartyStatement, error)
}

// PartyWriterSvc defines write operations for parties
type PartyWriterSvc interface {
	CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error)
	UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error)

	// DeleteParty fails with apperrors.ErrConflict while documents reference the party.
	DeleteParty(ctx context.Context, partyID string, userID string) error
}

// PartySvcFacade combines all party-related service interfaces
type PartySvcFacade interface {
	PartyReaderSvc
	PartyWriterSvc
}
