package repositories

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// PartyReader defines read operations for party data
type PartyReader interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)

	// ListParties returns parties ordered by name. A limit of 0 returns all of them.
	ListParties(ctx context.Context, filter domain.PartyFilter, limit int, offset int) ([]domain.Party, error)
}

// PartyWriter defines write operations for party data
type PartyWriter interface {
	SaveParty(ctx context.Context, party domain.Party) error
	UpdateParty(ctx context.Context, party domain.Party) error

	// DeleteParty removes a party. A party still referenced by documents yields apperrors.ErrConflict.
	DeleteParty(ctx context.Context, partyID string) error
}

// PartyRepositoryFacade combines all party-related repository interfaces
type PartyRepositoryFacade interface {
	PartyReader
	PartyWriter
}
