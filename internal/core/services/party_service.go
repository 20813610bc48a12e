package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type partyService struct {
	BaseService
	partyRepo portsrepo.PartyRepositoryFacade
	docRepo   portsrepo.DocumentReader
}

// NewPartyService creates a new party service
func NewPartyService(partyRepo portsrepo.PartyRepositoryFacade, docRepo portsrepo.DocumentReader, opts ...ServiceOption) portssvc.PartySvcFacade {
	return &partyService{
		BaseService: newBaseService(opts...),
		partyRepo:   partyRepo,
		docRepo:     docRepo,
	}
}

var _ portssvc.PartySvcFacade = (*partyService)(nil)

func (s *partyService) GetPartyByID(ctx context.Context, partyID string) (*domain.Party, error) {
	party, err := s.partyRepo.FindPartyByID(ctx, partyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find party", slog.String("party_id", partyID))
		}
		return nil, err
	}
	return party, nil
}

func (s *partyService) ListParties(ctx context.Context, filter domain.PartyFilter, limit, offset int) ([]domain.Party, error) {
	parties, err := s.partyRepo.ListParties(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list parties", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list parties: %w", err)
	}
	if parties == nil {
		return []domain.Party{}, nil
	}
	return parties, nil
}

func (s *partyService) GetPartyStatement(ctx context.Context, partyID string) (*domain.PartyStatement, error) {
	party, err := s.GetPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	docs, err := s.docRepo.FindAllDocuments(ctx, domain.DocumentFilter{PartyID: &partyID})
	if err != nil {
		s.LogError(ctx, err, "Failed to load party documents", slog.String("party_id", partyID))
		return nil, fmt.Errorf("failed to load documents for party %s: %w", partyID, err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	return &domain.PartyStatement{
		Party:     *party,
		Documents: docs,
		Totals:    summarizeByStatus(docs),
	}, nil
}

// summarizeByStatus totals documents per (status, currency), in lifecycle order.
func summarizeByStatus(docs []domain.Document) []domain.StatusSummary {
	type key struct {
		status   domain.DocumentStatus
		currency string
	}
	totals := make(map[key]*domain.StatusSummary)
	for _, d := range docs {
		k := key{d.Status, d.CurrencyCode}
		row, ok := totals[k]
		if !ok {
			row = &domain.StatusSummary{Status: d.Status, CurrencyCode: d.CurrencyCode, TotalAmount: decimal.Zero}
			totals[k] = row
		}
		row.Count++
		row.TotalAmount = row.TotalAmount.Add(d.Amount)
	}

	order := make(map[domain.DocumentStatus]int)
	for i, st := range domain.AllStatuses() {
		order[st] = i
	}
	out := make([]domain.StatusSummary, 0, len(totals))
	for _, row := range totals {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Status != out[j].Status {
			return order[out[i].Status] < order[out[j].Status]
		}
		return out[i].CurrencyCode < out[j].CurrencyCode
	})
	return out
}

func (s *partyService) CreateParty(ctx context.Context, req dto.CreatePartyRequest, userID string) (*domain.Party, error) {
	party := domain.Party{
		PartyID:     uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		PartyType:   req.PartyType,
		TaxNumber:   strings.TrimSpace(req.TaxNumber),
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Address:     req.Address,
		Notes:       req.Notes,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(userID, s.Now()),
	}
	if err := validateParty(party); err != nil {
		return nil, err
	}

	if err := s.partyRepo.SaveParty(ctx, party); err != nil {
		s.LogError(ctx, err, "Failed to save party", slog.String("party_id", party.PartyID))
		return nil, err
	}
	s.LogInfo(ctx, "Party created", slog.String("party_id", party.PartyID))
	return &party, nil
}

func validateParty(p domain.Party) error {
	if p.Name == "" {
		return apperrors.NewValidationError("party name is required")
	}
	if !p.PartyType.IsValid() {
		return apperrors.NewValidationError("party type must be customer or supplier")
	}
	return nil
}

func (s *partyService) UpdateParty(ctx context.Context, partyID string, req dto.UpdatePartyRequest, userID string) (*domain.Party, error) {
	party, err := s.GetPartyByID(ctx, partyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		party.Name = strings.TrimSpace(*req.Name)
	}
	if req.PartyType != nil {
		party.PartyType = *req.PartyType
	}
	if req.TaxNumber != nil {
		party.TaxNumber = strings.TrimSpace(*req.TaxNumber)
	}
	if req.Phone != nil {
		party.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Email != nil {
		party.Email = strings.TrimSpace(*req.Email)
	}
	if req.Address != nil {
		party.Address = *req.Address
	}
	if req.Notes != nil {
		party.Notes = *req.Notes
	}
	if req.IsActive != nil {
		party.IsActive = *req.IsActive
	}
	if err := validateParty(*party); err != nil {
		return nil, err
	}

	party.LastUpdatedAt = s.Now()
	party.LastUpdatedBy = userID
	if err := s.partyRepo.UpdateParty(ctx, *party); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update party", slog.String("party_id", partyID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Party updated", slog.String("party_id", partyID))
	return party, nil
}

func (s *partyService) DeleteParty(ctx context.Context, partyID string, userID string) error {
	if _, err := s.GetPartyByID(ctx, partyID); err != nil {
		return err
	}

	count, err := s.docRepo.CountDocumentsByParty(ctx, partyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count party documents", slog.String("party_id", partyID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("party %s is referenced by %d documents: %w", partyID, count, apperrors.ErrConflict)
	}

	if err := s.partyRepo.DeleteParty(ctx, partyID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete party", slog.String("party_id", partyID))
		}
		return err
	}
	s.LogInfo(ctx, "Party deleted", slog.String("party_id", partyID), slog.String("user_id", userID))
	return nil
}
