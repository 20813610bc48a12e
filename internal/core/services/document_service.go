package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/dto"
	"github.com/SscSPs/cek_senet_app/internal/export"
	"github.com/SscSPs/cek_senet_app/internal/utils"
	"github.com/google/uuid"
)

// documentService implements the DocumentSvcFacade interface
type documentService struct {
	BaseService
	docRepo   portsrepo.DocumentRepositoryWithTx
	partyRepo portsrepo.PartyReader
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo portsrepo.DocumentRepositoryWithTx, partyRepo portsrepo.PartyReader, opts ...ServiceOption) portssvc.DocumentSvcFacade {
	return &documentService{
		BaseService: newBaseService(opts...),
		docRepo:     docRepo,
		partyRepo:   partyRepo,
	}
}

var _ portssvc.DocumentSvcFacade = (*documentService)(nil)

func (s *documentService) GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document", slog.String("document_id", documentID))
		}
		return nil, err
	}

	history, err := s.docRepo.FindHistoryByDocumentID(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load document history", slog.String("document_id", documentID))
		return nil, fmt.Errorf("failed to load history for document %s: %w", documentID, err)
	}
	doc.History = history
	return doc, nil
}

func (s *documentService) ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error) {
	docs, token, err := s.docRepo.ListDocuments(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list documents: %w", err)
	}
	if docs == nil {
		docs = []domain.Document{}
	}
	s.LogDebug(ctx, "Documents listed", slog.Int("count", len(docs)))
	return docs, token, nil
}

func (s *documentService) GetDocumentHistory(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error) {
	if _, err := s.docRepo.FindDocumentByID(ctx, documentID); err != nil {
		return nil, err
	}
	history, err := s.docRepo.FindHistoryByDocumentID(ctx, documentID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load document history", slog.String("document_id", documentID))
		return nil, err
	}
	if history == nil {
		history = []domain.StatusHistoryEntry{}
	}
	return history, nil
}

func (s *documentService) GetAllowedTransitions(ctx context.Context, documentID string) (domain.DocumentStatus, []domain.DocumentStatus, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return "", nil, err
	}
	return doc.Status, doc.Status.NextStatuses(), nil
}

func (s *documentService) CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error) {
	doc := domain.Document{
		DocumentID:     uuid.NewString(),
		DocumentType:   req.DocumentType,
		DocumentNumber: strings.TrimSpace(req.DocumentNumber),
		Amount:         req.Amount,
		CurrencyCode:   utils.NormalizeCurrencyCode(req.CurrencyCode, domain.DefaultCurrencyCode),
		DueDate:        s.DateOf(req.DueDate),
		IssuerName:     strings.TrimSpace(req.IssuerName),
		BankName:       strings.TrimSpace(req.BankName),
		BranchName:     strings.TrimSpace(req.BranchName),
		AccountNumber:  strings.TrimSpace(req.AccountNumber),
		Direction:      req.Direction,
		Status:         domain.StatusPortfolio,
		Notes:          req.Notes,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}
	if doc.Direction == "" {
		doc.Direction = domain.DirectionReceived
	}
	if req.IssueDate != nil {
		issue := s.DateOf(*req.IssueDate)
		doc.IssueDate = &issue
	}
	if req.PartyID != nil && *req.PartyID != "" {
		partyID := *req.PartyID
		doc.PartyID = &partyID
	}

	if err := s.validateDocument(ctx, &doc, !req.DueDate.IsZero()); err != nil {
		return nil, err
	}

	if err := s.docRepo.SaveDocument(ctx, doc); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save document", slog.String("document_number", doc.DocumentNumber))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Document created",
		slog.String("document_id", doc.DocumentID),
		slog.String("document_type", string(doc.DocumentType)))
	return &doc, nil
}

// validateDocument checks the fields common to create and update and fills PartyName.
func (s *documentService) validateDocument(ctx context.Context, doc *domain.Document, hasDueDate bool) error {
	if !doc.DocumentType.IsValid() {
		return apperrors.NewValidationError("document type must be check or note")
	}
	if doc.DocumentNumber == "" {
		return apperrors.NewValidationError("document number is required")
	}
	if !doc.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive")
	}
	if !utils.IsCurrencyCode(doc.CurrencyCode) {
		return apperrors.NewValidationError("currency code must be a 3-letter ISO code")
	}
	if !hasDueDate {
		return apperrors.NewValidationError("due date is required")
	}
	if !doc.Direction.IsValid() {
		return apperrors.NewValidationError("direction must be received or issued")
	}
	if doc.PartyID == nil {
		doc.PartyName = ""
		return nil
	}

	party, err := s.partyRepo.FindPartyByID(ctx, *doc.PartyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationError("party " + *doc.PartyID + " does not exist")
		}
		return err
	}
	doc.PartyName = party.Name
	return nil
}

func (s *documentService) UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status.IsTerminal() {
		return nil, fmt.Errorf("document %s is %s and can no longer be edited: %w", documentID, doc.Status, apperrors.ErrTerminalState)
	}

	if req.DocumentNumber != nil {
		doc.DocumentNumber = strings.TrimSpace(*req.DocumentNumber)
	}
	if req.Amount != nil {
		doc.Amount = *req.Amount
	}
	if req.CurrencyCode != nil {
		doc.CurrencyCode = utils.NormalizeCurrencyCode(*req.CurrencyCode, doc.CurrencyCode)
	}
	if req.DueDate != nil {
		doc.DueDate = s.DateOf(*req.DueDate)
	}
	if req.IssueDate != nil {
		issue := s.DateOf(*req.IssueDate)
		doc.IssueDate = &issue
	}
	if req.IssuerName != nil {
		doc.IssuerName = strings.TrimSpace(*req.IssuerName)
	}
	if req.BankName != nil {
		doc.BankName = strings.TrimSpace(*req.BankName)
	}
	if req.BranchName != nil {
		doc.BranchName = strings.TrimSpace(*req.BranchName)
	}
	if req.AccountNumber != nil {
		doc.AccountNumber = strings.TrimSpace(*req.AccountNumber)
	}
	if req.PartyID != nil {
		if *req.PartyID == "" {
			doc.PartyID = nil
		} else {
			partyID := *req.PartyID
			doc.PartyID = &partyID
		}
	}
	if req.Direction != nil {
		doc.Direction = *req.Direction
	}
	if req.Notes != nil {
		doc.Notes = *req.Notes
	}

	if err := s.validateDocument(ctx, doc, !doc.DueDate.IsZero()); err != nil {
		return nil, err
	}

	doc.LastUpdatedAt = s.Now()
	doc.LastUpdatedBy = userID
	if err := s.docRepo.UpdateDocument(ctx, *doc); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update document", slog.String("document_id", documentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Document updated", slog.String("document_id", documentID))
	return doc, nil
}

func (s *documentService) DeleteDocument(ctx context.Context, documentID string, userID string) error {
	if err := s.docRepo.DeleteDocument(ctx, documentID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete document", slog.String("document_id", documentID))
		}
		return err
	}
	s.LogInfo(ctx, "Document deleted", slog.String("document_id", documentID), slog.String("user_id", userID))
	return nil
}

func (s *documentService) ImportDocuments(ctx context.Context, workbook io.Reader, userID string) (*domain.ImportResult, error) {
	rows, err := export.ReadDocumentRows(workbook)
	if err != nil {
		return nil, apperrors.NewValidationError("could not read workbook: " + err.Error())
	}

	result := &domain.ImportResult{DocumentIDs: []string{}, Failures: []domain.ImportFailure{}}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if row.Err != nil {
			result.Failures = append(result.Failures, domain.ImportFailure{Row: row.Row, Error: row.Err.Error()})
			continue
		}
		doc, err := s.CreateDocument(ctx, row.Request, userID)
		if err != nil {
			result.Failures = append(result.Failures, domain.ImportFailure{Row: row.Row, Error: err.Error()})
			continue
		}
		result.Imported++
		result.DocumentIDs = append(result.DocumentIDs, doc.DocumentID)
	}

	s.LogInfo(ctx, "Documents imported",
		slog.Int("imported", result.Imported),
		slog.Int("failed", len(result.Failures)))
	return result, nil
}

// TransitionDocument is the only path that changes a document's status.
func (s *documentService) TransitionDocument(ctx context.Context, documentID string, target domain.DocumentStatus, description string, actorID string) (*domain.TransitionResult, error) {
	doc, err := s.docRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load document for transition", slog.String("document_id", documentID))
		}
		return nil, err
	}

	if err := domain.ValidateTransition(doc.Status, target); err != nil {
		s.LogDebug(ctx, "Transition rejected",
			slog.String("document_id", documentID),
			slog.String("from", string(doc.Status)),
			slog.String("to", string(target)))
		return nil, err
	}

	entry := domain.StatusHistoryEntry{
		HistoryID:   uuid.NewString(),
		DocumentID:  documentID,
		FromStatus:  doc.Status,
		ToStatus:    target,
		Description: strings.TrimSpace(description),
		ActorID:     actorID,
		CreatedAt:   s.Now(),
	}
	if err := s.docRepo.TransitionStatus(ctx, entry); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to persist transition", slog.String("document_id", documentID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Document status changed",
		slog.String("document_id", documentID),
		slog.String("from", string(entry.FromStatus)),
		slog.String("to", string(entry.ToStatus)))
	return &domain.TransitionResult{DocumentID: documentID, NewStatus: target, HistoryEntry: entry}, nil
}

// BulkTransition runs every id through TransitionDocument independently; one failure never stops the rest.
// Duplicate ids are processed once, in first-seen order.
func (s *documentService) BulkTransition(ctx context.Context, documentIDs []string, target domain.DocumentStatus, description string, actorID string) (*domain.BulkTransitionResult, error) {
	if len(documentIDs) == 0 {
		return nil, apperrors.NewValidationError("at least one document id is required")
	}
	if !target.IsValid() {
		return nil, apperrors.NewValidationError("unknown target status " + string(target))
	}

	result := &domain.BulkTransitionResult{
		Results:  []domain.TransitionResult{},
		Failures: []domain.BulkTransitionFailure{},
	}
	seen := make(map[string]struct{}, len(documentIDs))
	for _, id := range documentIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		res, err := s.TransitionDocument(ctx, id, target, description, actorID)
		if err != nil {
			result.Failures = append(result.Failures, domain.BulkTransitionFailure{
				DocumentID: id,
				Code:       apperrors.Code(err),
				Error:      err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, *res)
		result.Succeeded++
	}

	s.LogInfo(ctx, "Bulk transition finished",
		slog.String("to", string(target)),
		slog.Int("succeeded", result.Succeeded),
		slog.Int("failed", len(result.Failures)))
	return result, nil
}
