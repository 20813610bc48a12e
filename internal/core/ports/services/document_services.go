package services

import (
	"context"
	"io"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/dto"
)

// DocumentReaderSvc defines read operations for checks and notes
type DocumentReaderSvc interface {
	// GetDocumentByID retrieves a document together with its status history.
	GetDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a filtered page of documents using token-based pagination.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error)

	// GetDocumentHistory returns a document's status history, oldest first.
	GetDocumentHistory(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error)

	// GetAllowedTransitions returns the document's current status and the statuses reachable from it.
	GetAllowedTransitions(ctx context.Context, documentID string) (domain.DocumentStatus, []domain.DocumentStatus, error)
}

// DocumentWriterSvc defines write operations for non-status document fields
type DocumentWriterSvc interface {
	// CreateDocument records a new document in the portfolio status.
	CreateDocument(ctx context.Context, req dto.CreateDocumentRequest, userID string) (*domain.Document, error)

	// UpdateDocument edits a document that is not in a terminal status.
	UpdateDocument(ctx context.Context, documentID string, req dto.UpdateDocumentRequest, userID string) (*domain.Document, error)

	// DeleteDocument removes a document and its history.
	DeleteDocument(ctx context.Context, documentID string, userID string) error

	// ImportDocuments creates one document per data row of an uploaded workbook.
	ImportDocuments(ctx context.Context, workbook io.Reader, userID string) (*domain.ImportResult, error)
}

// DocumentStatusSvc defines the status machine operations
type DocumentStatusSvc interface {
	// TransitionDocument validates and applies one status change, recording a history entry.
	TransitionDocument(ctx context.Context, documentID string, target domain.DocumentStatus, description string, actorID string) (*domain.TransitionResult, error)

	// BulkTransition applies TransitionDocument to each id independently and reports per-id outcomes.
	BulkTransition(ctx context.Context, documentIDs []string, target domain.DocumentStatus, description string, actorID string) (*domain.BulkTransitionResult, error)
}

// DocumentSvcFacade combines all document-related service interfaces
type DocumentSvcFacade interface {
	DocumentReaderSvc
	DocumentWriterSvc
	DocumentStatusSvc
}
