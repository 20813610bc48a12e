package repositories

import (
	"context"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
)

// DocumentReader defines read operations for check and note data
type DocumentReader interface {
	// FindDocumentByID retrieves a document without its history.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)

	// ListDocuments retrieves a filtered page of documents ordered by due date, using token-based pagination.
	// It returns the documents, a token for the next page, and an error.
	ListDocuments(ctx context.Context, filter domain.DocumentFilter, limit int, nextToken *string) ([]domain.Document, *string, error)

	// FindAllDocuments returns every document matching the filter, for reports, exports and backups.
	FindAllDocuments(ctx context.Context, filter domain.DocumentFilter) ([]domain.Document, error)

	// CountDocumentsByParty counts the documents referencing a party.
	CountDocumentsByParty(ctx context.Context, partyID string) (int, error)
}

// DocumentWriter defines write operations for non-status document fields
type DocumentWriter interface {
	// SaveDocument persists a new document. A taken document number yields apperrors.ErrDuplicate.
	SaveDocument(ctx context.Context, document domain.Document) error

	// UpdateDocument updates the editable fields of a document. Status is never written here.
	UpdateDocument(ctx context.Context, document domain.Document) error

	// DeleteDocument removes a document together with its history.
	DeleteDocument(ctx context.Context, documentID string) error
}

// StatusHistoryRepository defines the status change and its audit trail
type StatusHistoryRepository interface {
	// TransitionStatus moves a document from entry.FromStatus to entry.ToStatus and inserts entry,
	// both in one database transaction. If the stored status is no longer entry.FromStatus
	// nothing is written and apperrors.ErrConflict is returned.
	TransitionStatus(ctx context.Context, entry domain.StatusHistoryEntry) error

	// FindHistoryByDocumentID returns a document's history ordered oldest first.
	FindHistoryByDocumentID(ctx context.Context, documentID string) ([]domain.StatusHistoryEntry, error)

	// FindAllHistory returns every history entry, for backups.
	FindAllHistory(ctx context.Context) ([]domain.StatusHistoryEntry, error)
}

// DocumentRepositoryFacade combines all document-related repository interfaces
type DocumentRepositoryFacade interface {
	DocumentReader
	DocumentWriter
	StatusHistoryRepository
}

// DocumentRepositoryWithTx extends DocumentRepositoryFacade with transaction capabilities
type DocumentRepositoryWithTx interface {
	DocumentRepositoryFacade
	TransactionManager
}
