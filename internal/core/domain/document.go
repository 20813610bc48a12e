package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType distinguishes a check (çek) from a promissory note (senet).
type DocumentType string

const (
	DocumentTypeCheck DocumentType = "check"
	DocumentTypeNote  DocumentType = "note"
)

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	return t == DocumentTypeCheck || t == DocumentTypeNote
}

// DocumentDirection tells whether the business received the document or issued it.
type DocumentDirection string

const (
	DirectionReceived DocumentDirection = "received"
	DirectionIssued   DocumentDirection = "issued"
)

func (d DocumentDirection) IsValid() bool {
	return d == DirectionReceived || d == DirectionIssued
}

// Document is a check or promissory note tracked by the business.
type Document struct {
	DocumentID     string            `json:"documentID"`
	DocumentType   DocumentType      `json:"documentType"`
	DocumentNumber string            `json:"documentNumber"` // Unique, user assigned
	Amount         decimal.Decimal   `json:"amount"`         // Always > 0
	CurrencyCode   string            `json:"currencyCode"`
	DueDate        time.Time         `json:"dueDate"`
	IssueDate      *time.Time        `json:"issueDate,omitempty"`
	IssuerName     string            `json:"issuerName"`
	BankName       string            `json:"bankName"`
	BranchName     string            `json:"branchName"`
	AccountNumber  string            `json:"accountNumber"`
	PartyID        *string           `json:"partyID,omitempty"` // Nullable FK -> parties.party_id
	PartyName      string            `json:"partyName,omitempty"`
	Direction      DocumentDirection `json:"direction"`
	Status         DocumentStatus    `json:"status"`
	Notes          string            `json:"notes"`
	AuditFields

	History []StatusHistoryEntry `json:"history,omitempty"` // Populated only on single fetch
}

// IsOverdue reports whether an open document's due date is before asOf's calendar day.
func (d Document) IsOverdue(asOf time.Time) bool {
	if d.Status.IsTerminal() {
		return false
	}
	return DateOnly(d.DueDate).Before(DateOnly(asOf))
}

// StatusHistoryEntry is an immutable record of one accepted status transition.
type StatusHistoryEntry struct {
	HistoryID   string         `json:"historyID"`
	DocumentID  string         `json:"documentID"`
	FromStatus  DocumentStatus `json:"fromStatus"`
	ToStatus    DocumentStatus `json:"toStatus"`
	Description string         `json:"description"`
	ActorID     string         `json:"actorID"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// TransitionResult is what a successful status change produces.
type TransitionResult struct {
	DocumentID   string             `json:"documentID"`
	NewStatus    DocumentStatus     `json:"newStatus"`
	HistoryEntry StatusHistoryEntry `json:"historyEntry"`
}

// BulkTransitionFailure describes why one document in a bulk request was rejected.
type BulkTransitionFailure struct {
	DocumentID string `json:"documentID"`
	Code       string `json:"code"`
	Error      string `json:"error"`
}

// BulkTransitionResult aggregates a continue-on-error bulk transition.
type BulkTransitionResult struct {
	Succeeded int                     `json:"succeeded"`
	Results   []TransitionResult      `json:"results"`
	Failures  []BulkTransitionFailure `json:"failures"`
}

// DocumentFilter narrows document listings and reports.
type DocumentFilter struct {
	Status       *DocumentStatus
	DocumentType *DocumentType
	Direction    *DocumentDirection
	PartyID      *string
	DueFrom      *time.Time
	DueTo        *time.Time
	Search       string
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ImportFailure is one workbook row that could not be imported.
type ImportFailure struct {
	Row   int    `json:"row"` // 1-based, as shown in spreadsheet software
	Error string `json:"error"`
}

// ImportResult summarizes a continue-on-error workbook import.
type ImportResult struct {
	Imported    int             `json:"imported"`
	DocumentIDs []string        `json:"documentIDs"`
	Failures    []ImportFailure `json:"failures"`
}
