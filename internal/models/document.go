package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Document is a row of the documents table. party_name is joined from parties on read.
type Document struct {
	DocumentID     string          `db:"document_id"`
	DocumentType   string          `db:"document_type"`
	DocumentNumber string          `db:"document_number"`
	Amount         decimal.Decimal `db:"amount"`
	CurrencyCode   string          `db:"currency_code"`
	DueDate        time.Time       `db:"due_date"`
	IssueDate      sql.NullTime    `db:"issue_date"`
	IssuerName     string          `db:"issuer_name"`
	BankName       string          `db:"bank_name"`
	BranchName     string          `db:"branch_name"`
	AccountNumber  string          `db:"account_number"`
	PartyID        sql.NullString  `db:"party_id"`
	PartyName      sql.NullString  `db:"party_name"`
	Direction      string          `db:"direction"`
	Status         string          `db:"status"`
	Notes          string          `db:"notes"`
	AuditFields
}

// StatusHistory is a row of the document_status_history table.
type StatusHistory struct {
	HistoryID   string    `db:"history_id"`
	DocumentID  string    `db:"document_id"`
	FromStatus  string    `db:"from_status"`
	ToStatus    string    `db:"to_status"`
	Description string    `db:"description"`
	ActorID     string    `db:"actor_id"`
	CreatedAt   time.Time `db:"created_at"`
}
