package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusSummary is the count and amount of documents in one status and currency.
type StatusSummary struct {
	Status       DocumentStatus  `json:"status"`
	CurrencyCode string          `json:"currencyCode"`
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// SummaryReport aggregates documents by status and currency.
type SummaryReport struct {
	Rows         []StatusSummary  `json:"rows"`
	TotalCount   int              `json:"totalCount"`
	TotalInTRY   *decimal.Decimal `json:"totalInTRY,omitempty"` // Omitted when rates are unavailable
	OverdueCount int              `json:"overdueCount"`
	GeneratedAt  time.Time        `json:"generatedAt"`
}

// PartySummary is the open exposure against one party.
type PartySummary struct {
	PartyID      string          `json:"partyID"`
	PartyName    string          `json:"partyName"`
	CurrencyCode string          `json:"currencyCode"`
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// MonthlyDue is the total due in one calendar month.
type MonthlyDue struct {
	Month        int             `json:"month"` // 1..12
	CurrencyCode string          `json:"currencyCode"`
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
}

// UpcomingReport lists open documents due soon plus the ones already overdue.
type UpcomingReport struct {
	Days     int        `json:"days"`
	Upcoming []Document `json:"upcoming"`
	Overdue  []Document `json:"overdue"`
}
