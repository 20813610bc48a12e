package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one quote of a persisted rate snapshot. A snapshot is all rows sharing fetched_at.
type ExchangeRate struct {
	CurrencyCode string          `db:"currency_code"`
	Unit         int             `db:"unit"`
	Buying       decimal.Decimal `db:"buying"`
	Selling      decimal.Decimal `db:"selling"`
	RateDate     time.Time       `db:"rate_date"`
	FetchedAt    time.Time       `db:"fetched_at"`
}
