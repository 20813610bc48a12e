package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateQuote is the central bank quote of one currency against TRY.
type RateQuote struct {
	CurrencyCode string          `json:"currencyCode"`
	Unit         int             `json:"unit"` // Quotes are per Unit units of the currency (e.g. 100 JPY)
	Buying       decimal.Decimal `json:"buying"`
	Selling      decimal.Decimal `json:"selling"`
}

// PerUnitSelling returns the TRY selling price of a single unit.
func (q RateQuote) PerUnitSelling() decimal.Decimal {
	if q.Unit <= 1 {
		return q.Selling
	}
	return q.Selling.DivRound(decimal.NewFromInt(int64(q.Unit)), 8)
}

// RateTable is one snapshot of quotes keyed by currency code.
type RateTable struct {
	RateDate  time.Time            `json:"rateDate"`
	FetchedAt time.Time            `json:"fetchedAt"`
	Stale     bool                 `json:"stale"` // Served from a fallback after a failed refresh
	Quotes    map[string]RateQuote `json:"quotes"`
}

// Conversion is the result of converting an amount between two currencies.
type Conversion struct {
	Amount       decimal.Decimal `json:"amount"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Result       decimal.Decimal `json:"result"`
	RateDate     time.Time       `json:"rateDate"`
}
