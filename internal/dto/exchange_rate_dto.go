package dto

import (
	"sort"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertParams defines the query parameters of a currency conversion.
type ConvertParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currency"`
	To     string `form:"to" binding:"required,currency"`
}

// ExchangeRateResponse defines one quote in API responses.
type ExchangeRateResponse struct {
	CurrencyCode string          `json:"currencyCode"`
	Unit         int             `json:"unit"`
	Buying       decimal.Decimal `json:"buying"`
	Selling      decimal.Decimal `json:"selling"`
}

// RateTableResponse lists the current quotes sorted by currency code.
type RateTableResponse struct {
	RateDate  time.Time              `json:"rateDate"`
	FetchedAt time.Time              `json:"fetchedAt"`
	Stale     bool                   `json:"stale"`
	Rates     []ExchangeRateResponse `json:"rates"`
}

// ToRateTableResponse converts a domain.RateTable to RateTableResponse DTO
func ToRateTableResponse(table *domain.RateTable) RateTableResponse {
	rates := make([]ExchangeRateResponse, 0, len(table.Quotes))
	for _, q := range table.Quotes {
		rates = append(rates, ExchangeRateResponse{
			CurrencyCode: q.CurrencyCode,
			Unit:         q.Unit,
			Buying:       q.Buying,
			Selling:      q.Selling,
		})
	}
	sort.Slice(rates, func(i, j int) bool { return rates[i].CurrencyCode < rates[j].CurrencyCode })
	return RateTableResponse{
		RateDate:  table.RateDate,
		FetchedAt: table.FetchedAt,
		Stale:     table.Stale,
		Rates:     rates,
	}
}
