package mapping

import (
	"sort"

	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/models"
)

// ToModelExchangeRates flattens a rate table into one row per quote, ordered by currency.
func ToModelExchangeRates(t domain.RateTable) []models.ExchangeRate {
	rows := make([]models.ExchangeRate, 0, len(t.Quotes))
	for _, q := range t.Quotes {
		rows = append(rows, models.ExchangeRate{
			CurrencyCode: q.CurrencyCode,
			Unit:         q.Unit,
			Buying:       q.Buying,
			Selling:      q.Selling,
			RateDate:     t.RateDate,
			FetchedAt:    t.FetchedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CurrencyCode < rows[j].CurrencyCode })
	return rows
}

// ToDomainRateTable groups the rows of one snapshot back into a rate table.
// It returns nil for no rows.
func ToDomainRateTable(rows []models.ExchangeRate) *domain.RateTable {
	if len(rows) == 0 {
		return nil
	}
	t := &domain.RateTable{
		RateDate:  rows[0].RateDate,
		FetchedAt: rows[0].FetchedAt,
		Quotes:    make(map[string]domain.RateQuote, len(rows)),
	}
	for _, r := range rows {
		t.Quotes[r.CurrencyCode] = domain.RateQuote{
			CurrencyCode: r.CurrencyCode,
			Unit:         r.Unit,
			Buying:       r.Buying,
			Selling:      r.Selling,
		}
	}
	return t
}
