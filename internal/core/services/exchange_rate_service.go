package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/cek_senet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cek_senet_app/internal/core/ports/services"
	"github.com/SscSPs/cek_senet_app/internal/platform/exchangerate"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// ExchangeRateService serves central bank rates with an in-memory cache and a persisted fallback.
type ExchangeRateService struct {
	BaseService
	provider portssvc.RateProvider
	cache    *exchangerate.Cache
	rateRepo portsrepo.ExchangeRateRepositoryFacade
	refresh  singleflight.Group
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(provider portssvc.RateProvider, cache *exchangerate.Cache, rateRepo portsrepo.ExchangeRateRepositoryFacade, opts ...ServiceOption) *ExchangeRateService {
	return &ExchangeRateService{
		BaseService: newBaseService(opts...),
		provider:    provider,
		cache:       cache,
		rateRepo:    rateRepo,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// GetRates tries, in order: a fresh cache entry, a new fetch, the stale cache entry,
// and the last persisted snapshot. Fallback tables are returned with Stale set.
func (s *ExchangeRateService) GetRates(ctx context.Context) (*domain.RateTable, error) {
	cached, fresh := s.cache.Get()
	if cached != nil && fresh {
		return cached, nil
	}

	v, fetchErr, _ := s.refresh.Do("rates", func() (any, error) {
		return s.fetchAndStore(ctx)
	})
	if fetchErr == nil {
		return v.(*domain.RateTable), nil
	}
	s.LogWarn(ctx, "Exchange rate fetch failed, using fallback", slog.String("error", fetchErr.Error()))

	if cached != nil {
		return markStale(cached), nil
	}

	stored, err := s.rateRepo.FindLatestRateTable(ctx)
	if err == nil {
		return markStale(stored), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load persisted exchange rates")
	}
	return nil, fmt.Errorf("no exchange rates available: %w", fetchErr)
}

func (s *ExchangeRateService) fetchAndStore(ctx context.Context) (*domain.RateTable, error) {
	table, err := s.provider.FetchRates(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(table)
	if err := s.rateRepo.SaveRateTable(ctx, *table); err != nil {
		// The fetched table is still good to serve.
		s.LogError(ctx, err, "Failed to persist exchange rates")
	}
	s.LogInfo(ctx, "Exchange rates refreshed",
		slog.Int("quotes", len(table.Quotes)),
		slog.Time("rate_date", table.RateDate))
	return table, nil
}

func markStale(t *domain.RateTable) *domain.RateTable {
	cp := *t
	cp.Stale = true
	return &cp
}

// Convert converts through TRY: amount * perUnitSelling(from) / perUnitSelling(to), rounded to 2 places.
func (s *ExchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (*domain.Conversion, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))
	if amount.IsNegative() {
		return nil, apperrors.NewValidationError("amount cannot be negative")
	}

	conv := &domain.Conversion{Amount: amount, FromCurrency: from, ToCurrency: to}
	if from == to {
		conv.Rate = decimal.NewFromInt(1)
		conv.Result = amount.Round(2)
		conv.RateDate = s.Today()
		return conv, nil
	}

	table, err := s.GetRates(ctx)
	if err != nil {
		return nil, err
	}
	fromRate, err := tryPrice(table, from)
	if err != nil {
		return nil, err
	}
	toRate, err := tryPrice(table, to)
	if err != nil {
		return nil, err
	}

	conv.Rate = fromRate.DivRound(toRate, 8)
	conv.Result = amount.Mul(fromRate).DivRound(toRate, 2)
	conv.RateDate = table.RateDate
	return conv, nil
}

// tryPrice returns the TRY price of one unit of code.
func tryPrice(table *domain.RateTable, code string) (decimal.Decimal, error) {
	if code == domain.DefaultCurrencyCode {
		return decimal.NewFromInt(1), nil
	}
	q, ok := table.Quotes[code]
	if !ok || !q.PerUnitSelling().IsPositive() {
		return decimal.Zero, apperrors.NewValidationError("no exchange rate for currency " + code)
	}
	return q.PerUnitSelling(), nil
}

// ClearCache drops the cached table so the next request refetches.
func (s *ExchangeRateService) ClearCache() {
	s.cache.Clear()
}
