package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/SscSPs/cek_senet_app/internal/core/services"
	"github.com/SscSPs/cek_senet_app/internal/platform/exchangerate"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockProvider *MockRateProvider
	mockRateRepo *MockExchangeRateRepository
	cacheNow     time.Time
	service      *services.ExchangeRateService
	ctx          context.Context
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockProvider = new(MockRateProvider)
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.cacheNow = time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)
	cache := exchangerate.NewCache(time.Hour, exchangerate.WithClock(func() time.Time { return suite.cacheNow }))
	suite.service = services.NewExchangeRateService(suite.mockProvider, cache, suite.mockRateRepo)
	suite.ctx = context.Background()
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}

func rateTable() *domain.RateTable {
	return &domain.RateTable{
		RateDate: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		Quotes: map[string]domain.RateQuote{
			"USD": {CurrencyCode: "USD", Unit: 1, Buying: dec("36.40"), Selling: dec("36.50")},
			"EUR": {CurrencyCode: "EUR", Unit: 1, Buying: dec("39.90"), Selling: dec("40.00")},
			"JPY": {CurrencyCode: "JPY", Unit: 100, Buying: dec("24.10"), Selling: dec("24.20")},
		},
	}
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_FetchesOnceWhileFresh() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Once()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.AnythingOfType("domain.RateTable")).Return(nil).Once()

	first, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	second, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)

	suite.False(first.Stale)
	suite.Same(first, second)
	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 1)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_ServesStaleCacheWhenFetchFails() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Once()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.Anything).Return(nil).Once()
	_, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)

	suite.cacheNow = suite.cacheNow.Add(2 * time.Hour)
	suite.mockProvider.On("FetchRates", mock.Anything).Return(nil, apperrors.ErrUnavailable).Once()

	table, err := suite.service.GetRates(suite.ctx)

	suite.Require().NoError(err)
	suite.True(table.Stale)
	suite.Contains(table.Quotes, "USD")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindLatestRateTable", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_FallsBackToStoredSnapshot() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(nil, apperrors.ErrUnavailable).Once()
	suite.mockRateRepo.On("FindLatestRateTable", mock.Anything).Return(rateTable(), nil).Once()

	table, err := suite.service.GetRates(suite.ctx)

	suite.Require().NoError(err)
	suite.True(table.Stale)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_Unavailable() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(nil, apperrors.ErrUnavailable).Once()
	suite.mockRateRepo.On("FindLatestRateTable", mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetRates(suite.ctx)

	suite.ErrorIs(err, apperrors.ErrUnavailable)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRates_PersistFailureStillServes() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Once()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	table, err := suite.service.GetRates(suite.ctx)

	suite.Require().NoError(err)
	suite.False(table.Stale)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Once()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.Anything).Return(nil).Once()

	testCases := []struct {
		name     string
		amount   string
		from, to string
		want     string
	}{
		{"usd to try", "100", "USD", "TRY", "3650.00"},
		{"try to usd", "3650", "try", "usd", "100.00"},
		{"eur to usd cross", "100", "EUR", "USD", "109.59"},
		{"jpy per unit", "1000", "JPY", "TRY", "242.00"},
	}
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			conv, err := suite.service.Convert(suite.ctx, dec(tc.amount), tc.from, tc.to)
			suite.Require().NoError(err)
			suite.Equal(tc.want, conv.Result.StringFixed(2))
		})
	}
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_SameCurrencyNeedsNoRates() {
	conv, err := suite.service.Convert(suite.ctx, dec("12.345"), "USD", "usd")

	suite.Require().NoError(err)
	suite.Equal("12.35", conv.Result.StringFixed(2))
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchRates", mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_UnknownCurrency() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Once()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.Convert(suite.ctx, dec("1"), "XYZ", "TRY")

	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestClearCache_ForcesRefetch() {
	suite.mockProvider.On("FetchRates", mock.Anything).Return(rateTable(), nil).Twice()
	suite.mockRateRepo.On("SaveRateTable", mock.Anything, mock.Anything).Return(nil).Twice()

	_, err := suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)
	suite.service.ClearCache()
	_, err = suite.service.GetRates(suite.ctx)
	suite.Require().NoError(err)

	suite.mockProvider.AssertNumberOfCalls(suite.T(), "FetchRates", 2)
}
