package exchangerate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBulletin = `<?xml version="1.0" encoding="UTF-8"?>
<Tarih_Date Tarih="14.10.2026" Date="10/14/2026" Bulten_No="2026/195">
	<Currency CrossOrder="0" Kod="USD" CurrencyCode="USD">
		<Unit>1</Unit>
		<Isim>ABD DOLARI</Isim>
		<CurrencyName>US DOLLAR</CurrencyName>
		<ForexBuying>41.7520</ForexBuying>
		<ForexSelling>41.8272</ForexSelling>
	</Currency>
	<Currency CrossOrder="9" Kod="EUR" CurrencyCode="EUR">
		<Unit>1</Unit>
		<ForexBuying>48.5012</ForexBuying>
		<ForexSelling>48.5886</ForexSelling>
	</Currency>
	<Currency CrossOrder="13" Kod="JPY" CurrencyCode="JPY">
		<Unit>100</Unit>
		<ForexBuying>27.4521</ForexBuying>
		<ForexSelling>27.6338</ForexSelling>
	</Currency>
	<Currency CrossOrder="20" Kod="XDR" CurrencyCode="XDR">
		<Unit>1</Unit>
		<ForexBuying>56.9087</ForexBuying>
		<ForexSelling></ForexSelling>
	</Currency>
</Tarih_Date>`

func TestParseBulletin(t *testing.T) {
	table, err := ParseBulletin([]byte(sampleBulletin))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), table.RateDate)
	require.Len(t, table.Quotes, 3)
	assert.Equal(t, "41.8272", table.Quotes["USD"].Selling.String())
	assert.Equal(t, 100, table.Quotes["JPY"].Unit)
	assert.Equal(t, "0.27633800", table.Quotes["JPY"].PerUnitSelling().StringFixed(8))
	assert.NotContains(t, table.Quotes, "XDR")
}

func TestParseBulletin_Invalid(t *testing.T) {
	_, err := ParseBulletin([]byte("<html>maintenance</html>"))
	assert.Error(t, err)

	_, err = ParseBulletin([]byte(`<Tarih_Date Date="10/14/2026"></Tarih_Date>`))
	assert.Error(t, err)
}

func TestTCMBClient_FetchRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(sampleBulletin))
	}))
	defer srv.Close()

	fixed := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	client := NewTCMBClient(srv.URL, time.Second, WithClientClock(func() time.Time { return fixed }))
	table, err := client.FetchRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fixed, table.FetchedAt)
	assert.Contains(t, table.Quotes, "EUR")
}

func TestTCMBClient_Failures(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewTCMBClient(srv.URL, time.Second).FetchRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(sampleBulletin))
		}))
		defer srv.Close()

		_, err := NewTCMBClient(srv.URL, 20*time.Millisecond).FetchRates(context.Background())
		assert.ErrorIs(t, err, apperrors.ErrUnavailable)
	})
}

func TestCache_TTL(t *testing.T) {
	now := time.Date(2026, time.October, 14, 10, 0, 0, 0, time.UTC)
	cache := NewCache(time.Hour, WithClock(func() time.Time { return now }))

	got, fresh := cache.Get()
	assert.Nil(t, got)
	assert.False(t, fresh)

	table := &domain.RateTable{Quotes: map[string]domain.RateQuote{}}
	cache.Set(table)
	got, fresh = cache.Get()
	assert.Same(t, table, got)
	assert.True(t, fresh)

	now = now.Add(61 * time.Minute)
	got, fresh = cache.Get()
	assert.Same(t, table, got)
	assert.False(t, fresh)

	cache.Clear()
	got, _ = cache.Get()
	assert.Nil(t, got)
}
