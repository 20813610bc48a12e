// Package exchangerate fetches Turkish central bank (TCMB) exchange rates and caches them.
package exchangerate

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/cek_senet_app/internal/apperrors"
	"github.com/SscSPs/cek_senet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DefaultURL is the TCMB daily bulletin.
const DefaultURL = "https://www.tcmb.gov.tr/kurlar/today.xml"

// maxBodyBytes bounds the bulletin size; the real document is around 10 KiB.
const maxBodyBytes = 1 << 20

type tcmbBulletin struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Date       string         `xml:"Date,attr"` // MM/DD/YYYY
	Currencies []tcmbCurrency `xml:"Currency"`
}

type tcmbCurrency struct {
	Code         string `xml:"CurrencyCode,attr"`
	Unit         string `xml:"Unit"`
	ForexBuying  string `xml:"ForexBuying"`
	ForexSelling string `xml:"ForexSelling"`
}

// TCMBClient downloads and parses the TCMB bulletin.
type TCMBClient struct {
	url        string
	httpClient *http.Client
	now        func() time.Time
}

// ClientOption configures a TCMBClient.
type ClientOption func(*TCMBClient)

// WithHTTPClient replaces the HTTP client. Its Timeout is overwritten by NewTCMBClient's timeout when zero.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(t *TCMBClient) {
		t.httpClient = c
	}
}

// WithClientClock sets the clock used to stamp FetchedAt.
func WithClientClock(now func() time.Time) ClientOption {
	return func(t *TCMBClient) {
		t.now = now
	}
}

// NewTCMBClient creates a client for url with a fixed per-request timeout.
func NewTCMBClient(url string, timeout time.Duration, opts ...ClientOption) *TCMBClient {
	if url == "" {
		url = DefaultURL
	}
	c := &TCMBClient{
		url:        url,
		httpClient: &http.Client{},
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = timeout
	}
	return c
}

// FetchRates downloads the current bulletin. Every failure matches apperrors.ErrUnavailable.
func (c *TCMBClient) FetchRates(ctx context.Context) (*domain.RateTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build exchange rate request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch exchange rates: %v: %w", err, apperrors.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch exchange rates: unexpected status %s: %w", resp.Status, apperrors.ErrUnavailable)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read exchange rates: %v: %w", err, apperrors.ErrUnavailable)
	}

	table, err := ParseBulletin(body)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, apperrors.ErrUnavailable)
	}
	table.FetchedAt = c.now()
	return table, nil
}

// ParseBulletin parses a TCMB today.xml document. Currencies without forex quotes are skipped.
func ParseBulletin(body []byte) (*domain.RateTable, error) {
	var b tcmbBulletin
	if err := xml.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("parse exchange rate bulletin: %w", err)
	}

	table := &domain.RateTable{Quotes: make(map[string]domain.RateQuote, len(b.Currencies))}
	if b.Date != "" {
		rateDate, err := time.Parse("01/02/2006", b.Date)
		if err != nil {
			return nil, fmt.Errorf("parse bulletin date %q: %w", b.Date, err)
		}
		table.RateDate = rateDate
	}

	for _, cur := range b.Currencies {
		code := strings.ToUpper(strings.TrimSpace(cur.Code))
		buying, errB := decimal.NewFromString(strings.TrimSpace(cur.ForexBuying))
		selling, errS := decimal.NewFromString(strings.TrimSpace(cur.ForexSelling))
		if code == "" || errB != nil || errS != nil || !selling.IsPositive() {
			continue
		}
		unit := 1
		if u, err := decimal.NewFromString(strings.TrimSpace(cur.Unit)); err == nil && u.IsPositive() {
			unit = int(u.IntPart())
		}
		table.Quotes[code] = domain.RateQuote{
			CurrencyCode: code,
			Unit:         unit,
			Buying:       buying,
			Selling:      selling,
		}
	}
	if len(table.Quotes) == 0 {
		return nil, fmt.Errorf("exchange rate bulletin contains no usable quotes")
	}
	return table, nil
}
