package utils

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var currencyCodePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// IsCurrencyCode reports whether code looks like an ISO 4217 alphabetic code.
func IsCurrencyCode(code string) bool {
	return currencyCodePattern.MatchString(code)
}

// NormalizeCurrencyCode upper-cases and trims code, falling back to def when it is empty.
func NormalizeCurrencyCode(code, def string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return def
	}
	return code
}

// FormatAmount formats an amount with two decimals, the precision used for TRY and the quoted currencies.
// Example: 12.345 returns "12.35"
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
