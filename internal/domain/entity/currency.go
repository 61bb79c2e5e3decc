package entity

import (
	"strings"

	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

// Currency is the closed set of settlement currencies
type Currency string

const (
	CurrencyUSDT Currency = "USDT"
	CurrencyRUB  Currency = "RUB"
)

// Currencies lists every supported currency in display order
var Currencies = []Currency{CurrencyUSDT, CurrencyRUB}

// ParseCurrency converts a free-form string into a Currency
func ParseCurrency(s string) (Currency, error) {
	switch Currency(strings.ToUpper(strings.TrimSpace(s))) {
	case CurrencyUSDT:
		return CurrencyUSDT, nil
	case CurrencyRUB:
		return CurrencyRUB, nil
	default:
		return "", errs.ErrInvalidCurrency
	}
}

// Valid reports whether the currency is one of the supported values
func (c Currency) Valid() bool {
	switch c {
	case CurrencyUSDT, CurrencyRUB:
		return true
	}
	return false
}

func (c Currency) String() string {
	return string(c)
}
