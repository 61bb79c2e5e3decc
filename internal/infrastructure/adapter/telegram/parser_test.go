package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

func TestParseAmountInput(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		cases := []struct {
			input    string
			cents    int64
			currency entity.Currency
		}{
			{"100 USDT", 10000, entity.CurrencyUSDT},
			{"100 usdt", 10000, entity.CurrencyUSDT},
			{"5000.50 rub", 500050, entity.CurrencyRUB},
			{"  0.01   USDT  ", 1, entity.CurrencyUSDT},
		}
		for _, tc := range cases {
			cents, currency, err := ParseAmountInput(tc.input)
			assert.NoError(t, err, "input %q", tc.input)
			assert.Equal(t, tc.cents, cents, "input %q", tc.input)
			assert.Equal(t, tc.currency, currency, "input %q", tc.input)
		}
	})

	t.Run("invalid input", func(t *testing.T) {
		cases := map[string]error{
			"":              errs.ErrInvalidAmount,
			"100":           errs.ErrInvalidAmount,
			"100 USDT ftw":  errs.ErrInvalidAmount,
			"0 USDT":        errs.ErrInvalidAmount,
			"-5 USDT":       errs.ErrInvalidAmount,
			"ten USDT":      errs.ErrInvalidAmount,
			"100 EUR":       errs.ErrInvalidCurrency,
			"100 dogecoins": errs.ErrInvalidCurrency,
		}
		for input, want := range cases {
			_, _, err := ParseAmountInput(input)
			assert.ErrorIs(t, err, want, "input %q", input)
		}
	})
}
