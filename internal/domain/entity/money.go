package entity

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

// Monetary amounts are carried as int64 cents to avoid floating point
// precision issues. User-facing values travel as decimal strings.

// MaxDecimalPlaces is the maximum number of decimal places an amount may have
const MaxDecimalPlaces = 2

// ParseAmount validates a decimal string and converts it to cents.
// Accepted shapes: "1000", "1000.5", "1000.50". A comma decimal separator
// is tolerated because Telegram users type both.
func ParseAmount(amount string) (int64, error) {
	amount = strings.TrimSpace(strings.ReplaceAll(amount, ",", "."))
	if amount == "" {
		return 0, fmt.Errorf("%w: empty value", errs.ErrInvalidAmount)
	}
	if strings.HasPrefix(amount, "-") {
		return 0, fmt.Errorf("%w: must be positive", errs.ErrInvalidAmount)
	}

	parts := strings.Split(amount, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("%w: invalid number format", errs.ErrInvalidAmount)
	}

	var digits string
	if len(parts) == 1 {
		digits = parts[0] + "00"
	} else {
		switch len(parts[1]) {
		case 0:
			digits = parts[0] + "00"
		case 1:
			digits = parts[0] + parts[1] + "0"
		case 2:
			digits = parts[0] + parts[1]
		default:
			return 0, fmt.Errorf("%w: maximum %d decimal places allowed", errs.ErrInvalidAmount, MaxDecimalPlaces)
		}
	}

	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errs.ErrInvalidAmount, err.Error())
	}
	return value, nil
}

// ParsePositiveAmount is ParseAmount with a strictly-positive requirement,
// used for deal amounts and withdrawal requests.
func ParsePositiveAmount(amount string) (int64, error) {
	cents, err := ParseAmount(amount)
	if err != nil {
		return 0, err
	}
	if cents <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", errs.ErrInvalidAmount)
	}
	return cents, nil
}

// FormatAmount converts cents into a decimal string with two places.
// 1015 becomes "10.15", -50 becomes "-0.50".
func FormatAmount(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	s := strconv.FormatInt(cents, 10)
	for len(s) < 3 {
		s = "0" + s
	}

	out := s[:len(s)-2] + "." + s[len(s)-2:]
	if negative {
		return "-" + out
	}
	return out
}

// FormatMoney renders an amount together with its currency, e.g. "1000.00 USDT"
func FormatMoney(cents int64, currency Currency) string {
	return FormatAmount(cents) + " " + currency.String()
}
