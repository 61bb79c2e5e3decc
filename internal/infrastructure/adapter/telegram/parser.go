package telegram

import (
	"strings"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

// ParseAmountInput parses the amount step of the create-deal flow.
// Expected shape: "<amount> <currency>", e.g. "100 USDT" or "5000.50 rub".
func ParseAmountInput(text string) (int64, entity.Currency, error) {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) != 2 {
		return 0, "", errs.ErrInvalidAmount
	}

	cents, err := entity.ParsePositiveAmount(fields[0])
	if err != nil {
		return 0, "", err
	}

	currency, err := entity.ParseCurrency(fields[1])
	if err != nil {
		return 0, "", err
	}

	return cents, currency, nil
}
