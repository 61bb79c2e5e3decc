package ledger

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/port/persistence"
)

// Authority is the slice of the admin use case the ledger needs
type Authority interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// LedgerUseCase owns per-user balances and withdrawal requests. It knows
// nothing about deals; credits arrive from the escrow flow and debits leave
// through administrator-approved withdrawals.
type LedgerUseCase struct {
	balanceRepo    persistence.BalanceRepository
	withdrawalRepo persistence.WithdrawalRepository
	authority      Authority
	notifier       coreport.Notifier
	timeProvider   coreport.TimeProvider
	logger         coreport.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase
func NewLedgerUseCase(
	balanceRepo persistence.BalanceRepository,
	withdrawalRepo persistence.WithdrawalRepository,
	authority Authority,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		balanceRepo:    balanceRepo,
		withdrawalRepo: withdrawalRepo,
		authority:      authority,
		notifier:       notifier,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Credit adds cents to the user's balance, creating the row lazily
func (l *LedgerUseCase) Credit(ctx context.Context, userID int64, currency entity.Currency, cents int64) error {
	if !currency.Valid() {
		return errs.ErrInvalidCurrency
	}
	if err := l.balanceRepo.Credit(ctx, userID, currency, cents); err != nil {
		return err
	}

	l.logger.Info("Balance credited", map[string]any{
		"user_id":  userID,
		"currency": currency.String(),
		"amount":   entity.FormatAmount(cents),
	})
	return nil
}

// GetBalance returns the user's balance in one currency, zero when absent
func (l *LedgerUseCase) GetBalance(ctx context.Context, userID int64, currency entity.Currency) (*entity.Balance, error) {
	if !currency.Valid() {
		return nil, errs.ErrInvalidCurrency
	}
	return l.balanceRepo.Get(ctx, userID, currency)
}

// GetBalances returns the user's balance in every supported currency
func (l *LedgerUseCase) GetBalances(ctx context.Context, userID int64) ([]*entity.Balance, error) {
	out := make([]*entity.Balance, 0, len(entity.Currencies))
	for _, currency := range entity.Currencies {
		b, err := l.balanceRepo.Get(ctx, userID, currency)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

// RequestWithdrawal files a REQUESTED withdrawal for the given amount.
// The balance is deliberately not checked here; the check happens at
// approval time, inside the atomic approval unit.
func (l *LedgerUseCase) RequestWithdrawal(ctx context.Context, userID int64, currency entity.Currency, cents int64) (*entity.Withdrawal, error) {
	if !currency.Valid() {
		return nil, errs.ErrInvalidCurrency
	}
	if cents <= 0 {
		return nil, errs.ErrInvalidAmount
	}

	w := &entity.Withdrawal{
		UserID:      userID,
		Currency:    currency,
		AmountCents: cents,
		Status:      entity.WithdrawalRequested,
		CreatedAt:   l.timeProvider.Now(),
	}
	if err := l.withdrawalRepo.Create(ctx, w); err != nil {
		return nil, err
	}

	l.logger.Info("Withdrawal requested", map[string]any{
		"withdrawal_id": w.ID,
		"user_id":       userID,
		"currency":      currency.String(),
		"amount":        entity.FormatAmount(cents),
	})

	l.notifier.WithdrawalRequested(w)
	return w, nil
}

// RequestFullWithdrawal files a withdrawal for the user's entire balance,
// preferring USDT when both currencies hold funds. ErrValidation when every
// balance is empty.
func (l *LedgerUseCase) RequestFullWithdrawal(ctx context.Context, userID int64) (*entity.Withdrawal, error) {
	for _, currency := range entity.Currencies {
		b, err := l.balanceRepo.Get(ctx, userID, currency)
		if err != nil {
			return nil, err
		}
		if b.Positive() {
			return l.RequestWithdrawal(ctx, userID, currency, b.Cents)
		}
	}
	return nil, errs.ErrValidation
}

// ApproveWithdrawal signs off a pending request. Admin or owner only.
// The debit, the status flip, and the balance check run as one atomic unit
// in the repository; a concurrent second approval of the same id is
// rejected with ErrWithdrawalNotFound and the balance is debited once.
func (l *LedgerUseCase) ApproveWithdrawal(ctx context.Context, actorID, withdrawalID int64) (*entity.Withdrawal, error) {
	ok, err := l.authority.IsAdmin(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.ErrForbidden
	}

	w, err := l.withdrawalRepo.Approve(ctx, withdrawalID, l.timeProvider.Now())
	if err != nil {
		if errs.IsInsufficientBalanceError(err) {
			l.logger.Warn("Withdrawal approval rejected, insufficient balance", map[string]any{
				"withdrawal_id": withdrawalID,
				"approved_by":   actorID,
			})
		}
		return nil, err
	}

	l.logger.Info("Withdrawal approved", map[string]any{
		"withdrawal_id": w.ID,
		"user_id":       w.UserID,
		"currency":      w.Currency.String(),
		"amount":        entity.FormatAmount(w.AmountCents),
		"approved_by":   actorID,
	})

	l.notifier.WithdrawalApproved(w)
	return w, nil
}

// ListWithdrawals returns requests in the given status, most recent first
func (l *LedgerUseCase) ListWithdrawals(ctx context.Context, status entity.WithdrawalStatus, limit int) ([]*entity.Withdrawal, error) {
	return l.withdrawalRepo.ListByStatus(ctx, status, limit)
}
