package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	adminuc "github.com/akruglov/escrow-bot/internal/domain/usecase/admin"
	coremocks "github.com/akruglov/escrow-bot/mocks/port/core"
	persistencemocks "github.com/akruglov/escrow-bot/mocks/port/persistence"
)

const (
	userID  = int64(100)
	adminID = int64(555)
	ownerID = int64(999)
)

var fixedTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *coremocks.MockLogger {
	l := new(coremocks.MockLogger)
	l.On("Debug", mock.Anything, mock.Anything).Maybe()
	l.On("Info", mock.Anything, mock.Anything).Maybe()
	l.On("Warn", mock.Anything, mock.Anything).Maybe()
	l.On("Error", mock.Anything, mock.Anything).Maybe()
	return l
}

func fixedClock() *coremocks.MockTimeProvider {
	tp := new(coremocks.MockTimeProvider)
	tp.On("Now").Return(fixedTime).Maybe()
	return tp
}

func testAuthority(adminIDs ...int64) *adminuc.Authority {
	adminRepo := new(persistencemocks.MockAdminRepository)
	adminRepo.On("Exists", mock.Anything, mock.AnythingOfType("int64")).
		Return(func(_ context.Context, id int64) bool {
			for _, a := range adminIDs {
				if a == id {
					return true
				}
			}
			return false
		}, nil).Maybe()
	return adminuc.NewAuthority(ownerID, adminRepo, fixedClock(), quietLogger())
}

func newLedger(balanceRepo *persistencemocks.MockBalanceRepository, withdrawalRepo *persistencemocks.MockWithdrawalRepository, notifier *coremocks.MockNotifier, adminIDs ...int64) *LedgerUseCase {
	return NewLedgerUseCase(balanceRepo, withdrawalRepo, testAuthority(adminIDs...), notifier, fixedClock(), quietLogger())
}

func TestLedgerUseCase_Credit(t *testing.T) {
	ctx := context.Background()
	balanceRepo := new(persistencemocks.MockBalanceRepository)
	balanceRepo.On("Credit", ctx, userID, entity.CurrencyUSDT, int64(10000)).Return(nil)

	uc := newLedger(balanceRepo, new(persistencemocks.MockWithdrawalRepository), new(coremocks.MockNotifier))

	assert.NoError(t, uc.Credit(ctx, userID, entity.CurrencyUSDT, 10000))
	assert.ErrorIs(t, uc.Credit(ctx, userID, entity.Currency("EUR"), 10000), errs.ErrInvalidCurrency)

	balanceRepo.AssertExpectations(t)
}

func TestLedgerUseCase_GetBalances(t *testing.T) {
	ctx := context.Background()
	balanceRepo := new(persistencemocks.MockBalanceRepository)
	balanceRepo.On("Get", ctx, userID, entity.CurrencyUSDT).
		Return(&entity.Balance{UserID: userID, Currency: entity.CurrencyUSDT, Cents: 10000}, nil)
	balanceRepo.On("Get", ctx, userID, entity.CurrencyRUB).
		Return(&entity.Balance{UserID: userID, Currency: entity.CurrencyRUB, Cents: 0}, nil)

	uc := newLedger(balanceRepo, new(persistencemocks.MockWithdrawalRepository), new(coremocks.MockNotifier))

	balances, err := uc.GetBalances(ctx, userID)
	assert.NoError(t, err)
	assert.Len(t, balances, 2)
	assert.Equal(t, int64(10000), balances[0].Cents)
	assert.Equal(t, int64(0), balances[1].Cents)
}

func TestLedgerUseCase_RequestWithdrawal(t *testing.T) {
	t.Run("should file a REQUESTED withdrawal and notify", func(t *testing.T) {
		ctx := context.Background()
		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Create", ctx, mock.AnythingOfType("*entity.Withdrawal")).Return(nil)

		notifier := new(coremocks.MockNotifier)
		notifier.On("WithdrawalRequested", mock.AnythingOfType("*entity.Withdrawal")).Return()

		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, notifier)

		// No balance check happens at request time
		w, err := uc.RequestWithdrawal(ctx, userID, entity.CurrencyUSDT, 1_000_000)
		assert.NoError(t, err)
		assert.Equal(t, entity.WithdrawalRequested, w.Status)
		assert.Equal(t, fixedTime, w.CreatedAt)
		notifier.AssertExpectations(t)
	})

	t.Run("should reject invalid input", func(t *testing.T) {
		ctx := context.Background()
		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, new(coremocks.MockNotifier))

		_, err := uc.RequestWithdrawal(ctx, userID, entity.Currency("EUR"), 100)
		assert.ErrorIs(t, err, errs.ErrInvalidCurrency)

		_, err = uc.RequestWithdrawal(ctx, userID, entity.CurrencyUSDT, 0)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)

		withdrawalRepo.AssertNotCalled(t, "Create")
	})
}

func TestLedgerUseCase_RequestFullWithdrawal(t *testing.T) {
	t.Run("should prefer USDT when both balances hold funds", func(t *testing.T) {
		ctx := context.Background()
		balanceRepo := new(persistencemocks.MockBalanceRepository)
		balanceRepo.On("Get", ctx, userID, entity.CurrencyUSDT).
			Return(&entity.Balance{UserID: userID, Currency: entity.CurrencyUSDT, Cents: 5000}, nil)

		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Create", ctx, mock.AnythingOfType("*entity.Withdrawal")).Return(nil)

		notifier := new(coremocks.MockNotifier)
		notifier.On("WithdrawalRequested", mock.Anything).Return()

		uc := newLedger(balanceRepo, withdrawalRepo, notifier)

		w, err := uc.RequestFullWithdrawal(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, entity.CurrencyUSDT, w.Currency)
		assert.Equal(t, int64(5000), w.AmountCents)
	})

	t.Run("should fall back to RUB when USDT is empty", func(t *testing.T) {
		ctx := context.Background()
		balanceRepo := new(persistencemocks.MockBalanceRepository)
		balanceRepo.On("Get", ctx, userID, entity.CurrencyUSDT).
			Return(&entity.Balance{UserID: userID, Currency: entity.CurrencyUSDT, Cents: 0}, nil)
		balanceRepo.On("Get", ctx, userID, entity.CurrencyRUB).
			Return(&entity.Balance{UserID: userID, Currency: entity.CurrencyRUB, Cents: 300000}, nil)

		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Create", ctx, mock.AnythingOfType("*entity.Withdrawal")).Return(nil)

		notifier := new(coremocks.MockNotifier)
		notifier.On("WithdrawalRequested", mock.Anything).Return()

		uc := newLedger(balanceRepo, withdrawalRepo, notifier)

		w, err := uc.RequestFullWithdrawal(ctx, userID)
		assert.NoError(t, err)
		assert.Equal(t, entity.CurrencyRUB, w.Currency)
		assert.Equal(t, int64(300000), w.AmountCents)
	})

	t.Run("should report an empty ledger", func(t *testing.T) {
		ctx := context.Background()
		balanceRepo := new(persistencemocks.MockBalanceRepository)
		balanceRepo.On("Get", ctx, userID, mock.Anything).
			Return(&entity.Balance{UserID: userID, Cents: 0}, nil)

		uc := newLedger(balanceRepo, new(persistencemocks.MockWithdrawalRepository), new(coremocks.MockNotifier))

		_, err := uc.RequestFullWithdrawal(ctx, userID)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestLedgerUseCase_ApproveWithdrawal(t *testing.T) {
	t.Run("admin approval runs the atomic unit and notifies the requester", func(t *testing.T) {
		ctx := context.Background()
		approved := &entity.Withdrawal{
			ID:          7,
			UserID:      userID,
			Currency:    entity.CurrencyUSDT,
			AmountCents: 5000,
			Status:      entity.WithdrawalApproved,
			CreatedAt:   fixedTime,
			ApprovedAt:  &fixedTime,
		}

		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Approve", ctx, int64(7), fixedTime).Return(approved, nil)

		notifier := new(coremocks.MockNotifier)
		notifier.On("WithdrawalApproved", approved).Return()

		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, notifier, adminID)

		w, err := uc.ApproveWithdrawal(ctx, adminID, 7)
		assert.NoError(t, err)
		assert.Equal(t, entity.WithdrawalApproved, w.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("non-admin is rejected before the store is touched", func(t *testing.T) {
		ctx := context.Background()
		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)

		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, new(coremocks.MockNotifier))

		_, err := uc.ApproveWithdrawal(ctx, userID, 7)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		withdrawalRepo.AssertNotCalled(t, "Approve")
	})

	t.Run("insufficient balance surfaces without notification", func(t *testing.T) {
		ctx := context.Background()
		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Approve", ctx, int64(7), fixedTime).
			Return(nil, errs.NewInsufficientBalanceError(userID, "USDT", "50.00", "10.00"))

		notifier := new(coremocks.MockNotifier)
		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, notifier, adminID)

		_, err := uc.ApproveWithdrawal(ctx, adminID, 7)
		assert.ErrorIs(t, err, errs.ErrInsufficientBalance)
		notifier.AssertNotCalled(t, "WithdrawalApproved")
	})

	t.Run("already processed request reads as not found", func(t *testing.T) {
		ctx := context.Background()
		withdrawalRepo := new(persistencemocks.MockWithdrawalRepository)
		withdrawalRepo.On("Approve", ctx, int64(7), fixedTime).Return(nil, errs.ErrWithdrawalNotFound)

		uc := newLedger(new(persistencemocks.MockBalanceRepository), withdrawalRepo, new(coremocks.MockNotifier), adminID)

		_, err := uc.ApproveWithdrawal(ctx, adminID, 7)
		assert.ErrorIs(t, err, errs.ErrWithdrawalNotFound)
	})
}
