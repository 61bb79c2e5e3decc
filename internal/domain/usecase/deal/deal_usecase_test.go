package deal

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
	buyerID  = int64(100)
	sellerID = int64(200)
	ownerID  = int64(999)
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

// testAuthority builds a real Authority whose admin set is backed by a mock
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

func pendingInvite() *entity.Deal {
	return &entity.Deal{
		ID:          1,
		BuyerID:     buyerID,
		SellerID:    sellerID,
		AmountCents: 10000,
		Currency:    entity.CurrencyUSDT,
		Terms:       "iPhone 15, sealed box",
		Status:      entity.StatusInviteCreated,
		InviteToken: "tok123",
		ExpiresAt:   fixedTime.Add(entity.InviteTTL),
		CreatedAt:   fixedTime,
	}
}

func TestDealUseCase_CreateInvite(t *testing.T) {
	t.Run("should persist a new invite with generated token", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		tokens := new(coremocks.MockTokenGenerator)
		notifier := new(coremocks.MockNotifier)

		tokens.On("Generate").Return("tok123", nil)
		dealRepo.On("Create", ctx, mock.AnythingOfType("*entity.Deal")).Return(nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), tokens, notifier, fixedClock(), quietLogger())

		deal, err := uc.CreateInvite(ctx, buyerID, sellerID, 10000, entity.CurrencyUSDT, "iPhone 15, sealed box")

		assert.NoError(t, err)
		assert.Equal(t, entity.StatusInviteCreated, deal.Status)
		assert.Equal(t, "tok123", deal.InviteToken)
		assert.Equal(t, fixedTime.Add(entity.InviteTTL), deal.ExpiresAt)

		dealRepo.AssertExpectations(t)
		tokens.AssertExpectations(t)
	})

	t.Run("should reject invalid input without touching the store", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		tokens := new(coremocks.MockTokenGenerator)
		tokens.On("Generate").Return("tok123", nil).Maybe()

		uc := NewDealUseCase(dealRepo, testAuthority(), tokens, new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.CreateInvite(ctx, buyerID, buyerID, 10000, entity.CurrencyUSDT, "iPhone 15, sealed box")
		assert.ErrorIs(t, err, errs.ErrSelfDeal)

		_, err = uc.CreateInvite(ctx, buyerID, sellerID, 10000, entity.CurrencyUSDT, "short")
		assert.ErrorIs(t, err, errs.ErrTermsTooShort)

		dealRepo.AssertNotCalled(t, "Create")
	})
}

func TestDealUseCase_AccessInvite(t *testing.T) {
	t.Run("should return a live invite to the designated seller", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByToken", ctx, "tok123").Return(pendingInvite(), nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		deal, err := uc.AccessInvite(ctx, sellerID, "tok123")
		assert.NoError(t, err)
		assert.Equal(t, int64(1), deal.ID)
	})

	t.Run("should reject anyone but the seller", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByToken", ctx, "tok123").Return(pendingInvite(), nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.AccessInvite(ctx, buyerID, "tok123")
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("should expire a stale invite lazily, exactly once", func(t *testing.T) {
		ctx := context.Background()
		stale := pendingInvite()
		stale.ExpiresAt = fixedTime.Add(-time.Minute)

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByToken", ctx, "tok123").Return(stale, nil)
		dealRepo.On("ExpireInvite", ctx, stale.ID).Return(true, nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.AccessInvite(ctx, sellerID, "tok123")
		assert.ErrorIs(t, err, errs.ErrInviteExpired)
		dealRepo.AssertExpectations(t)
	})

	t.Run("should keep reporting expired on later accesses", func(t *testing.T) {
		ctx := context.Background()
		expired := pendingInvite()
		expired.Status = entity.StatusExpired

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByToken", ctx, "tok123").Return(expired, nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.AccessInvite(ctx, sellerID, "tok123")
		assert.ErrorIs(t, err, errs.ErrInviteExpired)
		dealRepo.AssertNotCalled(t, "ExpireInvite")
	})
}

func TestDealUseCase_Accept(t *testing.T) {
	t.Run("seller accepts a pending invite", func(t *testing.T) {
		ctx := context.Background()
		accepted := pendingInvite()
		accepted.Status = entity.StatusAwaitingDeposit

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(pendingInvite(), nil).Once()
		dealRepo.On("Transition", ctx, int64(1), entity.StatusInviteCreated, entity.StatusAwaitingDeposit, fixedTime).Return(true, nil)
		dealRepo.On("GetByID", ctx, int64(1)).Return(accepted, nil).Once()

		notifier := new(coremocks.MockNotifier)
		notifier.On("DealAccepted", accepted).Return()

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		deal, err := uc.Accept(ctx, sellerID, 1)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusAwaitingDeposit, deal.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("buyer cannot accept on the seller's behalf", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(pendingInvite(), nil)

		notifier := new(coremocks.MockNotifier)
		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		_, err := uc.Accept(ctx, buyerID, 1)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		dealRepo.AssertNotCalled(t, "Transition")
		notifier.AssertNotCalled(t, "DealAccepted")
	})

	t.Run("acting outside the licensing state fails with no notification", func(t *testing.T) {
		ctx := context.Background()
		declined := pendingInvite()
		declined.Status = entity.StatusDeclined

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(declined, nil)

		notifier := new(coremocks.MockNotifier)
		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		_, err := uc.Accept(ctx, sellerID, 1)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		notifier.AssertNotCalled(t, "DealAccepted")
	})

	t.Run("loser of a transition race gets INVALID_STATE", func(t *testing.T) {
		ctx := context.Background()
		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(pendingInvite(), nil)
		dealRepo.On("Transition", ctx, int64(1), entity.StatusInviteCreated, entity.StatusAwaitingDeposit, fixedTime).Return(false, nil)

		notifier := new(coremocks.MockNotifier)
		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		_, err := uc.Accept(ctx, sellerID, 1)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		notifier.AssertNotCalled(t, "DealAccepted")
	})
}

func TestDealUseCase_ConfirmDeposit(t *testing.T) {
	t.Run("admin confirms a pending deposit", func(t *testing.T) {
		ctx := context.Background()
		adminID := int64(555)

		awaiting := pendingInvite()
		awaiting.Status = entity.StatusAwaitingDeposit
		confirmed := pendingInvite()
		confirmed.Status = entity.StatusDepositConfirmed

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(awaiting, nil).Once()
		dealRepo.On("Transition", ctx, int64(1), entity.StatusAwaitingDeposit, entity.StatusDepositConfirmed, fixedTime).Return(true, nil)
		dealRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()

		notifier := new(coremocks.MockNotifier)
		notifier.On("DepositConfirmed", confirmed).Return()

		uc := NewDealUseCase(dealRepo, testAuthority(adminID), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		deal, err := uc.ConfirmDeposit(ctx, adminID, 1)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusDepositConfirmed, deal.Status)
	})

	t.Run("parties themselves cannot confirm the deposit", func(t *testing.T) {
		ctx := context.Background()
		awaiting := pendingInvite()
		awaiting.Status = entity.StatusAwaitingDeposit

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(awaiting, nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.ConfirmDeposit(ctx, buyerID, 1)
		assert.ErrorIs(t, err, errs.ErrForbidden)

		_, err = uc.ConfirmDeposit(ctx, sellerID, 1)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("owner holds admin authority implicitly", func(t *testing.T) {
		ctx := context.Background()
		awaiting := pendingInvite()
		awaiting.Status = entity.StatusAwaitingDeposit
		confirmed := pendingInvite()
		confirmed.Status = entity.StatusDepositConfirmed

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(awaiting, nil).Once()
		dealRepo.On("Transition", ctx, int64(1), entity.StatusAwaitingDeposit, entity.StatusDepositConfirmed, fixedTime).Return(true, nil)
		dealRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil).Once()

		notifier := new(coremocks.MockNotifier)
		notifier.On("DepositConfirmed", confirmed).Return()

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		_, err := uc.ConfirmDeposit(ctx, ownerID, 1)
		assert.NoError(t, err)
	})
}

func TestDealUseCase_MarkReceived(t *testing.T) {
	t.Run("buyer confirmation releases the deal and credits the seller", func(t *testing.T) {
		ctx := context.Background()
		delivered := pendingInvite()
		delivered.Status = entity.StatusDelivered

		released := pendingInvite()
		released.Status = entity.StatusReleased
		released.ReceivedAt = &fixedTime
		released.ReleasedAt = &fixedTime

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(delivered, nil)
		dealRepo.On("Release", ctx, int64(1), fixedTime).Return(released, nil)

		notifier := new(coremocks.MockNotifier)
		notifier.On("DealReleased", released).Return()

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), notifier, fixedClock(), quietLogger())

		deal, err := uc.MarkReceived(ctx, buyerID, 1)
		assert.NoError(t, err)
		assert.Equal(t, entity.StatusReleased, deal.Status)
		dealRepo.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("only the buyer may confirm receipt", func(t *testing.T) {
		ctx := context.Background()
		delivered := pendingInvite()
		delivered.Status = entity.StatusDelivered

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(delivered, nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.MarkReceived(ctx, sellerID, 1)
		assert.ErrorIs(t, err, errs.ErrForbidden)
		dealRepo.AssertNotCalled(t, "Release")
	})

	t.Run("receipt requires DELIVERED", func(t *testing.T) {
		ctx := context.Background()
		confirmed := pendingInvite()
		confirmed.Status = entity.StatusDepositConfirmed

		dealRepo := new(persistencemocks.MockDealRepository)
		dealRepo.On("GetByID", ctx, int64(1)).Return(confirmed, nil)

		uc := NewDealUseCase(dealRepo, testAuthority(), new(coremocks.MockTokenGenerator), new(coremocks.MockNotifier), fixedClock(), quietLogger())

		_, err := uc.MarkReceived(ctx, buyerID, 1)
		assert.ErrorIs(t, err, errs.ErrInvalidState)
		dealRepo.AssertNotCalled(t, "Release")
	})
}
