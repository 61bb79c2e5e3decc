package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coremocks "github.com/akruglov/escrow-bot/mocks/port/core"
	persistencemocks "github.com/akruglov/escrow-bot/mocks/port/persistence"
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

func TestUserUseCase_RegisterContact(t *testing.T) {
	ctx := context.Background()
	userRepo := new(persistencemocks.MockUserRepository)
	userRepo.On("Upsert", ctx, entity.NewUser(100, "@Alice_99", fixedTime)).Return(nil)

	uc := NewUserUseCase(userRepo, fixedClock(), quietLogger())

	assert.NoError(t, uc.RegisterContact(ctx, 100, "@Alice_99"))
	userRepo.AssertExpectations(t)
}

func TestUserUseCase_ResolveUser(t *testing.T) {
	ctx := context.Background()
	alice := entity.NewUser(123456789, "@alice_99", fixedTime)

	t.Run("by numeric id", func(t *testing.T) {
		userRepo := new(persistencemocks.MockUserRepository)
		userRepo.On("GetByID", ctx, int64(123456789)).Return(alice, nil)
		uc := NewUserUseCase(userRepo, fixedClock(), quietLogger())

		got, err := uc.ResolveUser(ctx, "123456789")
		assert.NoError(t, err)
		assert.Equal(t, alice, got)
	})

	t.Run("by handle in its various shapes", func(t *testing.T) {
		for _, query := range []string{
			"@alice_99",
			"@Alice_99",
			"alice_99",
			"t.me/alice_99",
			"https://t.me/alice_99",
			"http://telegram.me/alice_99",
			"https://t.me/alice_99?start=hello",
			"  @alice_99  ",
		} {
			userRepo := new(persistencemocks.MockUserRepository)
			userRepo.On("FindByHandle", ctx, "alice_99").Return(alice, nil)
			uc := NewUserUseCase(userRepo, fixedClock(), quietLogger())

			got, err := uc.ResolveUser(ctx, query)
			assert.NoError(t, err, "query %q", query)
			assert.Equal(t, alice, got, "query %q", query)
		}
	})

	t.Run("unknown contact", func(t *testing.T) {
		userRepo := new(persistencemocks.MockUserRepository)
		userRepo.On("FindByHandle", ctx, "nobody99").Return(nil, errs.ErrUserNotFound)
		uc := NewUserUseCase(userRepo, fixedClock(), quietLogger())

		_, err := uc.ResolveUser(ctx, "@nobody99")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("malformed queries never reach the store", func(t *testing.T) {
		userRepo := new(persistencemocks.MockUserRepository)
		uc := NewUserUseCase(userRepo, fixedClock(), quietLogger())

		for _, query := range []string{
			"",
			"   ",
			"ab",                // too short for a handle
			"1234",              // too short for an id
			"has spaces inside", // not a handle
			"@bad-handle!",
			"https://t.me/",
		} {
			_, err := uc.ResolveUser(ctx, query)
			assert.ErrorIs(t, err, errs.ErrUserNotFound, "query %q", query)
		}
		userRepo.AssertNotCalled(t, "GetByID")
		userRepo.AssertNotCalled(t, "FindByHandle")
	})
}
