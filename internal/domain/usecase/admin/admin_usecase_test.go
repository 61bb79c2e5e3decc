package admin

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

const (
	ownerID  = int64(999)
	adminID  = int64(555)
	plainID  = int64(100)
	targetID = int64(200)
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

func newAuthority(adminRepo *persistencemocks.MockAdminRepository) *Authority {
	return NewAuthority(ownerID, adminRepo, fixedClock(), quietLogger())
}

func TestAuthority_IsOwner(t *testing.T) {
	a := newAuthority(new(persistencemocks.MockAdminRepository))

	assert.True(t, a.IsOwner(ownerID))
	assert.False(t, a.IsOwner(adminID))
	assert.Equal(t, ownerID, a.OwnerID())
}

func TestAuthority_IsAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner is admin without a set lookup", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		a := newAuthority(adminRepo)

		ok, err := a.IsAdmin(ctx, ownerID)
		assert.NoError(t, err)
		assert.True(t, ok)
		adminRepo.AssertNotCalled(t, "Exists")
	})

	t.Run("set membership decides everyone else", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		adminRepo.On("Exists", ctx, adminID).Return(true, nil)
		adminRepo.On("Exists", ctx, plainID).Return(false, nil)
		a := newAuthority(adminRepo)

		ok, err := a.IsAdmin(ctx, adminID)
		assert.NoError(t, err)
		assert.True(t, ok)

		ok, err = a.IsAdmin(ctx, plainID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestAuthority_AddAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner grants admin with grant metadata", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		adminRepo.On("Add", ctx, &entity.Admin{
			UserID:  targetID,
			AddedBy: ownerID,
			AddedAt: fixedTime,
		}).Return(nil)
		a := newAuthority(adminRepo)

		assert.NoError(t, a.AddAdmin(ctx, ownerID, targetID))
		adminRepo.AssertExpectations(t)
	})

	t.Run("admins cannot grant", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		a := newAuthority(adminRepo)

		assert.ErrorIs(t, a.AddAdmin(ctx, adminID, targetID), errs.ErrForbidden)
		adminRepo.AssertNotCalled(t, "Add")
	})

	t.Run("owner cannot be added to the set", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		a := newAuthority(adminRepo)

		assert.ErrorIs(t, a.AddAdmin(ctx, ownerID, ownerID), errs.ErrOwnerIsAdmin)
		adminRepo.AssertNotCalled(t, "Add")
	})
}

func TestAuthority_RemoveAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("owner revokes", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		adminRepo.On("Remove", ctx, targetID).Return(nil)
		a := newAuthority(adminRepo)

		assert.NoError(t, a.RemoveAdmin(ctx, ownerID, targetID))
		adminRepo.AssertExpectations(t)
	})

	t.Run("non-owner cannot revoke", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		a := newAuthority(adminRepo)

		assert.ErrorIs(t, a.RemoveAdmin(ctx, adminID, targetID), errs.ErrForbidden)
		adminRepo.AssertNotCalled(t, "Remove")
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		adminRepo := new(persistencemocks.MockAdminRepository)
		a := newAuthority(adminRepo)

		assert.ErrorIs(t, a.RemoveAdmin(ctx, ownerID, ownerID), errs.ErrOwnerIsAdmin)
		adminRepo.AssertNotCalled(t, "Remove")
	})
}

func TestAuthority_ListAdmins(t *testing.T) {
	ctx := context.Background()
	admins := []*entity.Admin{
		{UserID: adminID, AddedBy: ownerID, AddedAt: fixedTime},
	}

	adminRepo := new(persistencemocks.MockAdminRepository)
	adminRepo.On("List", ctx, 20).Return(admins, nil)
	a := newAuthority(adminRepo)

	got, err := a.ListAdmins(ctx, 20)
	assert.NoError(t, err)
	assert.Equal(t, admins, got)
}
