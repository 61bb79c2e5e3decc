package admin

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/port/persistence"
)

// Authority answers "can this actor perform administrative action X" and
// manages the delegated admin set. The owner id is fixed at construction
// and outranks every admin; it can be neither added to nor removed from
// the set.
type Authority struct {
	ownerID      int64
	adminRepo    persistence.AdminRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAuthority creates an Authority rooted at the given owner id
func NewAuthority(
	ownerID int64,
	adminRepo persistence.AdminRepository,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *Authority {
	return &Authority{
		ownerID:      ownerID,
		adminRepo:    adminRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// OwnerID returns the configured owner identity
func (a *Authority) OwnerID() int64 {
	return a.ownerID
}

// IsOwner reports whether the user is the owner
func (a *Authority) IsOwner(userID int64) bool {
	return userID == a.ownerID
}

// IsAdmin reports whether the user holds administrative authority,
// either as the owner or as a member of the admin set
func (a *Authority) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	if a.IsOwner(userID) {
		return true, nil
	}
	return a.adminRepo.Exists(ctx, userID)
}

// AddAdmin grants admin authority to target. Owner only. Adding the owner
// is reported as ErrOwnerIsAdmin, a distinct no-op rather than a success.
func (a *Authority) AddAdmin(ctx context.Context, actorID, targetID int64) error {
	if !a.IsOwner(actorID) {
		return errs.ErrForbidden
	}
	if a.IsOwner(targetID) {
		return errs.ErrOwnerIsAdmin
	}

	admin := &entity.Admin{
		UserID:  targetID,
		AddedBy: actorID,
		AddedAt: a.timeProvider.Now(),
	}
	if err := a.adminRepo.Add(ctx, admin); err != nil {
		return err
	}

	a.logger.Info("Admin added", map[string]any{
		"user_id":  targetID,
		"added_by": actorID,
	})
	return nil
}

// RemoveAdmin revokes admin authority from target. Owner only; the owner
// itself is not a set member and cannot be removed.
func (a *Authority) RemoveAdmin(ctx context.Context, actorID, targetID int64) error {
	if !a.IsOwner(actorID) {
		return errs.ErrForbidden
	}
	if a.IsOwner(targetID) {
		return errs.ErrOwnerIsAdmin
	}

	if err := a.adminRepo.Remove(ctx, targetID); err != nil {
		return err
	}

	a.logger.Info("Admin removed", map[string]any{
		"user_id":    targetID,
		"removed_by": actorID,
	})
	return nil
}

// ListAdmins returns the delegated admin set, most recently added first
func (a *Authority) ListAdmins(ctx context.Context, limit int) ([]*entity.Admin, error) {
	return a.adminRepo.List(ctx, limit)
}
