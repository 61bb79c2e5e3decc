package deal

import (
	"context"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	errs "github.com/akruglov/escrow-bot/internal/domain/error"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	"github.com/akruglov/escrow-bot/internal/domain/port/persistence"
)

// Authority is the slice of the admin use case the escrow flow needs
type Authority interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// DealUseCase orchestrates the deal lifecycle: invite creation, the
// seller's accept/decline, the administrator's deposit confirmation, and
// the delivery/receive path that releases funds to the seller. Permissions
// are validated here; atomicity of individual transitions lives in the
// repository's guarded updates.
type DealUseCase struct {
	dealRepo     persistence.DealRepository
	authority    Authority
	tokens       coreport.TokenGenerator
	notifier     coreport.Notifier
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewDealUseCase creates a new DealUseCase
func NewDealUseCase(
	dealRepo persistence.DealRepository,
	authority Authority,
	tokens coreport.TokenGenerator,
	notifier coreport.Notifier,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *DealUseCase {
	return &DealUseCase{
		dealRepo:     dealRepo,
		authority:    authority,
		tokens:       tokens,
		notifier:     notifier,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// CreateInvite validates the inputs and persists a new deal in
// INVITE_CREATED with a fresh invite token and a 24h expiry
func (d *DealUseCase) CreateInvite(ctx context.Context, buyerID, sellerID, amountCents int64, currency entity.Currency, terms string) (*entity.Deal, error) {
	token, err := d.tokens.Generate()
	if err != nil {
		return nil, err
	}

	deal, err := entity.NewDeal(buyerID, sellerID, amountCents, currency, terms, token, d.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	if err := d.dealRepo.Create(ctx, deal); err != nil {
		return nil, err
	}

	d.logger.Info("Deal invite created", map[string]any{
		"deal_id":    deal.ID,
		"buyer_id":   buyerID,
		"seller_id":  sellerID,
		"amount":     deal.Amount(),
		"expires_at": deal.ExpiresAt,
	})
	return deal, nil
}

// AccessInvite resolves an invite token on behalf of an actor. Expiry is
// checked lazily right here: when the deadline passed while the deal was
// still INVITE_CREATED, the access itself flips it to EXPIRED (exactly
// once, later accesses see the terminal state) and ErrInviteExpired is
// returned instead of the invite. Only the designated seller may see a
// live invite.
func (d *DealUseCase) AccessInvite(ctx context.Context, actorID int64, token string) (*entity.Deal, error) {
	deal, err := d.dealRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if deal.InviteExpired(d.timeProvider.Now()) {
		expired, err := d.dealRepo.ExpireInvite(ctx, deal.ID)
		if err != nil {
			return nil, err
		}
		if expired {
			d.logger.Info("Invite expired on access", map[string]any{
				"deal_id": deal.ID,
			})
		}
		return nil, errs.ErrInviteExpired
	}
	if deal.Status == entity.StatusExpired {
		return nil, errs.ErrInviteExpired
	}

	if actorID != deal.SellerID {
		return nil, errs.ErrForbidden
	}
	return deal, nil
}

// Accept is the seller's acceptance of an invite:
// INVITE_CREATED -> AWAITING_DEPOSIT, buyer notified
func (d *DealUseCase) Accept(ctx context.Context, actorID, dealID int64) (*entity.Deal, error) {
	deal, err := d.transition(ctx, actorID, dealID, "accept",
		entity.StatusInviteCreated, entity.StatusAwaitingDeposit, d.sellerOnly)
	if err != nil {
		return nil, err
	}
	d.notifier.DealAccepted(deal)
	return deal, nil
}

// Decline is the seller's rejection of an invite:
// INVITE_CREATED -> DECLINED (terminal), buyer notified
func (d *DealUseCase) Decline(ctx context.Context, actorID, dealID int64) (*entity.Deal, error) {
	deal, err := d.transition(ctx, actorID, dealID, "decline",
		entity.StatusInviteCreated, entity.StatusDeclined, d.sellerOnly)
	if err != nil {
		return nil, err
	}
	d.notifier.DealDeclined(deal)
	return deal, nil
}

// ConfirmDeposit is the administrator's attestation that the buyer's funds
// arrived off-platform: AWAITING_DEPOSIT -> DEPOSIT_CONFIRMED, both parties
// notified (the seller gets the terms again with delivery instructions)
func (d *DealUseCase) ConfirmDeposit(ctx context.Context, actorID, dealID int64) (*entity.Deal, error) {
	deal, err := d.transition(ctx, actorID, dealID, "confirm_deposit",
		entity.StatusAwaitingDeposit, entity.StatusDepositConfirmed, d.adminOnly)
	if err != nil {
		return nil, err
	}
	d.notifier.DepositConfirmed(deal)
	return deal, nil
}

// MarkDelivered is the seller's claim that the goods were handed over:
// DEPOSIT_CONFIRMED -> DELIVERED, buyer notified
func (d *DealUseCase) MarkDelivered(ctx context.Context, actorID, dealID int64) (*entity.Deal, error) {
	deal, err := d.transition(ctx, actorID, dealID, "mark_delivered",
		entity.StatusDepositConfirmed, entity.StatusDelivered, d.sellerOnly)
	if err != nil {
		return nil, err
	}
	d.notifier.DealDelivered(deal)
	return deal, nil
}

// MarkReceived is the buyer's confirmation that the goods arrived. It
// completes the deal: DELIVERED -> RELEASED with the seller's ledger
// balance credited with the full deal amount in the same atomic unit.
func (d *DealUseCase) MarkReceived(ctx context.Context, actorID, dealID int64) (*entity.Deal, error) {
	deal, err := d.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}
	if actorID != deal.BuyerID {
		return nil, errs.ErrForbidden
	}
	if deal.Status != entity.StatusDelivered {
		return nil, errs.NewTransitionError(dealID, deal.Status.String(), "mark_received", errs.ErrInvalidState)
	}

	released, err := d.dealRepo.Release(ctx, dealID, d.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	d.logger.Info("Deal released, seller credited", map[string]any{
		"deal_id":   released.ID,
		"seller_id": released.SellerID,
		"amount":    released.Amount(),
	})

	d.notifier.DealReleased(released)
	return released, nil
}

// GetDeal retrieves a deal by id
func (d *DealUseCase) GetDeal(ctx context.Context, dealID int64) (*entity.Deal, error) {
	return d.dealRepo.GetByID(ctx, dealID)
}

// ListByStatus returns deals in the given status, most recent first
func (d *DealUseCase) ListByStatus(ctx context.Context, status entity.DealStatus, limit int) ([]*entity.Deal, error) {
	return d.dealRepo.ListByStatus(ctx, status, limit)
}

// ListRecent returns the latest deals regardless of status
func (d *DealUseCase) ListRecent(ctx context.Context, limit int) ([]*entity.Deal, error) {
	return d.dealRepo.ListRecent(ctx, limit)
}

type permission func(ctx context.Context, actorID int64, deal *entity.Deal) error

func (d *DealUseCase) sellerOnly(_ context.Context, actorID int64, deal *entity.Deal) error {
	if actorID != deal.SellerID {
		return errs.ErrForbidden
	}
	return nil
}

func (d *DealUseCase) adminOnly(ctx context.Context, actorID int64, _ *entity.Deal) error {
	ok, err := d.authority.IsAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrForbidden
	}
	return nil
}

// transition runs one lifecycle action: load, check permission, check the
// licensing state, then apply the guarded status update. The guard in the
// repository makes the action single-shot under concurrency; the loser of
// a race gets ErrInvalidState and nothing is mutated or notified for it.
func (d *DealUseCase) transition(ctx context.Context, actorID, dealID int64, action string, from, to entity.DealStatus, allowed permission) (*entity.Deal, error) {
	deal, err := d.dealRepo.GetByID(ctx, dealID)
	if err != nil {
		return nil, err
	}

	if err := allowed(ctx, actorID, deal); err != nil {
		return nil, err
	}
	if deal.Status != from {
		return nil, errs.NewTransitionError(dealID, deal.Status.String(), action, errs.ErrInvalidState)
	}

	now := d.timeProvider.Now()
	ok, err := d.dealRepo.Transition(ctx, dealID, from, to, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NewTransitionError(dealID, from.String(), action, errs.ErrInvalidState)
	}

	d.logger.Info("Deal transition applied", map[string]any{
		"deal_id":  dealID,
		"action":   action,
		"from":     from.String(),
		"to":       to.String(),
		"actor_id": actorID,
	})

	return d.dealRepo.GetByID(ctx, dealID)
}
