package core

import "github.com/akruglov/escrow-bot/internal/domain/entity"

// Notifier delivers lifecycle notifications to the parties of a deal and to
// the administrative contact. Delivery is best-effort and fire-and-forget:
// implementations must never block the caller on transport I/O, and a failed
// delivery must not surface to the action that triggered it.
type Notifier interface {
	// DealAccepted tells the buyer the seller accepted and a deposit is due
	DealAccepted(deal *entity.Deal)
	// DealDeclined tells the buyer the seller declined
	DealDeclined(deal *entity.Deal)
	// DepositConfirmed tells the buyer the escrow holds the funds and gives
	// the seller the terms again with delivery instructions
	DepositConfirmed(deal *entity.Deal)
	// DealDelivered tells the buyer the seller marked the goods handed over
	DealDelivered(deal *entity.Deal)
	// DealReleased tells both parties the deal completed and the seller's
	// balance was credited
	DealReleased(deal *entity.Deal)
	// WithdrawalRequested tells the administrative contact a request is pending
	WithdrawalRequested(w *entity.Withdrawal)
	// WithdrawalApproved tells the requester the withdrawal was signed off
	WithdrawalApproved(w *entity.Withdrawal)
}
