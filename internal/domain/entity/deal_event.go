package entity

// DealEvent names the audit-trail timestamps on a deal. Each is stamped at
// most once; stamping an already-set field is an acceptable no-op.
type DealEvent string

const (
	EventAccepted         DealEvent = "accepted_at"
	EventDeclined         DealEvent = "declined_at"
	EventDepositConfirmed DealEvent = "deposit_confirmed_at"
	EventDelivered        DealEvent = "delivered_at"
	EventReceived         DealEvent = "received_at"
	EventReleased         DealEvent = "released_at"
)

// EventForStatus maps a target status to the timestamp its transition stamps
func EventForStatus(to DealStatus) (DealEvent, bool) {
	switch to {
	case StatusAwaitingDeposit:
		return EventAccepted, true
	case StatusDeclined:
		return EventDeclined, true
	case StatusDepositConfirmed:
		return EventDepositConfirmed, true
	case StatusDelivered:
		return EventDelivered, true
	case StatusReleased:
		return EventReleased, true
	}
	return "", false
}
