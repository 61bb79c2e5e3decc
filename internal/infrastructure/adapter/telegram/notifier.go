package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
)

// notification is one queued outbound message
type notification struct {
	chatID int64
	text   string
	markup *tgbotapi.InlineKeyboardMarkup
}

// Notifier delivers lifecycle messages through a buffered queue. Enqueueing
// never blocks the caller: when the queue is full the notification is dropped
// and logged. Send failures are logged and dropped too; the state transition
// that triggered the notification has already committed.
type Notifier struct {
	api     *tgbotapi.BotAPI
	ownerID int64
	queue   chan notification
	done    chan struct{}
	logger  coreport.Logger
}

// NewNotifier creates a notifier with the given queue capacity
func NewNotifier(api *tgbotapi.BotAPI, ownerID int64, queueLen int, logger coreport.Logger) *Notifier {
	if queueLen <= 0 {
		queueLen = 64
	}
	return &Notifier{
		api:     api,
		ownerID: ownerID,
		queue:   make(chan notification, queueLen),
		done:    make(chan struct{}),
		logger:  logger,
	}
}

// Start launches the consumer goroutine
func (n *Notifier) Start() {
	go n.run()
}

// Stop drains the queue and stops the consumer
func (n *Notifier) Stop() {
	close(n.queue)
	<-n.done
}

func (n *Notifier) run() {
	defer close(n.done)
	for msg := range n.queue {
		out := tgbotapi.NewMessage(msg.chatID, msg.text)
		if msg.markup != nil {
			out.ReplyMarkup = *msg.markup
		}
		if _, err := n.api.Send(out); err != nil {
			n.logger.Warn("Notification delivery failed", map[string]any{
				"chat_id": msg.chatID,
				"error":   err.Error(),
			})
		}
	}
}

func (n *Notifier) enqueue(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) {
	select {
	case n.queue <- notification{chatID: chatID, text: text, markup: markup}:
	default:
		n.logger.Warn("Notification queue full, dropping", map[string]any{
			"chat_id": chatID,
		})
	}
}

// DealAccepted tells the buyer the seller accepted and a deposit is due
func (n *Notifier) DealAccepted(deal *entity.Deal) {
	n.enqueue(deal.BuyerID, fmt.Sprintf(
		"Deal #%d: the seller accepted. Please deposit %s into escrow; an administrator will confirm the transfer.",
		deal.ID, deal.Amount(),
	), nil)
	n.enqueue(n.ownerID, fmt.Sprintf(
		"Deal #%d is awaiting a deposit of %s from the buyer.",
		deal.ID, deal.Amount(),
	), nil)
}

// DealDeclined tells the buyer the seller declined
func (n *Notifier) DealDeclined(deal *entity.Deal) {
	n.enqueue(deal.BuyerID, fmt.Sprintf(
		"Deal #%d: the seller declined the invite.", deal.ID,
	), nil)
}

// DepositConfirmed tells the buyer the escrow holds the funds and gives the
// seller the terms again with delivery instructions
func (n *Notifier) DepositConfirmed(deal *entity.Deal) {
	n.enqueue(deal.BuyerID, fmt.Sprintf(
		"Deal #%d: your deposit of %s is confirmed. The seller has been asked to deliver.",
		deal.ID, deal.Amount(),
	), nil)

	markup := deliverKeyboard(deal.ID)
	n.enqueue(deal.SellerID, fmt.Sprintf(
		"Deal #%d: the escrow now holds %s. Deliver per the agreed terms and mark the deal delivered.\n\nTerms:\n%s",
		deal.ID, deal.Amount(), deal.Terms,
	), &markup)
}

// DealDelivered tells the buyer the seller marked the goods handed over
func (n *Notifier) DealDelivered(deal *entity.Deal) {
	markup := receiveKeyboard(deal.ID)
	n.enqueue(deal.BuyerID, fmt.Sprintf(
		"Deal #%d: the seller marked the goods as delivered. Confirm receipt to release %s to the seller.",
		deal.ID, deal.Amount(),
	), &markup)
}

// DealReleased tells both parties the deal completed
func (n *Notifier) DealReleased(deal *entity.Deal) {
	n.enqueue(deal.BuyerID, fmt.Sprintf(
		"Deal #%d is complete. Thank you!", deal.ID,
	), nil)
	n.enqueue(deal.SellerID, fmt.Sprintf(
		"Deal #%d is complete. %s has been credited to your balance.",
		deal.ID, deal.Amount(),
	), nil)
}

// WithdrawalRequested tells the administrative contact a request is pending
func (n *Notifier) WithdrawalRequested(w *entity.Withdrawal) {
	n.enqueue(n.ownerID, fmt.Sprintf(
		"Withdrawal #%d: user %d requests %s.", w.ID, w.UserID, w.Amount(),
	), nil)
}

// WithdrawalApproved tells the requester the withdrawal was signed off
func (n *Notifier) WithdrawalApproved(w *entity.Withdrawal) {
	n.enqueue(w.UserID, fmt.Sprintf(
		"Withdrawal #%d for %s was approved and is being paid out.",
		w.ID, w.Amount(),
	), nil)
}
