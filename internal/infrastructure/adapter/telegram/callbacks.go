package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

func (b *Bot) handleCallback(ctx context.Context, cq *tgbotapi.CallbackQuery) {
	if cq.Message == nil {
		return
	}

	actorID := cq.From.ID
	chatID := cq.Message.Chat.ID
	_ = b.users.RegisterContact(ctx, actorID, cq.From.UserName)

	alert := b.dispatchCallback(ctx, actorID, chatID, cq.Data)

	ack := tgbotapi.NewCallback(cq.ID, alert)
	if _, err := b.api.Request(ack); err != nil {
		b.logger.Debug("Callback ack failed", map[string]any{"error": err.Error()})
	}
}

// dispatchCallback routes one callback payload. The returned string, when
// non-empty, is shown to the user as the callback answer.
func (b *Bot) dispatchCallback(ctx context.Context, actorID, chatID int64, data string) string {
	switch data {
	case cbMenuMain:
		b.sessions.Clear(actorID)
		b.showMainMenu(ctx, chatID, actorID)
		return ""
	case cbMenuCreate:
		b.sessions.Set(actorID, Session{State: StateAwaitingSellerQuery})
		b.send(chatID, textAskSeller())
		return ""
	case cbMenuProfile:
		b.showProfile(ctx, actorID, chatID)
		return ""
	case cbMenuDeposit:
		b.send(chatID, textDepositInfo(b.cfg.SupportHandle))
		return ""
	case cbMenuAdmin:
		if !b.isAdmin(ctx, actorID) {
			return "Admins only"
		}
		b.sendWithKeyboard(chatID, "Admin panel", adminPanelKeyboard(b.authority.IsOwner(actorID)))
		return ""
	case cbProfileWithdraw:
		return b.requestFullWithdrawal(ctx, actorID, chatID)
	case cbAdminDeposits:
		return b.showPendingDeposits(ctx, actorID, chatID)
	case cbAdminWithdrawals:
		return b.showPendingWithdrawals(ctx, actorID, chatID)
	case cbAdminRecent:
		return b.showRecentDeals(ctx, actorID, chatID)
	case cbAdminAdd:
		if !b.authority.IsOwner(actorID) {
			return "Owner only"
		}
		b.sessions.Set(actorID, Session{State: StateAwaitingAdminAdd})
		b.send(chatID, "Send the @username or id of the new admin.")
		return ""
	case cbAdminRemove:
		if !b.authority.IsOwner(actorID) {
			return "Owner only"
		}
		b.sessions.Set(actorID, Session{State: StateAwaitingAdminRemove})
		b.send(chatID, "Send the @username or id of the admin to remove.")
		return ""
	case cbAdminList:
		if !b.authority.IsOwner(actorID) {
			return "Owner only"
		}
		admins, err := b.authority.ListAdmins(ctx, 50)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, textAdminList(admins))
		return ""
	}

	prefix, id, ok := splitCallbackID(data)
	if !ok {
		return ""
	}
	return b.dispatchDealCallback(ctx, actorID, chatID, prefix, id)
}

func (b *Bot) dispatchDealCallback(ctx context.Context, actorID, chatID int64, prefix string, id int64) string {
	switch prefix {
	case cbAccept:
		deal, err := b.deals.Accept(ctx, actorID, id)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, "Deal #"+strconv.FormatInt(deal.ID, 10)+" accepted. You'll be notified once the buyer's deposit is confirmed.")
		return ""
	case cbDecline:
		deal, err := b.deals.Decline(ctx, actorID, id)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, "Deal #"+strconv.FormatInt(deal.ID, 10)+" declined.")
		return ""
	case cbConfirm:
		deal, err := b.deals.ConfirmDeposit(ctx, actorID, id)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, "Deposit confirmed for deal #"+strconv.FormatInt(deal.ID, 10)+". Both parties were notified.")
		return ""
	case cbDeliver:
		deal, err := b.deals.MarkDelivered(ctx, actorID, id)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, "Deal #"+strconv.FormatInt(deal.ID, 10)+" marked delivered. The buyer was asked to confirm receipt.")
		return ""
	case cbReceive:
		deal, err := b.deals.MarkReceived(ctx, actorID, id)
		if err != nil {
			return errorText(err)
		}
		b.send(chatID, "Receipt confirmed. "+deal.Amount()+" was released to the seller. Deal #"+strconv.FormatInt(deal.ID, 10)+" is complete.")
		return ""
	case cbApproveW:
		w, err := b.ledger.ApproveWithdrawal(ctx, actorID, id)
		if err != nil {
			// Insufficient balance is shown to the approver only
			return errorText(err)
		}
		b.send(chatID, "Withdrawal #"+strconv.FormatInt(w.ID, 10)+" approved: "+w.Amount())
		return ""
	}
	return ""
}

func (b *Bot) showProfile(ctx context.Context, actorID, chatID int64) {
	user, err := b.users.GetUser(ctx, actorID)
	if err != nil {
		b.send(chatID, errorText(err))
		return
	}
	balances, err := b.ledger.GetBalances(ctx, actorID)
	if err != nil {
		b.send(chatID, errorText(err))
		return
	}
	b.sendWithKeyboard(chatID, textProfile(user, balances), profileKeyboard())
}

func (b *Bot) requestFullWithdrawal(ctx context.Context, actorID, chatID int64) string {
	w, err := b.ledger.RequestFullWithdrawal(ctx, actorID)
	if err != nil {
		return "Your balance is empty."
	}
	b.send(chatID, textWithdrawalRequested(w))
	return ""
}

func (b *Bot) showPendingDeposits(ctx context.Context, actorID, chatID int64) string {
	if !b.isAdmin(ctx, actorID) {
		return "Admins only"
	}
	deals, err := b.deals.ListByStatus(ctx, entity.StatusAwaitingDeposit, 10)
	if err != nil {
		return errorText(err)
	}
	if len(deals) == 0 {
		return "No deals awaiting deposit"
	}
	b.sendWithKeyboard(chatID, "Deals awaiting deposit confirmation:", pendingDepositsKeyboard(deals))
	return ""
}

func (b *Bot) showPendingWithdrawals(ctx context.Context, actorID, chatID int64) string {
	if !b.isAdmin(ctx, actorID) {
		return "Admins only"
	}
	withdrawals, err := b.ledger.ListWithdrawals(ctx, entity.WithdrawalRequested, 10)
	if err != nil {
		return errorText(err)
	}
	if len(withdrawals) == 0 {
		return "No pending withdrawals"
	}
	b.sendWithKeyboard(chatID, "Pending withdrawals:", pendingWithdrawalsKeyboard(withdrawals))
	return ""
}

func (b *Bot) showRecentDeals(ctx context.Context, actorID, chatID int64) string {
	if !b.isAdmin(ctx, actorID) {
		return "Admins only"
	}
	deals, err := b.deals.ListRecent(ctx, 10)
	if err != nil {
		return errorText(err)
	}
	b.send(chatID, textRecentDeals(deals))
	return ""
}

// splitCallbackID splits "<prefix>:<id>" payloads
func splitCallbackID(data string) (string, int64, bool) {
	prefix, raw, found := strings.Cut(data, ":")
	if !found {
		return "", 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", 0, false
	}
	return prefix, id, true
}
