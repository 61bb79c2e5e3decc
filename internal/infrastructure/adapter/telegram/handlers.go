package telegram

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	errs "github.com/akruglov/escrow-bot/internal/domain/error"
)

const inviteDeepLinkPrefix = "deal_"

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if !msg.Chat.IsPrivate() {
		return
	}

	actorID := msg.From.ID
	if err := b.users.RegisterContact(ctx, actorID, msg.From.UserName); err != nil {
		return
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	b.handleSessionInput(ctx, actorID, msg.Chat.ID, text)
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	actorID := msg.From.ID
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start":
		// Any command navigation abandons an in-progress flow
		b.sessions.Clear(actorID)

		payload := strings.TrimSpace(msg.CommandArguments())
		if token, ok := strings.CutPrefix(payload, inviteDeepLinkPrefix); ok {
			b.handleInviteAccess(ctx, actorID, chatID, token)
			return
		}
		b.showMainMenu(ctx, chatID, actorID)
	case "help":
		b.sessions.Clear(actorID)
		b.send(chatID, textWelcome(b.cfg.SupportHandle))
	case "cancel":
		b.sessions.Clear(actorID)
		b.showMainMenu(ctx, chatID, actorID)
	default:
		b.send(chatID, "Unknown command. Use /start.")
	}
}

// handleInviteAccess resolves a deep-linked invite token for the seller
func (b *Bot) handleInviteAccess(ctx context.Context, actorID, chatID int64, token string) {
	deal, err := b.deals.AccessInvite(ctx, actorID, token)
	if err != nil {
		b.send(chatID, inviteErrorText(err))
		return
	}
	b.sendWithKeyboard(chatID, textInvite(deal), inviteKeyboard(deal.ID))
}

// handleSessionInput advances whatever multi-step flow the user is in
func (b *Bot) handleSessionInput(ctx context.Context, actorID, chatID int64, text string) {
	session := b.sessions.Get(actorID)

	switch session.State {
	case StateAwaitingSellerQuery:
		b.stepSellerQuery(ctx, actorID, chatID, text, session)
	case StateAwaitingAmount:
		b.stepAmount(actorID, chatID, text, session)
	case StateAwaitingTerms:
		b.stepTerms(ctx, actorID, chatID, text, session)
	case StateAwaitingAdminAdd:
		b.stepAdminAdd(ctx, actorID, chatID, text)
	case StateAwaitingAdminRemove:
		b.stepAdminRemove(ctx, actorID, chatID, text)
	default:
		b.showMainMenu(ctx, chatID, actorID)
	}
}

func (b *Bot) stepSellerQuery(ctx context.Context, actorID, chatID int64, text string, session Session) {
	seller, err := b.users.ResolveUser(ctx, text)
	if err != nil {
		b.send(chatID, "Couldn't find that user. They need to /start this bot first. Try again or /cancel.")
		return
	}
	if seller.TelegramID == actorID {
		b.send(chatID, "You can't open a deal with yourself. Send a different seller or /cancel.")
		return
	}

	session.State = StateAwaitingAmount
	session.SellerID = seller.TelegramID
	session.SellerLabel = seller.Label()
	b.sessions.Set(actorID, session)

	b.send(chatID, "Seller: "+seller.Label()+"\n\n"+textAskAmount())
}

func (b *Bot) stepAmount(actorID, chatID int64, text string, session Session) {
	cents, currency, err := ParseAmountInput(text)
	if err != nil {
		b.send(chatID, "That doesn't look like an amount. "+textAskAmount())
		return
	}

	session.State = StateAwaitingTerms
	session.AmountCents = cents
	session.Currency = currency
	b.sessions.Set(actorID, session)

	b.send(chatID, textAskTerms())
}

func (b *Bot) stepTerms(ctx context.Context, actorID, chatID int64, text string, session Session) {
	deal, err := b.deals.CreateInvite(ctx, actorID, session.SellerID, session.AmountCents, session.Currency, text)
	if err != nil {
		if errors.Is(err, errs.ErrTermsTooShort) {
			b.send(chatID, "Terms are too short. "+textAskTerms())
			return
		}
		b.sessions.Clear(actorID)
		b.send(chatID, errorText(err))
		return
	}

	b.sessions.Clear(actorID)
	b.send(chatID, textInviteCreated(deal, b.cfg.BotUsername))
}

func (b *Bot) stepAdminAdd(ctx context.Context, actorID, chatID int64, text string) {
	b.sessions.Clear(actorID)

	target, err := b.users.ResolveUser(ctx, text)
	if err != nil {
		b.send(chatID, errorText(err))
		return
	}

	if err := b.authority.AddAdmin(ctx, actorID, target.TelegramID); err != nil {
		b.send(chatID, errorText(err))
		return
	}
	b.send(chatID, "Admin added: "+target.Label())
}

func (b *Bot) stepAdminRemove(ctx context.Context, actorID, chatID int64, text string) {
	b.sessions.Clear(actorID)

	target, err := b.users.ResolveUser(ctx, text)
	if err != nil {
		b.send(chatID, errorText(err))
		return
	}

	if err := b.authority.RemoveAdmin(ctx, actorID, target.TelegramID); err != nil {
		b.send(chatID, errorText(err))
		return
	}
	b.send(chatID, "Admin removed: "+target.Label())
}

// inviteErrorText maps invite access failures to seller-facing messages
func inviteErrorText(err error) string {
	switch {
	case errors.Is(err, errs.ErrInviteExpired):
		return "This invite has expired. Ask the buyer to create a new deal."
	case errors.Is(err, errs.ErrForbidden):
		return "This invite was issued for a different account."
	case errors.Is(err, errs.ErrDealNotFound):
		return "Unknown invite link."
	default:
		return errorText(err)
	}
}

// errorText maps domain errors to user-facing messages
func errorText(err error) string {
	switch {
	case errors.Is(err, errs.ErrUserNotFound):
		return "User not found. They need to /start this bot first."
	case errors.Is(err, errs.ErrSelfDeal):
		return "Buyer and seller can't be the same account."
	case errors.Is(err, errs.ErrInvalidAmount), errors.Is(err, errs.ErrInvalidCurrency):
		return "Invalid amount. " + textAskAmount()
	case errors.Is(err, errs.ErrTermsTooShort):
		return "Terms are too short."
	case errors.Is(err, errs.ErrInviteExpired):
		return "This invite has expired."
	case errors.Is(err, errs.ErrOwnerIsAdmin):
		return "The owner already has full access."
	case errors.Is(err, errs.ErrForbidden):
		return "You are not allowed to do that."
	case errors.Is(err, errs.ErrInvalidState):
		return "This action is no longer available for the deal's current state."
	case errors.Is(err, errs.ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.Is(err, errs.ErrWithdrawalNotFound):
		return "This withdrawal was already processed."
	case errors.Is(err, errs.ErrDealNotFound):
		return "Deal not found."
	case errors.Is(err, errs.ErrValidation):
		return "Nothing to do here."
	default:
		return "Something went wrong. Please try again later."
	}
}
