package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	coreport "github.com/akruglov/escrow-bot/internal/domain/port/core"
	adminuc "github.com/akruglov/escrow-bot/internal/domain/usecase/admin"
	dealuc "github.com/akruglov/escrow-bot/internal/domain/usecase/deal"
	ledgeruc "github.com/akruglov/escrow-bot/internal/domain/usecase/ledger"
	useruc "github.com/akruglov/escrow-bot/internal/domain/usecase/user"
	"github.com/akruglov/escrow-bot/internal/infrastructure/config"
)

// Bot is the Telegram transport. It owns the long-poll loop, per-user flow
// sessions, and the routing of messages and callback queries into the
// use cases. All authorization decisions live in the use cases; the bot only
// decides what to render.
type Bot struct {
	api       *tgbotapi.BotAPI
	cfg       config.TelegramConfig
	users     *useruc.UserUseCase
	deals     *dealuc.DealUseCase
	ledger    *ledgeruc.LedgerUseCase
	authority *adminuc.Authority
	sessions  *SessionStore
	logger    coreport.Logger
}

// NewBot creates a new Bot
func NewBot(
	api *tgbotapi.BotAPI,
	cfg config.TelegramConfig,
	users *useruc.UserUseCase,
	deals *dealuc.DealUseCase,
	ledger *ledgeruc.LedgerUseCase,
	authority *adminuc.Authority,
	logger coreport.Logger,
) *Bot {
	return &Bot{
		api:       api,
		cfg:       cfg,
		users:     users,
		deals:     deals,
		ledger:    ledger,
		authority: authority,
		sessions:  NewSessionStore(),
		logger:    logger,
	}
}

// Run starts the long-poll loop and blocks until the context is canceled
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	updates := b.api.GetUpdatesChan(u)
	b.logger.Info("Telegram bot started", map[string]any{
		"username": b.api.Self.UserName,
	})

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Telegram bot stopped", nil)
			return
		case upd, ok := <-updates:
			if !ok {
				return
			}
			b.handleUpdate(ctx, upd)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		b.handleCallback(ctx, upd.CallbackQuery)
		return
	}
	if upd.Message != nil {
		b.handleMessage(ctx, upd.Message)
	}
}

// send is a best-effort plain message; delivery failures are logged only
func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", map[string]any{
			"chat_id": chatID,
			"error":   err.Error(),
		})
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("Failed to send message", map[string]any{
			"chat_id": chatID,
			"error":   err.Error(),
		})
	}
}

// isAdmin resolves admin status, treating lookup failures as "no"
func (b *Bot) isAdmin(ctx context.Context, userID int64) bool {
	ok, err := b.authority.IsAdmin(ctx, userID)
	if err != nil {
		b.logger.Error("Admin check failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return false
	}
	return ok
}

func (b *Bot) showMainMenu(ctx context.Context, chatID, userID int64) {
	b.sendWithKeyboard(chatID, textWelcome(b.cfg.SupportHandle), mainMenuKeyboard(b.isAdmin(ctx, userID)))
}
