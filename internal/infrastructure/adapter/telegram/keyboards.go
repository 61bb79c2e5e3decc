package telegram

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

// Callback data prefixes. Payloads carrying an id use "<prefix>:<id>".
const (
	cbMenuMain    = "menu:main"
	cbMenuCreate  = "menu:create"
	cbMenuProfile = "menu:profile"
	cbMenuDeposit = "menu:deposit"
	cbMenuAdmin   = "menu:admin"

	cbProfileWithdraw = "profile:withdraw"

	cbAdminDeposits    = "admin:deposits"
	cbAdminWithdrawals = "admin:withdrawals"
	cbAdminRecent      = "admin:recent"
	cbAdminAdd         = "admin:add"
	cbAdminRemove      = "admin:remove"
	cbAdminList        = "admin:list"

	cbAccept   = "accept"
	cbDecline  = "decline"
	cbConfirm  = "confirm_deposit"
	cbDeliver  = "deliver"
	cbReceive  = "receive"
	cbApproveW = "approve_withdrawal"
)

func callbackWithID(prefix string, id int64) string {
	return prefix + ":" + strconv.FormatInt(id, 10)
}

func mainMenuKeyboard(isAdmin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData("🤝 New deal", cbMenuCreate)},
		{tgbotapi.NewInlineKeyboardButtonData("👤 Profile", cbMenuProfile)},
		{tgbotapi.NewInlineKeyboardButtonData("💳 How deposits work", cbMenuDeposit)},
	}
	if isAdmin {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData("🛠 Admin panel", cbMenuAdmin),
		})
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func inviteKeyboard(dealID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Accept", callbackWithID(cbAccept, dealID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Decline", callbackWithID(cbDecline, dealID)),
		),
	)
}

func deliverKeyboard(dealID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📦 Mark delivered", callbackWithID(cbDeliver, dealID)),
		),
	)
}

func receiveKeyboard(dealID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Confirm receipt", callbackWithID(cbReceive, dealID)),
		),
	)
}

func profileKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💸 Withdraw everything", cbProfileWithdraw),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbMenuMain),
		),
	)
}

func adminPanelKeyboard(isOwner bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData("💰 Pending deposits", cbAdminDeposits)},
		{tgbotapi.NewInlineKeyboardButtonData("💸 Pending withdrawals", cbAdminWithdrawals)},
		{tgbotapi.NewInlineKeyboardButtonData("📋 Recent deals", cbAdminRecent)},
	}
	if isOwner {
		rows = append(rows,
			[]tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData("➕ Add admin", cbAdminAdd),
				tgbotapi.NewInlineKeyboardButtonData("➖ Remove admin", cbAdminRemove),
			},
			[]tgbotapi.InlineKeyboardButton{
				tgbotapi.NewInlineKeyboardButtonData("👥 List admins", cbAdminList),
			},
		)
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbMenuMain),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func pendingDepositsKeyboard(deals []*entity.Deal) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(deals)+1)
	for _, d := range deals {
		label := fmt.Sprintf("#%d · %s", d.ID, d.Amount())
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, callbackWithID(cbConfirm, d.ID)),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbMenuAdmin),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func pendingWithdrawalsKeyboard(withdrawals []*entity.Withdrawal) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(withdrawals)+1)
	for _, w := range withdrawals {
		label := fmt.Sprintf("#%d · user %d · %s", w.ID, w.UserID, w.Amount())
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, callbackWithID(cbApproveW, w.ID)),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Back", cbMenuAdmin),
	})
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
