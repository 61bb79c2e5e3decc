package telegram

import (
	"fmt"
	"strings"

	"github.com/akruglov/escrow-bot/internal/domain/entity"
)

const timeLayout = "02.01.2006 15:04 MST"

func textWelcome(supportHandle string) string {
	var b strings.Builder
	b.WriteString("Welcome to the escrow service.\n\n")
	b.WriteString("I hold the middle ground between a buyer and a seller: ")
	b.WriteString("the buyer deposits, the seller delivers, and the funds are ")
	b.WriteString("released once the buyer confirms receipt.\n\n")
	if supportHandle != "" {
		fmt.Fprintf(&b, "Support: @%s", entity.NormalizeHandle(supportHandle))
	}
	return b.String()
}

func textDepositInfo(supportHandle string) string {
	var b strings.Builder
	b.WriteString("Deposits are confirmed manually by an administrator.\n\n")
	b.WriteString("After the seller accepts your deal you will receive payment ")
	b.WriteString("instructions. Once the transfer is verified the deal moves on ")
	b.WriteString("and the seller is asked to deliver.")
	if supportHandle != "" {
		fmt.Fprintf(&b, "\n\nQuestions: @%s", entity.NormalizeHandle(supportHandle))
	}
	return b.String()
}

func textAskSeller() string {
	return "Who is the seller?\n\nSend their @username, a t.me link, or a numeric Telegram id. The seller must have started this bot at least once."
}

func textAskAmount() string {
	return "Deal amount?\n\nFormat: <amount> <currency>, e.g. \"100 USDT\" or \"5000 RUB\"."
}

func textAskTerms() string {
	return fmt.Sprintf("Describe the deal terms (at least %d characters). The seller will see exactly this text.", entity.MinTermsLength)
}

func textInviteCreated(deal *entity.Deal, botUsername string) string {
	link := fmt.Sprintf("https://t.me/%s?start=deal_%s", botUsername, deal.InviteToken)
	return fmt.Sprintf(
		"Deal #%d created: %s.\n\nSend this invite link to the seller:\n%s\n\nThe invite is valid until %s.",
		deal.ID, deal.Amount(), link, deal.ExpiresAt.Format(timeLayout),
	)
}

func textInvite(deal *entity.Deal) string {
	return fmt.Sprintf(
		"You are invited to a deal.\n\nDeal #%d\nAmount: %s\nTerms:\n%s\n\nAccept to proceed; the buyer will then deposit into escrow.",
		deal.ID, deal.Amount(), deal.Terms,
	)
}

func textDealSummary(deal *entity.Deal) string {
	return fmt.Sprintf("Deal #%d · %s · %s", deal.ID, deal.Amount(), deal.Status.String())
}

func textRecentDeals(deals []*entity.Deal) string {
	if len(deals) == 0 {
		return "No deals yet."
	}
	var b strings.Builder
	b.WriteString("Recent deals:\n")
	for _, d := range deals {
		fmt.Fprintf(&b, "\n%s · %s", textDealSummary(d), d.CreatedAt.Format(timeLayout))
	}
	return b.String()
}

func textProfile(user *entity.User, balances []*entity.Balance) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Profile %s\n\nBalance:\n", user.Label())
	for _, bal := range balances {
		fmt.Fprintf(&b, "· %s\n", entity.FormatMoney(bal.Cents, bal.Currency))
	}
	return b.String()
}

func textAdminList(admins []*entity.Admin) string {
	if len(admins) == 0 {
		return "No delegated admins."
	}
	var b strings.Builder
	b.WriteString("Delegated admins:\n")
	for _, a := range admins {
		label := fmt.Sprintf("id %d", a.UserID)
		if a.Handle != "" {
			label = "@" + a.Handle
		}
		fmt.Fprintf(&b, "\n· %s (added %s)", label, a.AddedAt.Format(timeLayout))
	}
	return b.String()
}

func textWithdrawalRequested(w *entity.Withdrawal) string {
	return fmt.Sprintf(
		"Withdrawal #%d requested: %s. An administrator will process it shortly.",
		w.ID, w.Amount(),
	)
}
