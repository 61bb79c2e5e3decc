package dto

// BalanceResponse is one per-currency ledger balance
type BalanceResponse struct {
	UserID   int64  `json:"userId"`
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}
