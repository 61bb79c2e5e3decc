package entity

// Balance is a per-(user, currency) running total in cents. Rows are
// created lazily on the first credit or read; non-negativity is enforced
// only at withdrawal approval time, not at write time.
type Balance struct {
	UserID   int64
	Currency Currency
	Cents    int64
}

// Amount returns the balance with currency as a display string
func (b *Balance) Amount() string {
	return FormatMoney(b.Cents, b.Currency)
}

// Positive reports whether there is anything to withdraw
func (b *Balance) Positive() bool {
	return b.Cents > 0
}
