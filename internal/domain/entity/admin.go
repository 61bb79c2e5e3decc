package entity

import "time"

// Admin is a delegated administrator granted by the owner. The owner
// identity itself is configuration, not a row, and never appears here.
type Admin struct {
	UserID  int64
	AddedBy int64
	AddedAt time.Time

	// Handle is filled in on listing when the admin is a known user
	Handle string
}
