package model

import "time"

// ResetToken grants one-time authority to set a new password for its
// user until ExpiresAt. The token string itself is the bearer
// credential; there is no separate status column — a token is live
// while its row exists and the expiry has not passed.
type ResetToken struct {
	ID        int64
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}
