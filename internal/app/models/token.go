package models

import (
	"time"
)

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID        int64     `json:"id" db:"id"`                 // Unique identifier for the token record
	UserID    int64     `json:"userId" db:"user_id"`        // Owner user ID
	Token     string    `json:"-" db:"token"`               // Opaque token value (excluded from JSON)
	ExpiresAt time.Time `json:"expiresAt" db:"expires_at"`  // Expiry timestamp
	CreatedAt time.Time `json:"createdAt" db:"created_at"`  // Timestamp when the token was issued
}

// IsExpired reports whether the token is past its expiry.
func (t *RefreshToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}
