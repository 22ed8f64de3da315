package models

import "time"

// AccessToken is the server-side record of an issued bearer token.
// A token is only accepted while its record exists and has not expired.
type AccessToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	JTI        string     `gorm:"column:jti;size:64;uniqueIndex;not null" json:"-"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	Name       string     `gorm:"size:100" json:"name"`
	ExpiresAt  time.Time  `json:"expires_at"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Expired reports whether the token is past its expiry at now
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.ExpiresAt.After(now)
}
