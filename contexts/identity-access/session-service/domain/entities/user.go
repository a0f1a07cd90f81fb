package entities

import "time"

// User is owned by the auth subsystem. CRM entities reference it as
// "assigned to" / "created by" but never own it.
type User struct {
	UserID        string
	Email         string
	Name          string
	Image         string
	EmailVerified *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Session struct {
	SessionID string
	UserID    string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now.UTC())
}
