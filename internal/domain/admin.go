package domain

import "time"

// Admin is a pre-provisioned administrator account.
type Admin struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Token represents issued bearer credential metadata.
type Token struct {
	ID        string
	AdminID   string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
