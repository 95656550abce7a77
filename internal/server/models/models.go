// Package models defines server-side records persisted in the database.
// Wire shapes live in internal/models; these are the storage shapes.
package models

import "time"

// Account is a dev identity-provider account: email plus bcrypt hash.
// Production deployments verify tokens from an external provider and
// never touch this table.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// RefreshToken is an opaque rotating credential issued by the dev
// identity provider alongside each ID token.
type RefreshToken struct {
	ID        string
	AccountID string
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
