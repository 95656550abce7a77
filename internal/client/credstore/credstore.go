// Package credstore persists the client's identity state (the current ID
// token, refresh token, and profile snapshot) in a small local SQLite
// database, so a restarted process within the same session picks up where it
// left off.
package credstore

import "context"

// Well-known keys.
const (
	KeyIDToken      = "id_token"
	KeyRefreshToken = "refresh_token"
	KeyUser         = "user"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Clear wipes everything; called on sign-out.
	Clear(ctx context.Context) error
}
