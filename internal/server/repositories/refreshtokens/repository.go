// Package refreshtokens declares the repository contract for the dev
// identity provider's rotating refresh tokens.
package refreshtokens

import (
	"context"
	"time"

	"github.com/mkravets/linkjournal/internal/server/models"
)

// Repository defines operations for issuing, retrieving, and revoking
// refresh tokens.
type Repository interface {
	// Create stores a new refresh token for accountID with an expiry of
	// now+validity.
	Create(ctx context.Context, accountID, token string, validity time.Duration) error

	// Find looks up a refresh token by its opaque token string,
	// returning common.ErrNotFound when absent.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Delete removes a refresh token. Deleting a non-existent token is
	// not an error.
	Delete(ctx context.Context, token string) error
}
