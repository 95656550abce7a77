// Package accounts declares the repository contract for the dev identity
// provider's account storage.
package accounts

import (
	"context"

	"github.com/mkravets/linkjournal/internal/server/models"
)

type Repository interface {
	// Create inserts an account. A duplicate email yields
	// common.ErrAlreadyExists.
	Create(ctx context.Context, email string, passwordHash []byte) (*models.Account, error)

	// GetByEmail returns the account, or common.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.Account, error)

	// GetByID returns the account, or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Account, error)
}
