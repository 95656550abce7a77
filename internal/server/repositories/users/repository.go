// Package users declares the server-side repository contract for backend
// user profiles (accounts synced from the identity provider).
package users

import (
	"context"

	"github.com/mkravets/linkjournal/internal/models"
)

// Repository defines persistence operations for user profiles. The uid is
// the identity-provider subject, not the row id.
type Repository interface {
	// Create inserts a profile. A duplicate uid yields common.ErrAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByUID returns the profile for the given identity-provider uid,
	// or common.ErrNotFound.
	GetByUID(ctx context.Context, uid string) (*models.User, error)

	// UpdateProfilePicture replaces the stored picture URL.
	UpdateProfilePicture(ctx context.Context, uid, pictureURL string) error
}
