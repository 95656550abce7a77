// Package topics declares the repository contract for topic storage.
// Every operation is scoped to the owning user's uid; a row belonging to
// another user is indistinguishable from a missing one.
package topics

import (
	"context"

	"github.com/mkravets/linkjournal/internal/models"
)

type Repository interface {
	Create(ctx context.Context, userID, name string) (*models.Topic, error)
	ListByUser(ctx context.Context, userID string) ([]models.Topic, error)
	GetByID(ctx context.Context, userID, id string) (*models.Topic, error)
	UpdateName(ctx context.Context, userID, id, name string) error

	// Delete removes the topic only. Journals referencing it are left
	// untouched.
	Delete(ctx context.Context, userID, id string) error
}
