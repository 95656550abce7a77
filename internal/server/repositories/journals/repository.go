// Package journals declares the repository contract for journal storage.
// All operations are scoped to the owning user's uid.
package journals

import (
	"context"

	"github.com/mkravets/linkjournal/internal/models"
)

// Update carries the mutable journal fields; nil means "keep current".
type Update struct {
	TopicID     *string
	Name        *string
	Link        *string
	Description *string
	Screenshot  *string
	IsImportant *bool
}

type Repository interface {
	Create(ctx context.Context, journal *models.Journal) (*models.Journal, error)
	ListByUser(ctx context.Context, userID string) ([]models.Journal, error)

	// ListByTopic returns the user's journals referencing topicID. The
	// topic itself may no longer exist; that is not checked here.
	ListByTopic(ctx context.Context, userID, topicID string) ([]models.Journal, error)

	GetByID(ctx context.Context, userID, id string) (*models.Journal, error)
	Update(ctx context.Context, userID, id string, upd Update) error
	Delete(ctx context.Context, userID, id string) error

	// ToggleImportant flips the flag atomically and returns the new value.
	ToggleImportant(ctx context.Context, userID, id string) (bool, error)
}
