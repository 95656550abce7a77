// Package transport implements the REST client for the LinkJournal backend.
// Every read and write passes through a single request path that injects the
// bearer credential, encodes/decodes JSON, and classifies failures; callers
// above this package never see raw HTTP errors.
package transport

import (
	"context"

	"github.com/mkravets/linkjournal/internal/models"
)

// TokenSource supplies the current bearer credential. An empty string means
// "no credential"; the request goes out unauthenticated and the backend
// answers with a 401 that classifies as AUTHENTICATION.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-credential TokenSource, mostly for tests.
type StaticToken string

func (s StaticToken) Token() string { return string(s) }

// Client is the backend surface consumed by the mutation coordinator.
type Client interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
	GetTopic(ctx context.Context, id string) (models.Topic, error)
	CreateTopic(ctx context.Context, req models.CreateTopicRequest) (models.Topic, error)
	UpdateTopic(ctx context.Context, id string, req models.UpdateTopicRequest) error
	DeleteTopic(ctx context.Context, id string) error

	ListJournals(ctx context.Context) ([]models.Journal, error)
	ListJournalsByTopic(ctx context.Context, topicID string) ([]models.Journal, error)
	GetJournal(ctx context.Context, id string) (models.Journal, error)
	CreateJournal(ctx context.Context, req models.CreateJournalRequest) (models.Journal, error)
	UpdateJournal(ctx context.Context, id string, req models.UpdateJournalRequest) error
	DeleteJournal(ctx context.Context, id string) error
	ToggleImportant(ctx context.Context, id string) (bool, error)

	Profile(ctx context.Context) (models.User, error)
	Signup(ctx context.Context, req models.SignupRequest) (models.User, error)
	UpdateAvatar(ctx context.Context, req models.UpdateAvatarRequest) (string, error)

	PresignUpload(ctx context.Context, filename string) (models.PresignResponse, error)
}
