// Package services implements the server's business logic on top of the
// repository layer. Handlers call services; services call repositories.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
	"github.com/mkravets/linkjournal/internal/server/repositories/topics"
)

type TopicService struct {
	repo topics.Repository
}

func NewTopicService(repo topics.Repository) *TopicService {
	return &TopicService{repo: repo}
}

func (s *TopicService) Create(ctx context.Context, userID, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is required", common.ErrValidation)
	}

	topic, err := s.repo.Create(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("error creating topic: %w", err)
	}
	return topic, nil
}

func (s *TopicService) List(ctx context.Context, userID string) ([]models.Topic, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TopicService) Get(ctx context.Context, userID, id string) (*models.Topic, error) {
	if !knownID(id) {
		return nil, common.ErrNotFound
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *TopicService) Rename(ctx context.Context, userID, id, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: topic name is required", common.ErrValidation)
	}
	if !knownID(id) {
		return nil, common.ErrNotFound
	}

	if err := s.repo.UpdateName(ctx, userID, id, name); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

// Delete removes the topic. Journals that referenced it keep their
// topic id and surface as uncategorized on the client.
func (s *TopicService) Delete(ctx context.Context, userID, id string) error {
	if !knownID(id) {
		return common.ErrNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}
