package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
	"github.com/mkravets/linkjournal/internal/server/repositories/journals"
)

type JournalService struct {
	repo journals.Repository
}

func NewJournalService(repo journals.Repository) *JournalService {
	return &JournalService{repo: repo}
}

func (s *JournalService) Create(ctx context.Context, userID string, req models.CreateJournalRequest) (*models.Journal, error) {
	name := strings.TrimSpace(req.Name)
	link := strings.TrimSpace(req.Link)
	if name == "" || link == "" {
		return nil, fmt.Errorf("%w: name and link are required", common.ErrValidation)
	}
	if req.TopicID != "" && !knownID(req.TopicID) {
		return nil, fmt.Errorf("%w: invalid topic id", common.ErrValidation)
	}

	journal := &models.Journal{
		UserID:      userID,
		TopicID:     req.TopicID,
		Name:        name,
		Link:        link,
		Description: req.Description,
		Screenshot:  req.Screenshot,
	}

	journal, err := s.repo.Create(ctx, journal)
	if err != nil {
		return nil, fmt.Errorf("error creating journal: %w", err)
	}
	return journal, nil
}

func (s *JournalService) List(ctx context.Context, userID string) ([]models.Journal, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *JournalService) ListByTopic(ctx context.Context, userID, topicID string) ([]models.Journal, error) {
	if !knownID(topicID) {
		return nil, common.ErrNotFound
	}
	return s.repo.ListByTopic(ctx, userID, topicID)
}

func (s *JournalService) Get(ctx context.Context, userID, id string) (*models.Journal, error) {
	if !knownID(id) {
		return nil, common.ErrNotFound
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *JournalService) Update(ctx context.Context, userID, id string, req models.UpdateJournalRequest) (*models.Journal, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", common.ErrValidation)
	}
	if req.Link != nil && strings.TrimSpace(*req.Link) == "" {
		return nil, fmt.Errorf("%w: link cannot be empty", common.ErrValidation)
	}
	if req.TopicID != nil && *req.TopicID != "" && !knownID(*req.TopicID) {
		return nil, fmt.Errorf("%w: invalid topic id", common.ErrValidation)
	}
	if !knownID(id) {
		return nil, common.ErrNotFound
	}

	upd := journals.Update{
		TopicID:     req.TopicID,
		Name:        req.Name,
		Link:        req.Link,
		Description: req.Description,
		Screenshot:  req.Screenshot,
		IsImportant: req.IsImportant,
	}

	if err := s.repo.Update(ctx, userID, id, upd); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, userID, id)
}

func (s *JournalService) Delete(ctx context.Context, userID, id string) error {
	if !knownID(id) {
		return common.ErrNotFound
	}
	return s.repo.Delete(ctx, userID, id)
}

// ToggleImportant flips the flag in a single statement and returns the
// resulting value.
func (s *JournalService) ToggleImportant(ctx context.Context, userID, id string) (bool, error) {
	if !knownID(id) {
		return false, common.ErrNotFound
	}
	return s.repo.ToggleImportant(ctx, userID, id)
}
