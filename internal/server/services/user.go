package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkravets/linkjournal/internal/common"
	"github.com/mkravets/linkjournal/internal/models"
	"github.com/mkravets/linkjournal/internal/server/repositories/users"
)

type UserService struct {
	repo users.Repository
}

func NewUserService(repo users.Repository) *UserService {
	return &UserService{repo: repo}
}

// Signup records an identity-provider account as a backend profile.
// A duplicate uid surfaces as common.ErrAlreadyExists; the handler turns
// that into a 409 so the client can treat it as already-registered.
func (s *UserService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	uid := strings.TrimSpace(req.FirebaseUID)
	email := strings.TrimSpace(req.Email)
	if uid == "" || email == "" {
		return nil, fmt.Errorf("%w: uid and email are required", common.ErrValidation)
	}

	user := &models.User{
		FirebaseUID:    uid,
		Email:          email,
		DisplayName:    req.DisplayName,
		ProfilePicture: req.ProfilePicture,
	}

	return s.repo.Create(ctx, user)
}

func (s *UserService) Profile(ctx context.Context, uid string) (*models.User, error) {
	return s.repo.GetByUID(ctx, uid)
}

func (s *UserService) UpdateAvatar(ctx context.Context, uid, pictureURL string) (*models.User, error) {
	if strings.TrimSpace(pictureURL) == "" {
		return nil, fmt.Errorf("%w: profile picture URL is required", common.ErrValidation)
	}

	if err := s.repo.UpdateProfilePicture(ctx, uid, pictureURL); err != nil {
		return nil, err
	}
	return s.repo.GetByUID(ctx, uid)
}
