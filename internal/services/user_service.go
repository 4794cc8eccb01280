package services

import (
	"context"

	"telechat/internal/domain/user"
	"telechat/internal/repository"
	telechat_errors "telechat/pkg/errors"

	"github.com/google/uuid"
)

// UserService exposes public profiles for the member picker and avatar
// updates.
type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, excludeID uuid.UUID) ([]UserInfo, error) {
	users, err := s.userRepo.ListUsers(ctx, excludeID)
	if err != nil {
		return nil, err
	}

	infos := make([]UserInfo, 0, len(users))
	for _, u := range users {
		infos = append(infos, UserInfo{ID: u.ID, Username: u.Username, AvatarURL: u.AvatarURL.String})
	}
	return infos, nil
}

func (s *UserService) SetAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) error {
	if avatarURL == "" {
		return telechat_errors.ErrInvalidInput
	}
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL)
}
