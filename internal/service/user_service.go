package service

import (
	"context"
	"errors"
	"fmt"

	"pocketcoach/backend/internal/domain"
	"pocketcoach/backend/internal/repository"
)

type UserService interface {
	// CreateProfile returns the profile unchanged, storing it first when a repository is configured.
	CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
}

type userService struct {
	profileRepo repository.ProfileRepository // nil in mock mode
}

// NewUserService creates a user service. Pass a nil repository to serve mocks.
func NewUserService(profileRepo repository.ProfileRepository) UserService {
	return &userService{profileRepo: profileRepo}
}

func (s *userService) CreateProfile(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error) {
	profile.ApplyDefaults()
	if s.profileRepo == nil {
		return profile, nil
	}
	if err := s.profileRepo.Upsert(ctx, &profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	if s.profileRepo == nil {
		return mockProfile(userID), nil
	}
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.UserProfile{}, ErrProfileNotFound
		}
		return domain.UserProfile{}, err
	}
	return *profile, nil
}
