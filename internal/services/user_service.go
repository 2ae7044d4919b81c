package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

// UserService handles account lookups shared by every role
type UserService struct {
	repo *repository.Repository
}

// NewUserService creates a new UserService
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{repo: repo}
}

// Profile is the signed-in account as returned by /me
type Profile struct {
	User        *models.User `json:"user"`
	DisplayName string       `json:"display_name"`
	Dashboard   string       `json:"dashboard"`
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("user")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Me returns the profile of the signed-in user
func (s *UserService) Me(ctx context.Context, userID uint) (*Profile, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		User:        user,
		DisplayName: user.DisplayName(),
		Dashboard:   user.Role.DashboardPath(),
	}, nil
}

// ReportTargets lists the accounts reporter may file a report against
func (s *UserService) ReportTargets(ctx context.Context, reporter *models.User) ([]ChatPartner, error) {
	role, ok := ReportableRole(reporter.Role)
	if !ok {
		return nil, ErrForbidden
	}

	users, err := s.repo.ListActiveUsersByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	targets := make([]ChatPartner, 0, len(users))
	for i := range users {
		targets = append(targets, toChatPartner(&users[i], nil))
	}
	return targets, nil
}
