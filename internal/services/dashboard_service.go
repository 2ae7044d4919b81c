package services

import (
	"context"
	"fmt"

	"konnect/internal/models"
	"konnect/internal/repository"
)

// DashboardService assembles the creator and business landing pages
type DashboardService struct {
	repo *repository.Repository
}

func NewDashboardService(repo *repository.Repository) *DashboardService {
	return &DashboardService{repo: repo}
}

type CreatorDashboard struct {
	Profile         *models.Creator                    `json:"profile"`
	ProfileComplete bool                               `json:"profile_complete"`
	Applications    map[models.ApplicationStatus]int64 `json:"applications"`
	PendingInvites  int64                              `json:"pending_invites"`
	UnreadMessages  int64                              `json:"unread_messages"`
}

type BusinessDashboard struct {
	Profile             *models.Business                `json:"profile"`
	ProfileComplete     bool                            `json:"profile_complete"`
	Campaigns           map[models.CampaignStatus]int64 `json:"campaigns"`
	PendingApplications int64                           `json:"pending_applications"`
	PendingInvites      int64                           `json:"pending_invites"`
	UnreadMessages      int64                           `json:"unread_messages"`
}

func (s *DashboardService) Creator(ctx context.Context, creatorID uint) (*CreatorDashboard, error) {
	profile, err := s.repo.GetCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to load creator profile: %w", err)
	}

	d := &CreatorDashboard{Profile: profile, ProfileComplete: profile.ProfileComplete()}
	if d.Applications, err = s.repo.CountApplicationsByCreator(ctx, creatorID); err != nil {
		return nil, err
	}
	if d.PendingInvites, err = s.repo.CountInvites(ctx, map[string]interface{}{
		"creator_user_id": creatorID,
		"status":          models.InviteStatusPending,
	}); err != nil {
		return nil, err
	}
	if d.UnreadMessages, err = s.repo.CountUnread(ctx, creatorID); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DashboardService) Business(ctx context.Context, businessID uint) (*BusinessDashboard, error) {
	profile, err := s.repo.GetBusiness(ctx, businessID)
	if err != nil {
		return nil, fmt.Errorf("failed to load business profile: %w", err)
	}

	d := &BusinessDashboard{Profile: profile, ProfileComplete: profile.ProfileComplete()}
	if d.Campaigns, err = s.repo.CountCampaignsByBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	if d.PendingApplications, err = s.repo.CountPendingApplicationsForBusiness(ctx, businessID); err != nil {
		return nil, err
	}
	if d.PendingInvites, err = s.repo.CountInvites(ctx, map[string]interface{}{
		"business_user_id": businessID,
		"status":           models.InviteStatusPending,
	}); err != nil {
		return nil, err
	}
	if d.UnreadMessages, err = s.repo.CountUnread(ctx, businessID); err != nil {
		return nil, err
	}
	return d, nil
}
