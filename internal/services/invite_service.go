package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

const maxInviteMessageLength = 1000

// InviteService handles business-to-creator campaign invites
type InviteService struct {
	repo *repository.Repository
}

// NewInviteService creates a new InviteService
func NewInviteService(repo *repository.Repository) *InviteService {
	return &InviteService{repo: repo}
}

// Send invites a creator to one of the business's active campaigns
func (s *InviteService) Send(ctx context.Context, businessID, creatorID, campaignID uint, message string) (*models.Invite, error) {
	message = strings.TrimSpace(message)
	if len(message) > maxInviteMessageLength {
		return nil, invalid("inviteMessage", fmt.Sprintf("message must be at most %d characters", maxInviteMessageLength))
	}

	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("campaign")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.BusinessUserID != businessID {
		return nil, ErrNotOwner
	}
	if campaign.Status != models.CampaignStatusActive {
		return nil, invalid("campaignId", "you can only invite creators to active campaigns")
	}

	creator, err := s.repo.GetUserByID(ctx, creatorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, invalid("creatorId", "creator not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load creator: %w", err)
	}
	if creator.Role != models.RoleCreator || creator.Banned {
		return nil, invalid("creatorId", "this user cannot be invited")
	}

	exists, err := s.repo.InviteExists(ctx, businessID, creatorID, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to check invite: %w", err)
	}
	if exists {
		return nil, conflict("you have already invited this creator to this campaign")
	}

	invite := &models.Invite{
		CampaignID:     campaignID,
		BusinessUserID: businessID,
		CreatorUserID:  creatorID,
		InviteMessage:  message,
		Status:         models.InviteStatusPending,
	}
	if err := s.repo.CreateInvite(ctx, invite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("you have already invited this creator to this campaign")
		}
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}

	log.Printf("Business %d invited creator %d to campaign %d", businessID, creatorID, campaignID)
	return invite, nil
}

// ListForCreator returns invites received by the creator
func (s *InviteService) ListForCreator(ctx context.Context, creatorID uint) ([]models.Invite, error) {
	return s.repo.ListInvitesForCreator(ctx, creatorID)
}

// ListForCampaign returns invites a business sent for one of its campaigns
func (s *InviteService) ListForCampaign(ctx context.Context, businessID, campaignID uint) ([]models.Invite, error) {
	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("campaign")
	}
	if err != nil {
		return nil, err
	}
	if campaign.BusinessUserID != businessID {
		return nil, ErrNotOwner
	}
	return s.repo.ListInvitesForCampaign(ctx, businessID, campaignID)
}

// Respond settles a pending invite. Only the first response wins.
func (s *InviteService) Respond(ctx context.Context, creatorID, inviteID uint, accept bool) error {
	status := models.InviteStatusRejected
	if accept {
		status = models.InviteStatusAccepted
	}

	n, err := s.repo.RespondToInvite(ctx, inviteID, creatorID, status, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update invite: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, inviteID, true, func(inv *models.Invite) bool { return inv.CreatorUserID == creatorID })
	}

	log.Printf("Invite %d %s by creator %d", inviteID, status, creatorID)
	return nil
}

// Cancel withdraws an invite the creator has not answered yet
func (s *InviteService) Cancel(ctx context.Context, businessID, inviteID uint) error {
	n, err := s.repo.DeletePendingInvite(ctx, inviteID, businessID)
	if err != nil {
		return fmt.Errorf("failed to cancel invite: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, inviteID, false, func(inv *models.Invite) bool { return inv.BusinessUserID == businessID })
	}

	log.Printf("Invite %d cancelled by business %d", inviteID, businessID)
	return nil
}

func (s *InviteService) classifyMiss(ctx context.Context, inviteID uint, needsLiveCampaign bool, owns func(*models.Invite) bool) error {
	invite, err := s.repo.GetInviteByID(ctx, inviteID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("invite")
	}
	if err != nil {
		return err
	}
	if !owns(invite) {
		return ErrNotOwner
	}
	if needsLiveCampaign && invite.Campaign != nil && invite.Campaign.Status == models.CampaignStatusDeleted {
		return notFound("campaign")
	}
	return conflict(fmt.Sprintf("invite is already %s", invite.Status))
}
