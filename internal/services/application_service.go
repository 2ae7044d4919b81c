package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
)

const maxPitchLength = 2000

// ApplicationService handles creator applications to campaigns
type ApplicationService struct {
	repo *repository.Repository
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(repo *repository.Repository) *ApplicationService {
	return &ApplicationService{repo: repo}
}

// Apply submits a pending application for an active campaign.
// A creator applies to a campaign at most once.
func (s *ApplicationService) Apply(ctx context.Context, creatorID, campaignID uint, pitch string) (*models.Application, error) {
	pitch = strings.TrimSpace(pitch)
	if pitch == "" {
		return nil, invalid("pitchMessage", "please write a pitch for this campaign")
	}
	if len(pitch) > maxPitchLength {
		return nil, invalid("pitchMessage", fmt.Sprintf("pitch must be at most %d characters", maxPitchLength))
	}

	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("campaign")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}
	if campaign.Status != models.CampaignStatusActive {
		return nil, invalid("campaignId", "this campaign is no longer active")
	}

	exists, err := s.repo.ApplicationExists(ctx, campaignID, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check application: %w", err)
	}
	if exists {
		return nil, conflict("you have already applied to this campaign")
	}

	app := &models.Application{
		CampaignID:    campaignID,
		CreatorUserID: creatorID,
		PitchMessage:  pitch,
		Status:        models.ApplicationStatusPending,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, conflict("you have already applied to this campaign")
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	log.Printf("Creator %d applied to campaign %d (application %d)", creatorID, campaignID, app.ID)
	return app, nil
}

// ListForCreator returns the creator's applications with their campaigns
func (s *ApplicationService) ListForCreator(ctx context.Context, creatorID uint) ([]models.Application, error) {
	return s.repo.ListApplicationsByCreator(ctx, creatorID)
}

// ListForCampaign returns the applicants of a campaign owned by businessID
func (s *ApplicationService) ListForCampaign(ctx context.Context, businessID, campaignID uint) ([]models.Application, error) {
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
	if campaign.Status == models.CampaignStatusDeleted {
		return nil, notFound("campaign")
	}
	return s.repo.ListApplicationsByCampaign(ctx, campaignID)
}

// Respond accepts or rejects a pending application to one of businessID's campaigns.
// Settled applications cannot be changed.
func (s *ApplicationService) Respond(ctx context.Context, businessID, applicationID uint, accept bool) error {
	status := models.ApplicationStatusRejected
	if accept {
		status = models.ApplicationStatusAccepted
	}

	n, err := s.repo.RespondToApplication(ctx, applicationID, businessID, status)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, applicationID, true, func(app *models.Application) bool {
			return app.Campaign != nil && app.Campaign.BusinessUserID == businessID
		})
	}

	log.Printf("Application %d %s by business %d", applicationID, status, businessID)
	return nil
}

// Withdraw lets a creator pull back a pending application
func (s *ApplicationService) Withdraw(ctx context.Context, creatorID, applicationID uint) error {
	n, err := s.repo.WithdrawApplication(ctx, applicationID, creatorID)
	if err != nil {
		return fmt.Errorf("failed to withdraw application: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, applicationID, false, func(app *models.Application) bool {
			return app.CreatorUserID == creatorID
		})
	}

	log.Printf("Application %d withdrawn by creator %d", applicationID, creatorID)
	return nil
}

// Delete removes a creator's withdrawn or rejected application from their list
func (s *ApplicationService) Delete(ctx context.Context, creatorID, applicationID uint) error {
	n, err := s.repo.DeleteApplication(ctx, applicationID, creatorID, []models.ApplicationStatus{
		models.ApplicationStatusWithdrawn,
		models.ApplicationStatusRejected,
	})
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, applicationID, false, func(app *models.Application) bool {
			return app.CreatorUserID == creatorID
		})
	}
	return nil
}

// classifyMiss explains why a guarded update matched no row. needsLiveCampaign is set when
// the update also required the campaign not to be deleted.
func (s *ApplicationService) classifyMiss(
	ctx context.Context,
	applicationID uint,
	needsLiveCampaign bool,
	owns func(*models.Application) bool,
) error {
	app, err := s.repo.GetApplicationByID(ctx, applicationID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("application")
	}
	if err != nil {
		return err
	}
	if !owns(app) {
		return ErrNotOwner
	}
	if needsLiveCampaign && app.Campaign != nil && app.Campaign.Status == models.CampaignStatusDeleted {
		return notFound("campaign")
	}
	return conflict(fmt.Sprintf("application is already %s", app.Status))
}
