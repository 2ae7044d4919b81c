package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"konnect/internal/models"
	"konnect/internal/repository"
	"konnect/internal/storage"
)

const (
	dateLayout     = "2006-01-02"
	maxTitleLength = 255
)

// CampaignService manages the campaign lifecycle
type CampaignService struct {
	repo  *repository.Repository
	files FileStore
}

// NewCampaignService creates a new CampaignService
func NewCampaignService(repo *repository.Repository, files FileStore) *CampaignService {
	return &CampaignService{repo: repo, files: files}
}

// CampaignInput is the create/edit form. Empty Status keeps the current status on edit.
type CampaignInput struct {
	Title        string
	Description  string
	Requirements string
	Budget       string
	StartDate    string
	EndDate      string
	Status       string
	Image        *storage.Upload
}

type campaignFields struct {
	title        string
	description  string
	requirements string
	budget       decimal.NullDecimal
	startDate    *time.Time
	endDate      *time.Time
}

func parseCampaignInput(in CampaignInput) (*campaignFields, error) {
	f := &campaignFields{
		title:        strings.TrimSpace(in.Title),
		description:  strings.TrimSpace(in.Description),
		requirements: strings.TrimSpace(in.Requirements),
	}

	if f.title == "" {
		return nil, invalid("title", "title is required")
	}
	if len(f.title) > maxTitleLength {
		return nil, invalid("title", fmt.Sprintf("title must be at most %d characters", maxTitleLength))
	}
	if f.description == "" {
		return nil, invalid("description", "description is required")
	}

	if raw := strings.TrimSpace(in.Budget); raw != "" {
		budget, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, invalid("budget", "budget must be a number")
		}
		if budget.IsNegative() {
			return nil, invalid("budget", "budget cannot be negative")
		}
		f.budget = decimal.NewNullDecimal(budget.Round(2))
	}

	var err error
	if f.startDate, err = parseDate("startDate", in.StartDate); err != nil {
		return nil, err
	}
	if f.endDate, err = parseDate("endDate", in.EndDate); err != nil {
		return nil, err
	}
	if f.startDate != nil && f.endDate != nil && f.endDate.Before(*f.startDate) {
		return nil, invalid("endDate", "end date cannot be before start date")
	}

	return f, nil
}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, invalid(field, "date must be in YYYY-MM-DD format")
	}
	return &t, nil
}

// Create stores a new active campaign owned by businessID
func (s *CampaignService) Create(ctx context.Context, businessID uint, in CampaignInput) (*models.Campaign, error) {
	f, err := parseCampaignInput(in)
	if err != nil {
		return nil, err
	}

	imagePath, err := saveUpload(s.files, storage.CategoryProductImages, "productImage", in.Image)
	if err != nil {
		return nil, err
	}

	campaign := &models.Campaign{
		BusinessUserID:   businessID,
		Title:            f.title,
		Description:      f.description,
		Requirements:     f.requirements,
		Budget:           f.budget,
		StartDate:        f.startDate,
		EndDate:          f.endDate,
		ProductImagePath: imagePath,
		Status:           models.CampaignStatusActive,
	}

	if err := s.repo.CreateCampaign(ctx, campaign); err != nil {
		discardFile(s.files, imagePath)
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	log.Printf("Campaign %d created by business %d", campaign.ID, businessID)
	return campaign, nil
}

// GetForOwner returns a non-deleted campaign owned by businessID
func (s *CampaignService) GetForOwner(ctx context.Context, businessID, campaignID uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("campaign")
	}
	if err != nil {
		return nil, err
	}
	if campaign.Status == models.CampaignStatusDeleted {
		return nil, notFound("campaign")
	}
	if campaign.BusinessUserID != businessID {
		return nil, ErrNotOwner
	}
	return campaign, nil
}

// Update edits a campaign. A new image replaces the old one, which is deleted once the row is saved.
func (s *CampaignService) Update(ctx context.Context, businessID, campaignID uint, in CampaignInput) (*models.Campaign, error) {
	current, err := s.GetForOwner(ctx, businessID, campaignID)
	if err != nil {
		return nil, err
	}

	f, err := parseCampaignInput(in)
	if err != nil {
		return nil, err
	}

	next := current.Status
	if raw := strings.TrimSpace(in.Status); raw != "" {
		next = models.CampaignStatus(raw)
		if !next.Valid() || next == models.CampaignStatusDeleted {
			return nil, invalid("status", "status must be active, inactive or completed")
		}
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, invalid("status", fmt.Sprintf("a %s campaign cannot become %s", current.Status, next))
	}

	newImage, err := saveUpload(s.files, storage.CategoryProductImages, "productImage", in.Image)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":        f.title,
		"description":  f.description,
		"requirements": f.requirements,
		"budget":       f.budget,
		"start_date":   f.startDate,
		"end_date":     f.endDate,
		"status":       next,
	}
	if newImage != nil {
		updates["product_image_path"] = *newImage
	}

	n, err := s.repo.UpdateCampaignGuarded(ctx, campaignID, businessID, current.Status, updates)
	if err != nil {
		discardFile(s.files, newImage)
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}
	if n == 0 {
		discardFile(s.files, newImage)
		return nil, s.classifyCampaignMiss(ctx, businessID, campaignID)
	}

	if newImage != nil {
		discardFile(s.files, current.ProductImagePath)
	}

	log.Printf("Campaign %d updated by business %d (status %s)", campaignID, businessID, next)
	return s.repo.GetCampaignByID(ctx, campaignID)
}

// Delete soft-deletes a campaign. Deleted campaigns stay visible to admins only.
func (s *CampaignService) Delete(ctx context.Context, businessID, campaignID uint) error {
	current, err := s.GetForOwner(ctx, businessID, campaignID)
	if err != nil {
		return err
	}

	n, err := s.repo.UpdateCampaignGuarded(ctx, campaignID, businessID, current.Status, map[string]interface{}{
		"status": models.CampaignStatusDeleted,
	})
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	if n == 0 {
		return s.classifyCampaignMiss(ctx, businessID, campaignID)
	}

	log.Printf("Campaign %d deleted by business %d", campaignID, businessID)
	return nil
}

// ListForBusiness returns the owner's campaigns without deleted ones
func (s *CampaignService) ListForBusiness(ctx context.Context, businessID uint) ([]models.Campaign, error) {
	return s.repo.ListCampaignsByBusiness(ctx, businessID)
}

// ListActive is the creator browse view
func (s *CampaignService) ListActive(ctx context.Context, search string, page int) (*Paged[models.Campaign], error) {
	campaigns, total, err := s.repo.ListActiveCampaigns(ctx, search, pageWindow(page, CampaignsPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return newPaged(campaigns, total, page, CampaignsPerPage), nil
}

// GetActive returns a campaign only while it accepts applications
func (s *CampaignService) GetActive(ctx context.Context, campaignID uint) (*models.Campaign, error) {
	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, notFound("campaign")
	}
	if err != nil {
		return nil, err
	}
	if campaign.Status != models.CampaignStatusActive {
		return nil, notFound("campaign")
	}
	return campaign, nil
}

// ListAll is the admin view, deleted campaigns included
func (s *CampaignService) ListAll(ctx context.Context, page int) (*Paged[models.Campaign], error) {
	campaigns, total, err := s.repo.ListAllCampaigns(ctx, pageWindow(page, AdminListPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return newPaged(campaigns, total, page, AdminListPerPage), nil
}

func (s *CampaignService) classifyCampaignMiss(ctx context.Context, businessID, campaignID uint) error {
	campaign, err := s.repo.GetCampaignByID(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound("campaign")
	}
	if err != nil {
		return err
	}
	if campaign.BusinessUserID != businessID {
		return ErrNotOwner
	}
	if campaign.Status == models.CampaignStatusDeleted {
		return notFound("campaign")
	}
	return conflict("campaign was modified concurrently")
}
