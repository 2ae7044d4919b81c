package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// CreateCampaign inserts a campaign
func (r *Repository) CreateCampaign(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(campaign).Error
}

// GetCampaignByID retrieves a campaign in any status with its business profile
func (r *Repository) GetCampaignByID(ctx context.Context, id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Preload("Business").
		First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ListCampaignsByBusiness returns a business's campaigns, excluding deleted ones, newest first
func (r *Repository) ListCampaignsByBusiness(ctx context.Context, businessID uint) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.WithContext(ctx).
		Where("business_user_id = ? AND status <> ?", businessID, models.CampaignStatusDeleted).
		Order("created_at DESC").
		Order("id DESC").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

// ListActiveCampaigns returns active campaigns matching search in title or description.
// The total mirrors the same filter.
func (r *Repository) ListActiveCampaigns(ctx context.Context, search string, page Page) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Joins("JOIN businesses ON businesses.user_id = campaigns.business_user_id").
		Where("campaigns.status = ?", models.CampaignStatusActive)

	if search = strings.TrimSpace(search); search != "" {
		pattern := likePattern(strings.ToLower(search))
		query = query.Where("(LOWER(campaigns.title) LIKE ? OR LOWER(campaigns.description) LIKE ?)", pattern, pattern)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Select("campaigns.*").
		Preload("Business").
		Order("campaigns.created_at DESC").
		Order("campaigns.id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// ListAllCampaigns returns every campaign, deleted included, for moderation
func (r *Repository) ListAllCampaigns(ctx context.Context, page Page) ([]models.Campaign, int64, error) {
	var campaigns []models.Campaign
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Campaign{}).Session(&gorm.Session{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Business").
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&campaigns).Error
	if err != nil {
		return nil, 0, err
	}

	return campaigns, total, nil
}

// UpdateCampaignGuarded applies updates only if the campaign still belongs to businessID
// and is still in status from. It returns the number of rows matched.
func (r *Repository) UpdateCampaignGuarded(
	ctx context.Context,
	id uint,
	businessID uint,
	from models.CampaignStatus,
	updates map[string]interface{},
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ? AND business_user_id = ? AND status = ?", id, businessID, from).
		Updates(updates)
	return result.RowsAffected, result.Error
}

// CountCampaigns returns the number of campaigns, optionally restricted to statuses
func (r *Repository) CountCampaigns(ctx context.Context, statuses ...models.CampaignStatus) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Campaign{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&total).Error
	return total, err
}

// CountCampaignsByBusiness returns campaign counts per status for one business
func (r *Repository) CountCampaignsByBusiness(ctx context.Context, businessID uint) (map[models.CampaignStatus]int64, error) {
	var rows []struct {
		Status models.CampaignStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Select("status, COUNT(*) AS total").
		Where("business_user_id = ?", businessID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.CampaignStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}
