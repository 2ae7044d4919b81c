package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// ApplicationExists reports whether creatorID already applied to campaignID
func (r *Repository) ApplicationExists(ctx context.Context, campaignID, creatorID uint) (bool, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Select("id").
		Where("campaign_id = ? AND creator_user_id = ?", campaignID, creatorID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateApplication inserts an application
func (r *Repository) CreateApplication(ctx context.Context, app *models.Application) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(app).Error
}

// GetApplicationByID retrieves an application with its campaign
func (r *Repository) GetApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// ListApplicationsByCreator returns a creator's applications, newest first
func (r *Repository) ListApplicationsByCreator(ctx context.Context, creatorID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Preload("Campaign.Business").
		Where("creator_user_id = ?", creatorID).
		Order("applied_at DESC").
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// ListApplicationsByCampaign returns the applicants of a campaign, newest first
func (r *Repository) ListApplicationsByCampaign(ctx context.Context, campaignID uint) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Creator.User").
		Where("campaign_id = ?", campaignID).
		Order("applied_at DESC").
		Order("id DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// RespondToApplication moves a pending application to status, provided the campaign
// belongs to businessID. It returns the number of rows matched.
func (r *Repository) RespondToApplication(
	ctx context.Context,
	id uint,
	businessID uint,
	status models.ApplicationStatus,
) (int64, error) {
	owned := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Select("id").
		Where("business_user_id = ? AND status <> ?", businessID, models.CampaignStatusDeleted)

	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND status = ? AND campaign_id IN (?)", id, models.ApplicationStatusPending, owned).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// WithdrawApplication moves a creator's own pending application to withdrawn
func (r *Repository) WithdrawApplication(ctx context.Context, id, creatorID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Where("id = ? AND creator_user_id = ? AND status = ?", id, creatorID, models.ApplicationStatusPending).
		Update("status", models.ApplicationStatusWithdrawn)
	return result.RowsAffected, result.Error
}

// DeleteApplication removes a creator's own application if it is in one of statuses
func (r *Repository) DeleteApplication(
	ctx context.Context,
	id uint,
	creatorID uint,
	statuses []models.ApplicationStatus,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND creator_user_id = ? AND status IN ?", id, creatorID, statuses).
		Delete(&models.Application{})
	return result.RowsAffected, result.Error
}

// CountApplicationsByCreator returns a creator's application counts per status
func (r *Repository) CountApplicationsByCreator(ctx context.Context, creatorID uint) (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Total  int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Select("status, COUNT(*) AS total").
		Where("creator_user_id = ?", creatorID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountPendingApplicationsForBusiness counts pending applications across a business's campaigns
func (r *Repository) CountPendingApplicationsForBusiness(ctx context.Context, businessID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Application{}).
		Joins("JOIN campaigns ON campaigns.id = applications.campaign_id").
		Where("campaigns.business_user_id = ? AND applications.status = ?", businessID, models.ApplicationStatusPending).
		Count(&total).Error
	return total, err
}
