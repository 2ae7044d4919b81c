package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// InviteExists reports whether businessID already invited creatorID to campaignID
func (r *Repository) InviteExists(ctx context.Context, businessID, creatorID, campaignID uint) (bool, error) {
	var invite models.Invite
	err := r.db.WithContext(ctx).
		Select("id").
		Where("business_user_id = ? AND creator_user_id = ? AND campaign_id = ?", businessID, creatorID, campaignID).
		First(&invite).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CreateInvite inserts an invite
func (r *Repository) CreateInvite(ctx context.Context, invite *models.Invite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(invite).Error
}

// GetInviteByID retrieves an invite
func (r *Repository) GetInviteByID(ctx context.Context, id uint) (*models.Invite, error) {
	var invite models.Invite
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		First(&invite, id).Error
	if err != nil {
		return nil, err
	}
	return &invite, nil
}

// ListInvitesForCreator returns invites addressed to creatorID, newest first
func (r *Repository) ListInvitesForCreator(ctx context.Context, creatorID uint) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.db.WithContext(ctx).
		Preload("Campaign").
		Preload("Business").
		Where("creator_user_id = ?", creatorID).
		Order("sent_at DESC").
		Order("id DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// ListInvitesForCampaign returns invites sent by businessID for campaignID, newest first
func (r *Repository) ListInvitesForCampaign(ctx context.Context, businessID, campaignID uint) ([]models.Invite, error) {
	var invites []models.Invite
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Where("business_user_id = ? AND campaign_id = ?", businessID, campaignID).
		Order("sent_at DESC").
		Order("id DESC").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// RespondToInvite settles a pending invite addressed to creatorID.
// It returns the number of rows matched; a second response, or one on a deleted campaign, matches nothing.
func (r *Repository) RespondToInvite(
	ctx context.Context,
	id uint,
	creatorID uint,
	status models.InviteStatus,
	at time.Time,
) (int64, error) {
	live := r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Select("id").
		Where("status <> ?", models.CampaignStatusDeleted)

	result := r.db.WithContext(ctx).
		Model(&models.Invite{}).
		Where("id = ? AND creator_user_id = ? AND status = ? AND campaign_id IN (?)", id, creatorID, models.InviteStatusPending, live).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": at,
		})
	return result.RowsAffected, result.Error
}

// DeletePendingInvite removes a pending invite sent by businessID
func (r *Repository) DeletePendingInvite(ctx context.Context, id, businessID uint) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND business_user_id = ? AND status = ?", id, businessID, models.InviteStatusPending).
		Delete(&models.Invite{})
	return result.RowsAffected, result.Error
}

// CountInvites counts invites matching the given column filters
func (r *Repository) CountInvites(ctx context.Context, where map[string]interface{}) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Invite{}).Where(where).Count(&total).Error
	return total, err
}
