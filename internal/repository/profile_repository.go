package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// CreatorFilter narrows a creator search
type CreatorFilter struct {
	Niche        string
	MinFollowers int
}

// CreateCreator inserts a creator profile
func (r *Repository) CreateCreator(ctx context.Context, creator *models.Creator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(creator).Error
}

// GetCreator retrieves a creator profile with its account
func (r *Repository) GetCreator(ctx context.Context, userID uint) (*models.Creator, error) {
	var creator models.Creator
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&creator).Error
	if err != nil {
		return nil, err
	}
	return &creator, nil
}

// SaveCreator writes every profile column of creator
func (r *Repository) SaveCreator(ctx context.Context, creator *models.Creator) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(creator).Error
}

// SearchCreators lists creators of non-banned accounts, most followed first
func (r *Repository) SearchCreators(ctx context.Context, filter CreatorFilter, page Page) ([]models.Creator, int64, error) {
	var creators []models.Creator
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Creator{}).
		Joins("JOIN users ON users.id = creators.user_id").
		Where("users.banned = ?", false)

	if niche := strings.TrimSpace(filter.Niche); niche != "" {
		query = query.Where("LOWER(creators.niche) LIKE ?", likePattern(strings.ToLower(niche)))
	}
	if filter.MinFollowers > 0 {
		query = query.Where("creators.follower_count >= ?", filter.MinFollowers)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Select("creators.*").
		Preload("User").
		Order("creators.follower_count DESC").
		Order("creators.display_name ASC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&creators).Error
	if err != nil {
		return nil, 0, err
	}

	return creators, total, nil
}

// CreateBusiness inserts a business profile
func (r *Repository) CreateBusiness(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(business).Error
}

// GetBusiness retrieves a business profile with its account
func (r *Repository) GetBusiness(ctx context.Context, userID uint) (*models.Business, error) {
	var business models.Business
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// SaveBusiness writes every profile column of business
func (r *Repository) SaveBusiness(ctx context.Context, business *models.Business) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(business).Error
}
