package repository

import (
	"context"

	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// CreateAdminLog appends an entry to the moderation audit trail
func (r *Repository) CreateAdminLog(ctx context.Context, entry *models.AdminLog) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(entry).Error
}

// ListAdminLogs returns audit entries, newest first
func (r *Repository) ListAdminLogs(ctx context.Context, page Page) ([]models.AdminLog, error) {
	var logs []models.AdminLog
	err := r.db.WithContext(ctx).
		Preload("Admin").
		Order("created_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
