package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"konnect/internal/models"
)

// CreateReport inserts a report
func (r *Repository) CreateReport(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

// GetReportByID retrieves a report with both parties
func (r *Repository) GetReportByID(ctx context.Context, id uint) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Preload("Reporter").
		Preload("Reported").
		First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// ListReports returns reports, newest first, optionally restricted to one status
func (r *Repository) ListReports(ctx context.Context, status models.ReportStatus, page Page) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("Reporter").
		Preload("Reported").
		Order("reported_at DESC").
		Order("id DESC").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

// UpdateReportStatus moves a report to status if it is currently in one of from.
// It returns the number of rows matched.
func (r *Repository) UpdateReportStatus(
	ctx context.Context,
	id uint,
	from []models.ReportStatus,
	status models.ReportStatus,
	at time.Time,
) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": at,
		})
	return result.RowsAffected, result.Error
}

// CountReports returns the number of reports, optionally restricted to statuses
func (r *Repository) CountReports(ctx context.Context, statuses ...models.ReportStatus) (int64, error) {
	var total int64
	query := r.db.WithContext(ctx).Model(&models.Report{})
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}
	err := query.Count(&total).Error
	return total, err
}
