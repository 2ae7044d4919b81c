package models

import "time"

type ReportStatus string

const (
	ReportStatusPending     ReportStatus = "pending"
	ReportStatusReviewed    ReportStatus = "reviewed"
	ReportStatusActionTaken ReportStatus = "action_taken"
	ReportStatusDismissed   ReportStatus = "dismissed"
)

// ReportTransitionSources lists the statuses a report may be in when moving to next.
func ReportTransitionSources(next ReportStatus) []ReportStatus {
	switch next {
	case ReportStatusReviewed:
		return []ReportStatus{ReportStatusPending}
	case ReportStatusActionTaken, ReportStatusDismissed:
		return []ReportStatus{ReportStatusPending, ReportStatusReviewed}
	}
	return nil
}

// Report is a complaint raised by one user against another
type Report struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	ReporterUserID uint         `gorm:"not null;index" json:"reporter_user_id"`
	Reporter       *User        `gorm:"foreignKey:ReporterUserID" json:"reporter,omitempty"`
	ReportedUserID uint         `gorm:"not null;index" json:"reported_user_id"`
	Reported       *User        `gorm:"foreignKey:ReportedUserID" json:"reported,omitempty"`
	Reason         string       `gorm:"size:255;not null" json:"reason"`
	Details        *string      `gorm:"type:text" json:"details,omitempty"`
	Status         ReportStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	ReportedAt     time.Time    `gorm:"autoCreateTime;index" json:"reported_at"`
	ReviewedAt     *time.Time   `json:"reviewed_at,omitempty"`
}

func (Report) TableName() string {
	return "reports"
}
