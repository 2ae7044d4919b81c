package models

import (
	"time"

	"gorm.io/datatypes"
)

// Admin actions recorded in the audit trail
const (
	AdminActionBanUser            = "BAN_USER"
	AdminActionUnbanUser          = "UNBAN_USER"
	AdminActionUpdateReportStatus = "UPDATE_REPORT_STATUS"
	AdminActionBanFromReport      = "BAN_FROM_REPORT"
	AdminActionDismissReport      = "DISMISS_REPORT"
)

// AdminLog records admin actions for audit trail
type AdminLog struct {
	ID           uint              `gorm:"primaryKey" json:"id"`
	AdminUserID  uint              `gorm:"not null;index" json:"admin_user_id"`
	Admin        *User             `gorm:"foreignKey:AdminUserID" json:"admin,omitempty"`
	Action       string            `gorm:"size:100;not null" json:"action"`
	ResourceType string            `gorm:"size:50" json:"resource_type"`
	ResourceID   *uint             `json:"resource_id"`
	Details      datatypes.JSONMap `json:"details"`
	CreatedAt    time.Time         `gorm:"index" json:"created_at"`
}

func (AdminLog) TableName() string {
	return "admin_logs"
}
