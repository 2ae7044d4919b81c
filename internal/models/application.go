package models

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending   ApplicationStatus = "pending"
	ApplicationStatusAccepted  ApplicationStatus = "accepted"
	ApplicationStatusRejected  ApplicationStatus = "rejected"
	ApplicationStatusWithdrawn ApplicationStatus = "withdrawn"
)

// Application is a creator's request to join a campaign.
// A creator applies to a given campaign at most once.
type Application struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	CampaignID    uint              `gorm:"not null;uniqueIndex:idx_applications_campaign_creator" json:"campaign_id"`
	Campaign      *Campaign         `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	CreatorUserID uint              `gorm:"not null;uniqueIndex:idx_applications_campaign_creator;index" json:"creator_user_id"`
	Creator       *Creator          `gorm:"foreignKey:CreatorUserID;references:UserID" json:"creator,omitempty"`
	PitchMessage  string            `gorm:"type:text;not null" json:"pitch_message"`
	Status        ApplicationStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	AppliedAt     time.Time         `gorm:"autoCreateTime" json:"applied_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func (Application) TableName() string {
	return "applications"
}
