package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus represents the lifecycle state of a campaign
type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusInactive  CampaignStatus = "inactive"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusDeleted   CampaignStatus = "deleted"
)

// Valid reports whether s is a known campaign status.
func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignStatusActive, CampaignStatusInactive, CampaignStatusCompleted, CampaignStatusDeleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a campaign in status s may move to next.
// Keeping the current status is allowed for every status except deleted.
func (s CampaignStatus) CanTransitionTo(next CampaignStatus) bool {
	if s == CampaignStatusDeleted {
		return false
	}
	if s == next {
		return true
	}
	switch s {
	case CampaignStatusActive:
		return next == CampaignStatusInactive || next == CampaignStatusCompleted || next == CampaignStatusDeleted
	case CampaignStatusInactive, CampaignStatusCompleted:
		return next == CampaignStatusDeleted
	}
	return false
}

// Campaign is a business-owned call for creator collaboration
type Campaign struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	BusinessUserID   uint                `gorm:"not null;index" json:"business_user_id"`
	Business         *Business           `gorm:"foreignKey:BusinessUserID;references:UserID" json:"business,omitempty"`
	Title            string              `gorm:"size:255;not null" json:"title"`
	Description      string              `gorm:"type:text;not null" json:"description"`
	Requirements     string              `gorm:"type:text" json:"requirements"`
	Budget           decimal.NullDecimal `gorm:"type:decimal(12,2)" json:"budget"`
	StartDate        *time.Time          `gorm:"type:date" json:"start_date,omitempty"`
	EndDate          *time.Time          `gorm:"type:date" json:"end_date,omitempty"`
	ProductImagePath *string             `gorm:"size:255" json:"product_image_path,omitempty"`
	Status           CampaignStatus      `gorm:"size:20;not null;default:active;index" json:"status"`
	CreatedAt        time.Time           `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
