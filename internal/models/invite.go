package models

import "time"

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusRejected InviteStatus = "rejected"
)

// Invite is a business asking a creator to join one of its campaigns
type Invite struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	CampaignID     uint         `gorm:"not null;uniqueIndex:idx_invites_business_creator_campaign" json:"campaign_id"`
	Campaign       *Campaign    `gorm:"foreignKey:CampaignID" json:"campaign,omitempty"`
	BusinessUserID uint         `gorm:"not null;uniqueIndex:idx_invites_business_creator_campaign" json:"business_user_id"`
	Business       *Business    `gorm:"foreignKey:BusinessUserID;references:UserID" json:"business,omitempty"`
	CreatorUserID  uint         `gorm:"not null;uniqueIndex:idx_invites_business_creator_campaign;index" json:"creator_user_id"`
	Creator        *Creator     `gorm:"foreignKey:CreatorUserID;references:UserID" json:"creator,omitempty"`
	InviteMessage  string       `gorm:"type:text" json:"invite_message"`
	Status         InviteStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	SentAt         time.Time    `gorm:"autoCreateTime" json:"sent_at"`
	RespondedAt    *time.Time   `json:"responded_at,omitempty"`
}

func (Invite) TableName() string {
	return "invites"
}
