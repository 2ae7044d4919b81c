package models

import "time"

// Business is the profile attached to a business account
type Business struct {
	UserID           uint      `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User             *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CompanyName      string    `gorm:"size:255;not null;index" json:"company_name"`
	Website          string    `gorm:"size:255" json:"website"`
	Industry         string    `gorm:"size:100" json:"industry"`
	Description      string    `gorm:"type:text" json:"description"`
	ProfileUpdatedAt time.Time `gorm:"autoUpdateTime" json:"profile_updated_at"`
}

func (Business) TableName() string {
	return "businesses"
}

func (b *Business) ProfileComplete() bool {
	return b.CompanyName != "" && b.Industry != "" && b.Description != ""
}
