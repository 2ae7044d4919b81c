package models

import (
	"time"

	"gorm.io/datatypes"
)

// Social platforms a creator can link from the profile page.
const (
	PlatformInstagram = "instagram"
	PlatformYouTube   = "youtube"
	PlatformTikTok    = "tiktok"
)

// SocialLinks maps platform name to profile URL
type SocialLinks map[string]string

// Creator is the profile attached to a creator account
type Creator struct {
	UserID           uint                            `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	User             *User                           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	DisplayName      string                          `gorm:"size:100;not null;index" json:"display_name"`
	Bio              string                          `gorm:"type:text" json:"bio"`
	SocialLinks      datatypes.JSONType[SocialLinks] `gorm:"not null;default:'{}'" json:"social_links"`
	Niche            string                          `gorm:"size:100;index" json:"niche"`
	FollowerCount    int                             `gorm:"not null;default:0;index" json:"follower_count"`
	PricingInfo      string                          `gorm:"type:text" json:"pricing_info"`
	MediaKitPath     *string                         `gorm:"size:255" json:"media_kit_path,omitempty"`
	ProfileUpdatedAt time.Time                       `gorm:"autoUpdateTime" json:"profile_updated_at"`
}

func (Creator) TableName() string {
	return "creators"
}

// ProfileComplete reports whether the fields businesses search on are filled in.
func (c *Creator) ProfileComplete() bool {
	return c.DisplayName != "" && c.Bio != "" && c.Niche != "" && len(c.Links()) > 0
}

// Links returns the stored social links, never nil
func (c *Creator) Links() SocialLinks {
	links := c.SocialLinks.Data()
	if links == nil {
		return SocialLinks{}
	}
	return links
}
