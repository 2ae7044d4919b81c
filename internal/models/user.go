package models

import (
	"fmt"
	"time"
)

// Role is the closed set of account kinds. It is fixed when the account is created.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCreator  Role = "creator"
	RoleBusiness Role = "business"
)

// AllRoles returns every role in display order.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleCreator, RoleBusiness}
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleCreator, RoleBusiness:
		return true
	}
	return false
}

// ParseRole converts user input into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// DashboardPath is where a freshly logged in user of this role lands.
func (r Role) DashboardPath() string {
	return "/" + string(r) + "/dashboard"
}

// User represents an account of any role
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:64;not null" json:"-"`
	Salt         string    `gorm:"size:64;not null" json:"-"`
	Role         Role      `gorm:"size:20;not null;index" json:"role"`
	Banned       bool      `gorm:"not null;default:false;index" json:"banned"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Creator  *Creator  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"creator,omitempty"`
	Business *Business `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"business,omitempty"`
}

// TableName specifies the table name for User model
func (User) TableName() string {
	return "users"
}

// DisplayName is the name shown to other users in chat and listings.
func (u *User) DisplayName() string {
	switch {
	case u.Role == RoleCreator && u.Creator != nil && u.Creator.DisplayName != "":
		return u.Creator.DisplayName
	case u.Role == RoleBusiness && u.Business != nil && u.Business.CompanyName != "":
		return u.Business.CompanyName
	case u.Role == RoleAdmin:
		return "Admin (" + u.Email + ")"
	}
	return u.Email
}
