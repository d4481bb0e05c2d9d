package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User binds an identity to a role and, for clients, a tenant. Email is
// lowercased and is the lookup key. ClientID stays empty until an admin
// provisions a tenant for the user; an admin never carries a ClientID.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email       string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"size:20;default:'client'" json:"role"`
	ClientID    string         `gorm:"size:36;not null;default:''" json:"client_id"`
	DisplayName string         `gorm:"size:255" json:"display_name,omitempty"`
	PhotoURL    string         `gorm:"size:500" json:"photo_url,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsBound reports whether a client user has a tenant assigned.
func (u *User) IsBound() bool {
	return u.Role == RoleClient && u.ClientID != ""
}
