package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a dashboard user: a restaurant owner or staff member, or a
// platform admin with no restaurant binding
type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Auth0ID      string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name         string         `gorm:"not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	Role         string         `gorm:"not null;default:'staff'" json:"role"` // "owner", "staff" or "admin"
	RestaurantID *uint          `gorm:"index" json:"restaurant_id"`           // nil for platform admins
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
