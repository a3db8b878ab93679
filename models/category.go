package models

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products on a restaurant's menu. SortOrder controls display order.
type Category struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`
	Products     []Product      `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
