package models

import (
	"time"

	"gorm.io/gorm"
)

// SelectionMode controls how a customer picks additives within a group
type SelectionMode string

const (
	// SelectionSingle renders as radio buttons: picking an additive replaces
	// any previous pick, at most one is active.
	SelectionSingle SelectionMode = "single"
	// SelectionMultiple renders as checkboxes: picks toggle membership,
	// bounded by MinSelect/MaxSelect.
	SelectionMultiple SelectionMode = "multiple"
)

// AdditiveGroup is a named set of additives with selection-count rules.
// Additives are owned by their group and removed with it.
type AdditiveGroup struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	RestaurantID uint           `gorm:"not null;index" json:"restaurant_id"`
	Name         string         `gorm:"not null" json:"name"`
	Description  string         `json:"description"`
	Mode         SelectionMode  `gorm:"not null;default:'single'" json:"mode"`
	MinSelect    int            `gorm:"not null;default:0" json:"min_select"`
	MaxSelect    int            `gorm:"not null;default:1" json:"max_select"`
	Required     bool           `gorm:"not null;default:false" json:"required"`
	SortOrder    int            `gorm:"not null;default:0" json:"sort_order"`
	Active       bool           `gorm:"not null;default:true" json:"active"`
	Additives    []Additive     `gorm:"foreignKey:AdditiveGroupID;constraint:OnDelete:CASCADE" json:"additives,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the AdditiveGroup model
func (AdditiveGroup) TableName() string {
	return "additive_groups"
}

// ValidateBounds checks the group's selection-count invariants: min <= max,
// non-negative bounds, and single mode capped at exactly one.
func (g *AdditiveGroup) ValidateBounds() error {
	if g.Mode != SelectionSingle && g.Mode != SelectionMultiple {
		return NewValidationError("mode", "selection mode must be 'single' or 'multiple'")
	}
	if g.MinSelect < 0 {
		return NewValidationError("min_select", "minimum selection count cannot be negative")
	}
	if g.Mode == SelectionSingle && g.MaxSelect != 1 {
		return NewValidationError("max_select", "single-selection groups must have a maximum of exactly 1")
	}
	if g.MinSelect > g.MaxSelect {
		return NewValidationError("min_select", "minimum selection count cannot exceed the maximum")
	}
	return nil
}

// Additive is an optional extra attachable to a product line, with its own
// price delta. It belongs to exactly one group.
type Additive struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	AdditiveGroupID uint           `gorm:"not null;index" json:"additive_group_id"`
	Name            string         `gorm:"not null" json:"name"`
	Description     string         `json:"description"`
	Price           float64        `gorm:"not null;default:0" json:"price"`
	SortOrder       int            `gorm:"not null;default:0" json:"sort_order"`
	Active          bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Additive model
func (Additive) TableName() string {
	return "additives"
}
