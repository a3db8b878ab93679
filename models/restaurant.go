package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant represents one tenant of the platform. The public ordering site
// addresses a restaurant by its slug.
type Restaurant struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	Slug               string         `gorm:"uniqueIndex;not null" json:"slug"`
	TradeName          string         `gorm:"not null" json:"trade_name"`
	LegalName          string         `json:"legal_name"`
	Phone              string         `json:"phone"`
	Whatsapp           string         `json:"whatsapp"`
	OpeningTime        string         `json:"opening_time"` // "HH:MM"
	ClosingTime        string         `json:"closing_time"` // "HH:MM"
	DeliveryFee        float64        `gorm:"not null;default:0" json:"delivery_fee"`
	AvgDeliveryMinutes int            `json:"avg_delivery_minutes"`
	Street             string         `json:"street"`
	Number             string         `json:"number"`
	District           string         `json:"district"`
	City               string         `json:"city"`
	State              string         `json:"state"`
	LogoS3Key          *string        `json:"logo_s3_key"`
	LogoURL            *string        `gorm:"-" json:"logo_url,omitempty"` // computed field, presigned URL
	Active             bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Restaurant model
func (Restaurant) TableName() string {
	return "restaurants"
}
