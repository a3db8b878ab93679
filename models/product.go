package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is one item on a restaurant's menu. A product may participate in any
// number of additive groups; the join rows carry the display order of the
// groups on the product page.
type Product struct {
	ID             uint                   `gorm:"primaryKey" json:"id"`
	RestaurantID   uint                   `gorm:"not null;index" json:"restaurant_id"`
	CategoryID     uint                   `gorm:"not null;index" json:"category_id"`
	Name           string                 `gorm:"not null" json:"name"`
	Description    string                 `json:"description"`
	Price          float64                `gorm:"not null" json:"price"`
	ImageS3Key     *string                `json:"image_s3_key"`
	ImageURL       *string                `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL
	Available      bool                   `gorm:"not null;default:true" json:"available"`
	Featured       bool                   `gorm:"not null;default:false" json:"featured"`
	PrepMinutes    int                    `json:"prep_minutes"`
	SortOrder      int                    `gorm:"not null;default:0" json:"sort_order"`
	AdditiveGroups []ProductAdditiveGroup `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"additive_groups,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	DeletedAt      gorm.DeletedAt         `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// ProductAdditiveGroup links a product to an additive group it offers
type ProductAdditiveGroup struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	ProductID       uint          `gorm:"not null;index" json:"product_id"`
	AdditiveGroupID uint          `gorm:"not null;index" json:"additive_group_id"`
	SortOrder       int           `gorm:"not null;default:0" json:"sort_order"`
	AdditiveGroup   AdditiveGroup `gorm:"foreignKey:AdditiveGroupID" json:"additive_group"`
}

// TableName specifies the table name for the ProductAdditiveGroup model
func (ProductAdditiveGroup) TableName() string {
	return "product_additive_groups"
}
