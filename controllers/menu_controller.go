package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

// GetPublicMenu handles GET /api/v1/public/:slug/menu - the full customer
// facing catalog: restaurant info plus ordered categories with their
// available products, additive groups and additives
func GetPublicMenu(c *gin.Context) {
	restaurant, ok := findRestaurantBySlug(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var categories []models.Category
	if err := db.
		Where("restaurant_id = ?", restaurant.ID).
		Order("sort_order asc").
		Preload("Products", "available = ?", true).
		Preload("Products.AdditiveGroups", func(tx *gorm.DB) *gorm.DB { return tx.Order("sort_order asc") }).
		Preload("Products.AdditiveGroups.AdditiveGroup", "active = ?", true).
		Preload("Products.AdditiveGroups.AdditiveGroup.Additives", "active = ?", true).
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load menu",
			},
		})
		return
	}

	// Resolve presigned image URLs; a failed URL leaves the field empty
	imageService := services.GetImageService()
	if imageService != nil {
		if restaurant.LogoS3Key != nil {
			if url, err := imageService.GetImageURL(*restaurant.LogoS3Key); err == nil && url != "" {
				restaurant.LogoURL = &url
			}
		}
		for ci := range categories {
			for pi := range categories[ci].Products {
				p := &categories[ci].Products[pi]
				if p.ImageS3Key != nil {
					if url, err := imageService.GetImageURL(*p.ImageS3Key); err == nil && url != "" {
						p.ImageURL = &url
					}
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"restaurant": restaurant,
			"categories": categories,
		},
	})
}
