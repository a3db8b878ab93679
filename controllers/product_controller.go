package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

// ProductRequest represents the request body for creating or updating a product
type ProductRequest struct {
	CategoryID       uint    `json:"category_id" binding:"required"`
	Name             string  `json:"name" binding:"required"`
	Description      string  `json:"description"`
	Price            float64 `json:"price" binding:"required,gt=0"`
	ImageS3Key       *string `json:"image_s3_key"`
	Available        *bool   `json:"available"`
	Featured         bool    `json:"featured"`
	PrepMinutes      int     `json:"prep_minutes"`
	SortOrder        int     `json:"sort_order"`
	AdditiveGroupIDs []uint  `json:"additive_group_ids"`
}

// ListProducts handles GET /api/v1/products - the restaurant's products with
// their additive groups
func ListProducts(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var products []models.Product
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order asc").
		Preload("AdditiveGroups.AdditiveGroup.Additives").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load products",
			},
		})
		return
	}

	imageService := services.GetImageService()
	if imageService != nil {
		for i := range products {
			if products[i].ImageS3Key != nil {
				if url, err := imageService.GetImageURL(*products[i].ImageS3Key); err == nil && url != "" {
					products[i].ImageURL = &url
				}
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /api/v1/products
func CreateProduct(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	db := config.GetDB()

	// The category must belong to the same restaurant
	var category models.Category
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&category, req.CategoryID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	available := true
	if req.Available != nil {
		available = *req.Available
	}

	product := models.Product{
		RestaurantID: restaurantID,
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		ImageS3Key:   req.ImageS3Key,
		Available:    available,
		Featured:     req.Featured,
		PrepMinutes:  req.PrepMinutes,
		SortOrder:    req.SortOrder,
	}

	if err := db.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	if err := assignAdditiveGroups(c, &product, req.AdditiveGroupIDs, restaurantID); err != nil {
		return
	}

	db.Preload("AdditiveGroups.AdditiveGroup.Additives").First(&product, product.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /api/v1/products/:id
func UpdateProduct(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	product.CategoryID = req.CategoryID
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.ImageS3Key = req.ImageS3Key
	product.Featured = req.Featured
	product.PrepMinutes = req.PrepMinutes
	product.SortOrder = req.SortOrder
	if req.Available != nil {
		product.Available = *req.Available
	}

	if err := db.Save(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	// Replace the group assignments wholesale
	if err := db.Where("product_id = ?", product.ID).Delete(&models.ProductAdditiveGroup{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product groups",
			},
		})
		return
	}
	if err := assignAdditiveGroups(c, &product, req.AdditiveGroupIDs, restaurantID); err != nil {
		return
	}

	db.Preload("AdditiveGroups.AdditiveGroup.Additives").First(&product, product.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /api/v1/products/:id
func DeleteProduct(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var product models.Product
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// assignAdditiveGroups links the product to the given groups, validating that
// each group belongs to the restaurant. Writes the error response itself.
func assignAdditiveGroups(c *gin.Context, product *models.Product, groupIDs []uint, restaurantID uint) error {
	db := config.GetDB()

	for i, groupID := range groupIDs {
		var group models.AdditiveGroup
		if err := db.
			Where("restaurant_id = ?", restaurantID).
			First(&group, groupID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "GROUP_NOT_FOUND",
					"message": "Additive group not found",
				},
			})
			return err
		}

		link := models.ProductAdditiveGroup{
			ProductID:       product.ID,
			AdditiveGroupID: groupID,
			SortOrder:       i,
		}
		if err := db.Create(&link).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to link additive group",
				},
			})
			return err
		}
	}
	return nil
}
