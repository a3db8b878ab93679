package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
)

// CategoryRequest represents the request body for creating or updating a category
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

// ListCategories handles GET /api/v1/categories - the restaurant's menu categories
func ListCategories(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var categories []models.Category
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order asc").
		Preload("Products").
		Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load categories",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    categories,
	})
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	var req CategoryRequest
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

	category := models.Category{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		SortOrder:    req.SortOrder,
	}

	db := config.GetDB()
	if err := db.Create(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create category",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    category,
	})
}

// UpdateCategory handles PUT /api/v1/categories/:id
func UpdateCategory(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	var req CategoryRequest
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

	category.Name = req.Name
	category.Description = req.Description
	category.SortOrder = req.SortOrder

	if err := db.Save(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    category,
	})
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func DeleteCategory(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var category models.Category
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_NOT_FOUND",
				"message": "Category not found",
			},
		})
		return
	}

	// Refuse to orphan products
	var productCount int64
	db.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount)
	if productCount > 0 {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "CATEGORY_IN_USE",
				"message": "Move or delete the category's products first",
			},
		})
		return
	}

	if err := db.Delete(&category).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete category",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
