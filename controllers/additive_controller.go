package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
)

// AdditiveGroupRequest represents the request body for creating or updating an
// additive group. Bounds are validated by the model: min <= max, and single
// mode forces a maximum of exactly one.
type AdditiveGroupRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Mode        string `json:"mode" binding:"required"`
	MinSelect   int    `json:"min_select"`
	MaxSelect   int    `json:"max_select"`
	Required    bool   `json:"required"`
	SortOrder   int    `json:"sort_order"`
	Active      *bool  `json:"active"`
}

func (req *AdditiveGroupRequest) apply(group *models.AdditiveGroup) {
	group.Name = req.Name
	group.Description = req.Description
	group.Mode = models.SelectionMode(req.Mode)
	group.MinSelect = req.MinSelect
	group.MaxSelect = req.MaxSelect
	group.Required = req.Required
	group.SortOrder = req.SortOrder
	if req.Active != nil {
		group.Active = *req.Active
	}
}

// ListAdditiveGroups handles GET /api/v1/additive-groups
func ListAdditiveGroups(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var groups []models.AdditiveGroup
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order asc").
		Preload("Additives").
		Find(&groups).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load additive groups",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    groups,
	})
}

// CreateAdditiveGroup handles POST /api/v1/additive-groups
func CreateAdditiveGroup(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	var req AdditiveGroupRequest
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

	group := models.AdditiveGroup{
		RestaurantID: restaurantID,
		Active:       true,
	}
	req.apply(&group)
	if group.Mode == models.SelectionSingle && req.MaxSelect == 0 {
		group.MaxSelect = 1
	}

	if err := group.ValidateBounds(); err != nil {
		respondServiceError(c, err)
		return
	}

	db := config.GetDB()
	if err := db.Create(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create additive group",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    group,
	})
}

// UpdateAdditiveGroup handles PUT /api/v1/additive-groups/:id
func UpdateAdditiveGroup(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var group models.AdditiveGroup
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&group, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GROUP_NOT_FOUND",
				"message": "Additive group not found",
			},
		})
		return
	}

	var req AdditiveGroupRequest
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

	req.apply(&group)
	if group.Mode == models.SelectionSingle && req.MaxSelect == 0 {
		group.MaxSelect = 1
	}

	if err := group.ValidateBounds(); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := db.Save(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update additive group",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    group,
	})
}

// DeleteAdditiveGroup handles DELETE /api/v1/additive-groups/:id - removes
// the group and, because additives are owned by their group, all of its
// additives with it
func DeleteAdditiveGroup(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var group models.AdditiveGroup
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&group, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GROUP_NOT_FOUND",
				"message": "Additive group not found",
			},
		})
		return
	}

	// Owned additives go with the group
	if err := db.Where("additive_group_id = ?", group.ID).Delete(&models.Additive{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete group additives",
			},
		})
		return
	}
	if err := db.Where("additive_group_id = ?", group.ID).Delete(&models.ProductAdditiveGroup{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to unlink group from products",
			},
		})
		return
	}
	if err := db.Delete(&group).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete additive group",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}

// AdditiveRequest represents the request body for creating or updating an additive
type AdditiveRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	SortOrder   int     `json:"sort_order"`
	Active      *bool   `json:"active"`
}

// CreateAdditive handles POST /api/v1/additive-groups/:id/additives
func CreateAdditive(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var group models.AdditiveGroup
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		First(&group, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "GROUP_NOT_FOUND",
				"message": "Additive group not found",
			},
		})
		return
	}

	var req AdditiveRequest
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
	if req.Price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Additive price cannot be negative",
			},
		})
		return
	}

	additive := models.Additive{
		AdditiveGroupID: group.ID,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		SortOrder:       req.SortOrder,
		Active:          true,
	}
	if req.Active != nil {
		additive.Active = *req.Active
	}

	if err := db.Create(&additive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create additive",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    additive,
	})
}

// UpdateAdditive handles PUT /api/v1/additives/:id
func UpdateAdditive(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var additive models.Additive
	if err := db.
		Joins("JOIN additive_groups ON additive_groups.id = additives.additive_group_id").
		Where("additive_groups.restaurant_id = ?", restaurantID).
		First(&additive, "additives.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADDITIVE_NOT_FOUND",
				"message": "Additive not found",
			},
		})
		return
	}

	var req AdditiveRequest
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

	additive.Name = req.Name
	additive.Description = req.Description
	additive.Price = req.Price
	additive.SortOrder = req.SortOrder
	if req.Active != nil {
		additive.Active = *req.Active
	}

	if err := db.Save(&additive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update additive",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    additive,
	})
}

// DeleteAdditive handles DELETE /api/v1/additives/:id
func DeleteAdditive(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var additive models.Additive
	if err := db.
		Joins("JOIN additive_groups ON additive_groups.id = additives.additive_group_id").
		Where("additive_groups.restaurant_id = ?", restaurantID).
		First(&additive, "additives.id = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ADDITIVE_NOT_FOUND",
				"message": "Additive not found",
			},
		})
		return
	}

	if err := db.Delete(&additive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete additive",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"deleted": true},
	})
}
