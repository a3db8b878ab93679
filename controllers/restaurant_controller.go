package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/middleware"
	"github.com/climbsoft/climb-delivery-api/models"
)

// RestaurantRequest represents the request body for creating or updating a restaurant
type RestaurantRequest struct {
	Slug               string  `json:"slug" binding:"required"`
	TradeName          string  `json:"trade_name" binding:"required"`
	LegalName          string  `json:"legal_name"`
	Phone              string  `json:"phone"`
	Whatsapp           string  `json:"whatsapp"`
	OpeningTime        string  `json:"opening_time"`
	ClosingTime        string  `json:"closing_time"`
	DeliveryFee        float64 `json:"delivery_fee"`
	AvgDeliveryMinutes int     `json:"avg_delivery_minutes"`
	Street             string  `json:"street"`
	Number             string  `json:"number"`
	District           string  `json:"district"`
	City               string  `json:"city"`
	State              string  `json:"state"`
	LogoS3Key          *string `json:"logo_s3_key"`
	Active             *bool   `json:"active"`
}

// CreateRestaurant handles POST /api/v1/restaurants - creates the restaurant
// and links the authenticated user to it as owner
func CreateRestaurant(c *gin.Context) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("auth0_id = ?", auth0ID).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "USER_NOT_FOUND",
				"message": "User profile not found. Please create a profile first.",
			},
		})
		return
	}

	if user.RestaurantID != nil {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ALREADY_LINKED",
				"message": "User is already linked to a restaurant",
			},
		})
		return
	}

	var req RestaurantRequest
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

	if req.DeliveryFee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Delivery fee cannot be negative",
			},
		})
		return
	}

	restaurant := models.Restaurant{
		Slug:               strings.ToLower(req.Slug),
		TradeName:          req.TradeName,
		LegalName:          req.LegalName,
		Phone:              req.Phone,
		Whatsapp:           req.Whatsapp,
		OpeningTime:        req.OpeningTime,
		ClosingTime:        req.ClosingTime,
		DeliveryFee:        req.DeliveryFee,
		AvgDeliveryMinutes: req.AvgDeliveryMinutes,
		Street:             req.Street,
		Number:             req.Number,
		District:           req.District,
		City:               req.City,
		State:              req.State,
		LogoS3Key:          req.LogoS3Key,
		Active:             true,
	}

	if err := db.Create(&restaurant).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_TAKEN",
					"message": "A restaurant with this slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create restaurant",
			},
		})
		return
	}

	// Link the creator as owner
	if err := db.Model(&user).Updates(map[string]interface{}{
		"restaurant_id": restaurant.ID,
		"role":          "owner",
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to link user to restaurant",
			},
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    restaurant,
	})
}

// GetMyRestaurant handles GET /api/v1/restaurants/me - the settings page payload
func GetMyRestaurant(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESTAURANT_NOT_FOUND",
				"message": "Restaurant not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    restaurant,
	})
}

// UpdateMyRestaurant handles PUT /api/v1/restaurants/me - updates settings
// (delivery fee, hours, contact, public link slug)
func UpdateMyRestaurant(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var restaurant models.Restaurant
	if err := db.First(&restaurant, restaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESTAURANT_NOT_FOUND",
				"message": "Restaurant not found",
			},
		})
		return
	}

	var req RestaurantRequest
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

	if req.DeliveryFee < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Delivery fee cannot be negative",
			},
		})
		return
	}

	restaurant.Slug = strings.ToLower(req.Slug)
	restaurant.TradeName = req.TradeName
	restaurant.LegalName = req.LegalName
	restaurant.Phone = req.Phone
	restaurant.Whatsapp = req.Whatsapp
	restaurant.OpeningTime = req.OpeningTime
	restaurant.ClosingTime = req.ClosingTime
	restaurant.DeliveryFee = req.DeliveryFee
	restaurant.AvgDeliveryMinutes = req.AvgDeliveryMinutes
	restaurant.Street = req.Street
	restaurant.Number = req.Number
	restaurant.District = req.District
	restaurant.City = req.City
	restaurant.State = req.State
	if req.LogoS3Key != nil {
		restaurant.LogoS3Key = req.LogoS3Key
	}
	if req.Active != nil {
		restaurant.Active = *req.Active
	}

	if err := db.Save(&restaurant).Error; err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "duplicate") || strings.Contains(errMsg, "unique") {
			c.JSON(http.StatusConflict, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "SLUG_TAKEN",
					"message": "A restaurant with this slug already exists",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update restaurant",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    restaurant,
	})
}

// ListRestaurants handles GET /api/v1/admin/restaurants - platform admin view
// of all tenants
func ListRestaurants(c *gin.Context) {
	user, ok := currentDashboardUser(c)
	if !ok {
		return
	}

	if user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Only platform admins can list restaurants",
			},
		})
		return
	}

	db := config.GetDB()
	var restaurants []models.Restaurant
	if err := db.Order("created_at asc").Find(&restaurants).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load restaurants",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    restaurants,
	})
}
