package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/middleware"
	"github.com/climbsoft/climb-delivery-api/models"
)

// respondServiceError maps the domain error taxonomy onto the API envelope.
// Validation problems are 400, missing resources 404, illegal status
// transitions and selection limits 422, a submission already in flight 409.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	var notFoundErr *models.NotFoundError
	var transitionErr *models.InvalidTransitionError
	var limitErr *models.SelectionLimitError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": validationErr.Error(),
			},
		})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NOT_FOUND",
				"message": notFoundErr.Error(),
			},
		})
	case errors.As(err, &transitionErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_TRANSITION",
				"message": transitionErr.Error(),
				"details": gin.H{
					"current_status":   transitionErr.From,
					"requested_status": transitionErr.To,
				},
			},
		})
	case errors.As(err, &limitErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SELECTION_LIMIT_REACHED",
				"message": limitErr.Error(),
			},
		})
	case errors.Is(err, models.ErrSubmitInFlight):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SUBMIT_IN_FLIGHT",
				"message": err.Error(),
			},
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Something went wrong",
			},
		})
	}
}

// currentDashboardUser resolves the authenticated dashboard user. Owners and
// staff must be linked to a restaurant; admins pass through unbound. It writes
// the error response and returns false when the request cannot proceed.
func currentDashboardUser(c *gin.Context) (models.User, bool) {
	auth0ID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Could not extract user information",
			},
		})
		return models.User{}, false
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
		return models.User{}, false
	}

	if user.RestaurantID == nil && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "NO_RESTAURANT",
				"message": "User is not linked to a restaurant",
			},
		})
		return models.User{}, false
	}

	return user, true
}

// currentRestaurant resolves the restaurant a dashboard request operates on.
// Owners and staff act on the restaurant they are linked to; platform admins
// carry no binding and name one with the restaurant_id query parameter. It
// writes the error response and returns false when no restaurant can be
// resolved.
func currentRestaurant(c *gin.Context) (uint, bool) {
	user, ok := currentDashboardUser(c)
	if !ok {
		return 0, false
	}

	if user.RestaurantID != nil {
		return *user.RestaurantID, true
	}

	restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESTAURANT_REQUIRED",
				"message": "Admin requests must name a restaurant via the restaurant_id query parameter",
			},
		})
		return 0, false
	}

	return uint(restaurantID), true
}

// findRestaurantBySlug loads an active restaurant for the public routes. It
// writes the error response and returns false when the slug is unknown.
func findRestaurantBySlug(c *gin.Context) (models.Restaurant, bool) {
	slug := c.Param("slug")

	db := config.GetDB()
	var restaurant models.Restaurant
	if err := db.Where("slug = ? AND active = ?", slug, true).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "RESTAURANT_NOT_FOUND",
				"message": "Restaurant not found",
			},
		})
		return models.Restaurant{}, false
	}

	return restaurant, true
}
