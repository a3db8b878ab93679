package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

// UpdateOrderStatusRequest represents the request body for a status transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status - advances an order
// along the fulfillment sequence or cancels it. Transition legality is
// enforced server-side; the dashboard may submit from a stale board.
func UpdateOrderStatus(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Order ID must be numeric",
			},
		})
		return
	}

	var req UpdateOrderStatusRequest
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

	target, err := models.ParseOrderStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Unknown order status",
			},
		})
		return
	}

	db := config.GetDB()

	// Scope the order to the user's restaurant before touching it
	var count int64
	db.Model(&models.Order{}).
		Where("id = ? AND restaurant_id = ?", orderID, restaurantID).
		Count(&count)
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	order, err := services.NewOrderService(db).Advance(uint(orderID), target, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderBoard handles GET /api/v1/orders/board - the restaurant's open
// orders bucketed into the three dashboard columns
func GetOrderBoard(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	board, err := services.NewOrderService(config.GetDB()).Board(restaurantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order board",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    board,
	})
}
