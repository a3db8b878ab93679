package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

// SubmitOrderRequest represents the checkout form accompanying a cart submission
type SubmitOrderRequest struct {
	CustomerName  string   `json:"customer_name" binding:"required"`
	CustomerPhone string   `json:"customer_phone" binding:"required"`
	CustomerEmail string   `json:"customer_email"`
	Fulfillment   string   `json:"fulfillment" binding:"required"`
	Street        string   `json:"street"`
	Number        string   `json:"number"`
	Complement    string   `json:"complement"`
	District      string   `json:"district"`
	City          string   `json:"city"`
	State         string   `json:"state"`
	PostalCode    string   `json:"postal_code"`
	Payment       string   `json:"payment" binding:"required"`
	ChangeFor     *float64 `json:"change_for"`
	Note          string   `json:"note"`
}

// SubmitOrder handles POST /api/v1/public/:slug/orders - submits the session
// cart as an order. The submit is pessimistic: the cart is cleared only after
// the order is stored, and a failure leaves it intact for a retry.
func SubmitOrder(c *gin.Context) {
	restaurant, ok := findRestaurantBySlug(c)
	if !ok {
		return
	}

	var req SubmitOrderRequest
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

	cartSvc := cartSession(c)
	orderService := services.NewOrderService(config.GetDB())

	order, err := orderService.Submit(restaurant, cartSvc, services.CustomerInfo{
		Name:        req.CustomerName,
		Phone:       req.CustomerPhone,
		Email:       req.CustomerEmail,
		Fulfillment: models.FulfillmentType(req.Fulfillment),
		Street:      req.Street,
		Number:      req.Number,
		Complement:  req.Complement,
		District:    req.District,
		City:        req.City,
		State:       req.State,
		PostalCode:  req.PostalCode,
		Payment:     models.PaymentMethod(req.Payment),
		ChangeFor:   req.ChangeFor,
		Note:        req.Note,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"id":             order.ID,
			"number":         order.Number,
			"status":         order.Status,
			"total":          order.Total,
			"estimated_mins": order.EstimatedMins,
			"created_at":     order.CreatedAt,
		},
	})
}

// GetPublicOrder handles GET /api/v1/public/:slug/orders/:id - order status
// for the customer's confirmation page
func GetPublicOrder(c *gin.Context) {
	restaurant, ok := findRestaurantBySlug(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.
		Where("restaurant_id = ?", restaurant.ID).
		Preload("Items.Additives").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListOrders handles GET /api/v1/orders - lists the restaurant's orders for
// the dashboard, optionally filtered by ?status=
func ListOrders(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	query := db.Where("restaurant_id = ?", restaurantID).
		Preload("Items.Additives").
		Order("created_at desc")

	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
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
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrdersSummary handles GET /api/v1/orders/summary - the reports screen
// totals for a date range. ?start= and ?end= take inclusive YYYY-MM-DD dates
// and default to the last seven days.
func GetOrdersSummary(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	end := time.Now()
	start := end.AddDate(0, 0, -7)

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "start must be a YYYY-MM-DD date",
				},
			})
			return
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "end must be a YYYY-MM-DD date",
				},
			})
			return
		}
		// inclusive end date: count orders through the end of that day
		end = parsed.AddDate(0, 0, 1)
	}

	summary, err := services.NewOrderService(config.GetDB()).Summary(restaurantID, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summary,
	})
}

// GetOrder handles GET /api/v1/orders/:id - one order for the dashboard detail modal
func GetOrder(c *gin.Context) {
	restaurantID, ok := currentRestaurant(c)
	if !ok {
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.
		Where("restaurant_id = ?", restaurantID).
		Preload("Items.Additives").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "ORDER_NOT_FOUND",
				"message": "Order not found",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
