package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/climbsoft/climb-delivery-api/config"
	"github.com/climbsoft/climb-delivery-api/models"
	"github.com/climbsoft/climb-delivery-api/services"
)

// SessionHeader carries the ordering session id. The server mints one on the
// first cart request and echoes it on every response; the client sends it back
// so a page refresh finds the persisted cart again.
const SessionHeader = "X-Cart-Session"

// cartSession resolves the cart service for the request's session, minting a
// session id when the client has none yet
func cartSession(c *gin.Context) *services.CartService {
	manager := services.GetCartManager()

	sessionID := c.GetHeader(SessionHeader)
	if sessionID == "" {
		sessionID = manager.NewSessionID()
	}
	c.Header(SessionHeader, sessionID)

	return manager.Session(sessionID)
}

// GetCart handles GET /api/v1/public/:slug/cart - returns the session cart
func GetCart(c *gin.Context) {
	if _, ok := findRestaurantBySlug(c); !ok {
		return
	}

	cart := cartSession(c).Cart()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cart,
	})
}

// AddCartLineRequest represents the request body for adding a line to the cart
type AddCartLineRequest struct {
	ProductID   uint   `json:"product_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required"`
	Note        string `json:"note"`
	AdditiveIDs []uint `json:"additive_ids"`
}

// AddCartLine handles POST /api/v1/public/:slug/cart/lines - adds one product
// line with its additive selections to the session cart
func AddCartLine(c *gin.Context) {
	restaurant, ok := findRestaurantBySlug(c)
	if !ok {
		return
	}

	var req AddCartLineRequest
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
	var product models.Product
	if err := db.
		Where("restaurant_id = ?", restaurant.ID).
		Preload("AdditiveGroups.AdditiveGroup.Additives").
		First(&product, req.ProductID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "PRODUCT_NOT_FOUND",
				"message": "Product not found",
			},
		})
		return
	}

	// Deactivated groups and additives are hidden from the menu, so they must
	// not constrain or join the line either
	product.AdditiveGroups = activeAdditiveGroups(product.AdditiveGroups)

	// Replay the customer's picks through the line builder so the group rules
	// (single replaces, multiple is capped) are the ones that decide
	builder := services.NewLineBuilder(product)
	if err := builder.SetQuantity(req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}
	builder.SetNote(req.Note)

	for _, additiveID := range req.AdditiveIDs {
		groupID, found := groupForAdditive(product, additiveID)
		if !found {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ADDITIVE_NOT_FOUND",
					"message": "Additive does not belong to this product",
				},
			})
			return
		}
		if err := builder.Select(groupID, additiveID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	cartSvc := cartSession(c)
	line, err := cartSvc.AddLine(product, builder.Quantity(), builder.Selections(), builder.Note())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Keep the cart's delivery fee in sync with the restaurant's current fee
	if err := cartSvc.SetDeliveryFee(restaurant.DeliveryFee); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"line": line,
			"cart": cartSvc.Cart(),
		},
	})
}

// activeAdditiveGroups keeps only active groups and their active additives
func activeAdditiveGroups(groups []models.ProductAdditiveGroup) []models.ProductAdditiveGroup {
	var kept []models.ProductAdditiveGroup
	for _, pg := range groups {
		if !pg.AdditiveGroup.Active {
			continue
		}
		var additives []models.Additive
		for _, a := range pg.AdditiveGroup.Additives {
			if a.Active {
				additives = append(additives, a)
			}
		}
		pg.AdditiveGroup.Additives = additives
		kept = append(kept, pg)
	}
	return kept
}

// groupForAdditive re-derives the owning group of an additive from the
// product's groups; group membership is never sent by the client
func groupForAdditive(product models.Product, additiveID uint) (uint, bool) {
	for _, pg := range product.AdditiveGroups {
		for _, a := range pg.AdditiveGroup.Additives {
			if a.ID == additiveID {
				return pg.AdditiveGroupID, true
			}
		}
	}
	return 0, false
}

// UpdateCartLineRequest represents the request body for changing a line's quantity
type UpdateCartLineRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// UpdateCartLine handles PATCH /api/v1/public/:slug/cart/lines/:lineId
func UpdateCartLine(c *gin.Context) {
	if _, ok := findRestaurantBySlug(c); !ok {
		return
	}

	var req UpdateCartLineRequest
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
	if err := cartSvc.UpdateLineQuantity(c.Param("lineId"), req.Quantity); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSvc.Cart(),
	})
}

// RemoveCartLine handles DELETE /api/v1/public/:slug/cart/lines/:lineId
func RemoveCartLine(c *gin.Context) {
	if _, ok := findRestaurantBySlug(c); !ok {
		return
	}

	cartSvc := cartSession(c)
	if err := cartSvc.RemoveLine(c.Param("lineId")); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSvc.Cart(),
	})
}

// ClearCart handles DELETE /api/v1/public/:slug/cart
func ClearCart(c *gin.Context) {
	if _, ok := findRestaurantBySlug(c); !ok {
		return
	}

	cartSvc := cartSession(c)
	cartSvc.Clear()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cartSvc.Cart(),
	})
}
