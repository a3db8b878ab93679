package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climbsoft/climb-delivery-api/models"
)

func TestGetPublicMenu(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	router, _ := newPublicRouter()

	// an unavailable product must not appear on the menu
	require.NoError(t, db.Create(&models.Product{
		RestaurantID: restaurant.ID,
		CategoryID:   1,
		Name:         "Sold Out Special",
		Price:        30.0,
		Available:    false,
	}).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/burger-house/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	data := decodeEnvelope(t, w)["data"].(map[string]interface{})

	info := data["restaurant"].(map[string]interface{})
	assert.Equal(t, "burger-house", info["slug"])
	assert.Equal(t, "Burger House", info["trade_name"])
	assert.Equal(t, 5.0, info["delivery_fee"])

	categories := data["categories"].([]interface{})
	require.Len(t, categories, 1)

	products := categories[0].(map[string]interface{})["products"].([]interface{})
	require.Len(t, products, 2, "unavailable products are hidden")

	var burger map[string]interface{}
	for _, p := range products {
		if p.(map[string]interface{})["name"] == "Burger" {
			burger = p.(map[string]interface{})
		}
	}
	require.NotNil(t, burger)

	groups := burger["additive_groups"].([]interface{})
	require.Len(t, groups, 2)

	first := groups[0].(map[string]interface{})["additive_group"].(map[string]interface{})
	assert.Equal(t, "Size", first["name"])
	assert.Equal(t, "single", first["mode"])
	assert.Equal(t, true, first["required"])
	assert.Len(t, first["additives"], 2)

	second := groups[1].(map[string]interface{})["additive_group"].(map[string]interface{})
	assert.Equal(t, "Extras", second["name"])
	assert.Equal(t, "multiple", second["mode"])
	assert.Equal(t, 2.0, second["max_select"])
}

func TestGetPublicMenu_UnknownSlug(t *testing.T) {
	db := setupPublicTestDB(t)
	seedMenu(t, db)
	router, _ := newPublicRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/nowhere/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPublicMenu_InactiveRestaurant(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	router, _ := newPublicRouter()

	require.NoError(t, db.Model(&models.Restaurant{}).
		Where("id = ?", restaurant.ID).
		Update("active", false).Error)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/public/burger-house/menu", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
