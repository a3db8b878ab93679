package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/climbsoft/climb-delivery-api/models"
)

func TestUpdateOrderStatus_Advance(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	order := seedOrder(t, db, restaurant.ID, "CD-AAA1", models.StatusPending)

	req := jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
		"status": "confirmed",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())
	data := decodeEnvelope(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "confirmed", data["status"])

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateOrderStatus_IllegalTransition(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	order := seedOrder(t, db, restaurant.ID, "CD-AAA1", models.StatusPending)

	// skipping straight to ready is rejected
	req := jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
		"status": "ready",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errorData := decodeEnvelope(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_TRANSITION", errorData["code"])
	details := errorData["details"].(map[string]interface{})
	assert.Equal(t, "pending", details["current_status"])
	assert.Equal(t, "ready", details["requested_status"])

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestUpdateOrderStatus_Cancel(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	order := seedOrder(t, db, restaurant.ID, "CD-AAA1", models.StatusPreparing)

	// cancelling without a reason is a validation error
	req := jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
		"status": "cancelled",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w)["error"].(map[string]interface{})["code"])

	req = jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
		"status": "cancelled",
		"reason": "kitchen out of stock",
	}, "")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.StatusCancelled, stored.Status)
	require.NotNil(t, stored.CancelReason)
	assert.Equal(t, "kitchen out of stock", *stored.CancelReason)
	require.NotNil(t, stored.CancelledAt)
}

func TestUpdateOrderStatus_BadRequests(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	order := seedOrder(t, db, restaurant.ID, "CD-AAA1", models.StatusPending)

	// non-numeric id
	req := jsonRequest(t, http.MethodPut, "/orders/abc/status", map[string]interface{}{
		"status": "confirmed",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown status
	req = jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), map[string]interface{}{
		"status": "shipped",
	}, "")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing body
	req = jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", order.ID), nil, "")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderStatus_ForeignOrder(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	foreign := seedOrder(t, db, restaurant.ID+1, "CD-BBB1", models.StatusPending)

	req := jsonRequest(t, http.MethodPut, fmt.Sprintf("/orders/%d/status", foreign.ID), map[string]interface{}{
		"status": "confirmed",
	}, "")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrderBoard(t *testing.T) {
	db := setupPublicTestDB(t)
	restaurant := seedMenu(t, db)
	user := seedDashboardUser(t, db, restaurant.ID)
	router := newDashboardRouter(user)

	seedOrder(t, db, restaurant.ID, "CD-NEW1", models.StatusPending)
	seedOrder(t, db, restaurant.ID, "CD-PROG1", models.StatusConfirmed)
	seedOrder(t, db, restaurant.ID, "CD-PROG2", models.StatusPreparing)
	seedOrder(t, db, restaurant.ID, "CD-RDY1", models.StatusOutForDelivery)
	seedOrder(t, db, restaurant.ID, "CD-DONE1", models.StatusDelivered)

	req := httptest.NewRequest(http.MethodGet, "/orders/board", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())
	board := decodeEnvelope(t, w)["data"].([]interface{})
	require.Len(t, board, 3)

	newCol := board[0].(map[string]interface{})
	assert.Equal(t, "New", newCol["title"])
	assert.Len(t, newCol["orders"], 1)

	progressCol := board[1].(map[string]interface{})
	assert.Equal(t, "In Progress", progressCol["title"])
	assert.Len(t, progressCol["orders"], 2)

	readyCol := board[2].(map[string]interface{})
	assert.Equal(t, "Ready", readyCol["title"])
	assert.Len(t, readyCol["orders"], 1)
}
