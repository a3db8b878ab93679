package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/climbsoft/climb-delivery-api/models"
)

// OrderService turns submitted carts into persisted orders and applies status
// transitions. Transition legality lives in models.OrderStatus; this service
// adds the timestamps and persistence around it.
type OrderService struct {
	db *gorm.DB
}

// NewOrderService creates an order service on the given database
func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CustomerInfo carries the checkout form data accompanying a cart submission
type CustomerInfo struct {
	Name        string
	Phone       string
	Email       string
	Fulfillment models.FulfillmentType
	Street      string
	Number      string
	Complement  string
	District    string
	City        string
	State       string
	PostalCode  string
	Payment     models.PaymentMethod
	ChangeFor   *float64
	Note        string
}

func (info *CustomerInfo) validate() error {
	if strings.TrimSpace(info.Name) == "" {
		return models.NewValidationError("customer_name", "customer name is required")
	}
	if strings.TrimSpace(info.Phone) == "" {
		return models.NewValidationError("customer_phone", "customer phone is required")
	}
	if info.Fulfillment != models.FulfillmentDelivery && info.Fulfillment != models.FulfillmentPickup {
		return models.NewValidationError("fulfillment", "fulfillment must be 'delivery' or 'pickup'")
	}
	if !models.ValidPaymentMethod(string(info.Payment)) {
		return models.NewValidationError("payment", "unknown payment method")
	}
	if info.ChangeFor != nil && info.Payment != models.PaymentCash {
		return models.NewValidationError("change_for", "change amount only applies to cash payments")
	}
	if info.Fulfillment == models.FulfillmentDelivery {
		if strings.TrimSpace(info.Street) == "" || strings.TrimSpace(info.District) == "" || strings.TrimSpace(info.City) == "" {
			return models.NewValidationError("address", "street, district and city are required for delivery orders")
		}
	}
	return nil
}

// Submit creates an order from the session cart. The commit is pessimistic:
// the cart is only cleared after the order row is written, and a failed write
// leaves the cart intact for a retry. A submission already in flight for the
// same cart is rejected with ErrSubmitInFlight.
func (s *OrderService) Submit(restaurant models.Restaurant, cart *CartService, info CustomerInfo) (*models.Order, error) {
	if err := info.validate(); err != nil {
		return nil, err
	}
	if err := cart.BeginSubmit(); err != nil {
		return nil, err
	}

	snapshot := cart.Cart()
	order := models.Order{
		Number:        newOrderNumber(),
		RestaurantID:  restaurant.ID,
		CustomerName:  info.Name,
		CustomerPhone: info.Phone,
		CustomerEmail: info.Email,
		Fulfillment:   info.Fulfillment,
		Street:        info.Street,
		AddressNumber: info.Number,
		Complement:    info.Complement,
		District:      info.District,
		City:          info.City,
		State:         info.State,
		PostalCode:    info.PostalCode,
		Payment:       info.Payment,
		ChangeFor:     info.ChangeFor,
		Note:          info.Note,
		Subtotal:      snapshot.Subtotal,
		DeliveryFee:   snapshot.DeliveryFee,
		Total:         snapshot.Total,
		Status:        models.StatusPending,
		EstimatedMins: restaurant.AvgDeliveryMinutes,
		Items:         orderItemsFromCart(snapshot),
	}

	if err := s.db.Create(&order).Error; err != nil {
		cart.FinishSubmit(false)
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	cart.FinishSubmit(true)
	return &order, nil
}

// orderItemsFromCart freezes the cart lines into order items. Additive
// selections flatten to (additiveId, quantity=1) pairs; the owning group is
// re-derived from the additive id when needed, not stored.
func orderItemsFromCart(cart models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		item := models.OrderItem{
			ProductID:   line.Product.ProductID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.UnitPrice,
			Quantity:    line.Quantity,
			Note:        line.Note,
			LineTotal:   line.LineTotal,
		}
		for _, sel := range line.Selections {
			for _, a := range sel.Additives {
				item.Additives = append(item.Additives, models.OrderItemAdditive{
					AdditiveID:   a.AdditiveID,
					AdditiveName: a.Name,
					Price:        a.Price,
					Quantity:     1,
				})
			}
		}
		items = append(items, item)
	}
	return items
}

// newOrderNumber mints a short human-readable order code
func newOrderNumber() string {
	return "CD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Advance moves an order to the target status. Only the immediate successor
// in the fulfillment sequence is allowed, or cancelled from any non-terminal
// status; anything else fails with InvalidTransitionError. Cancelling
// requires a non-empty reason.
func (s *OrderService) Advance(orderID uint, target models.OrderStatus, reason string) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items.Additives").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("order", fmt.Sprint(orderID))
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if !order.Status.CanTransitionTo(target) {
		return nil, &models.InvalidTransitionError{From: order.Status, To: target}
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":     target,
		"updated_at": now,
	}

	switch target {
	case models.StatusCancelled:
		if strings.TrimSpace(reason) == "" {
			return nil, models.NewValidationError("reason", "a cancellation reason is required")
		}
		updates["cancel_reason"] = reason
		updates["cancelled_at"] = now
	case models.StatusDelivered:
		updates["delivered_at"] = now
	}

	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	order.Status = target
	order.UpdatedAt = now
	if target == models.StatusCancelled {
		order.CancelReason = &reason
		order.CancelledAt = &now
	}
	if target == models.StatusDelivered {
		order.DeliveredAt = &now
	}
	return &order, nil
}

// BoardColumnOrders is one populated column of the dashboard order board
type BoardColumnOrders struct {
	models.BoardColumn
	Orders []models.Order `json:"orders"`
}

// Board buckets the restaurant's open orders into the three display columns.
// The grouping is presentational only; it never affects transition legality.
func (s *OrderService) Board(restaurantID uint) ([]BoardColumnOrders, error) {
	columns := models.BoardColumns()

	statuses := make([]models.OrderStatus, 0, 5)
	for _, col := range columns {
		statuses = append(statuses, col.Statuses...)
	}

	var orders []models.Order
	if err := s.db.
		Preload("Items.Additives").
		Where("restaurant_id = ? AND status IN ?", restaurantID, statuses).
		Order("created_at asc").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to load board orders: %w", err)
	}

	board := make([]BoardColumnOrders, len(columns))
	for i, col := range columns {
		board[i] = BoardColumnOrders{BoardColumn: col, Orders: []models.Order{}}
		for _, o := range orders {
			if col.Contains(o.Status) {
				board[i].Orders = append(board[i].Orders, o)
			}
		}
	}
	return board, nil
}

// StatusCount is one slice of the summary's status breakdown
type StatusCount struct {
	Status  models.OrderStatus `json:"status"`
	Count   int64              `json:"count"`
	Percent float64            `json:"percent"`
}

// ProductSales aggregates one product's sales over the summary period
type ProductSales struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int64   `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

// OrdersSummary is the reports screen payload: order and revenue totals for a
// date range, a per-status breakdown and the best-selling products
type OrdersSummary struct {
	PeriodStart   time.Time      `json:"period_start"`
	PeriodEnd     time.Time      `json:"period_end"`
	TotalOrders   int64          `json:"total_orders"`
	TotalRevenue  float64        `json:"total_revenue"`
	AverageTicket float64        `json:"average_ticket"`
	ByStatus      []StatusCount  `json:"by_status"`
	TopProducts   []ProductSales `json:"top_products"`
}

// summaryMaxPeriod caps report ranges; longer spans belong in an export, not
// a dashboard widget
const summaryMaxPeriod = 31 * 24 * time.Hour

// Summary aggregates the restaurant's orders created in [start, end).
// Cancelled orders count in the status breakdown but not in revenue.
func (s *OrderService) Summary(restaurantID uint, start, end time.Time) (*OrdersSummary, error) {
	if !end.After(start) {
		return nil, models.NewValidationError("period", "end must be after start")
	}
	if end.Sub(start) > summaryMaxPeriod {
		return nil, models.NewValidationError("period", "period cannot exceed 31 days")
	}

	inPeriod := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("restaurant_id = ? AND created_at >= ? AND created_at < ?",
			restaurantID, start, end)
	}

	var statusRows []StatusCount
	if err := s.db.Model(&models.Order{}).Scopes(inPeriod).
		Select("status, count(*) as count").
		Group("status").
		Find(&statusRows).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}

	var totalOrders int64
	for _, row := range statusRows {
		totalOrders += row.Count
	}
	for i := range statusRows {
		statusRows[i].Percent = float64(statusRows[i].Count) / float64(totalOrders) * 100
	}

	var revenue struct {
		Revenue float64
		Orders  int64
	}
	if err := s.db.Model(&models.Order{}).Scopes(inPeriod).
		Select("coalesce(sum(total), 0) as revenue, count(*) as orders").
		Where("status <> ?", models.StatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, fmt.Errorf("failed to sum revenue: %w", err)
	}

	averageTicket := 0.0
	if revenue.Orders > 0 {
		averageTicket = revenue.Revenue / float64(revenue.Orders)
	}

	var topProducts []ProductSales
	if err := s.db.Model(&models.OrderItem{}).
		Select("order_items.product_id as product_id, order_items.product_name as name, "+
			"sum(order_items.quantity) as quantity, sum(order_items.line_total) as revenue").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.restaurant_id = ? AND orders.created_at >= ? AND orders.created_at < ? AND orders.status <> ?",
			restaurantID, start, end, models.StatusCancelled).
		Group("order_items.product_id, order_items.product_name").
		Order("quantity desc").
		Limit(5).
		Scan(&topProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to rank products: %w", err)
	}

	summary := &OrdersSummary{
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalOrders:   totalOrders,
		TotalRevenue:  revenue.Revenue,
		AverageTicket: averageTicket,
		ByStatus:      statusRows,
		TopProducts:   topProducts,
	}
	if summary.ByStatus == nil {
		summary.ByStatus = []StatusCount{}
	}
	if summary.TopProducts == nil {
		summary.TopProducts = []ProductSales{}
	}
	return summary, nil
}
