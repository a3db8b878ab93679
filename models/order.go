package models

import (
	"time"

	"gorm.io/gorm"
)

// FulfillmentType says whether the customer wants the order delivered or will pick it up
type FulfillmentType string

const (
	FulfillmentDelivery FulfillmentType = "delivery"
	FulfillmentPickup   FulfillmentType = "pickup"
)

// PaymentMethod is how the customer pays on fulfillment
type PaymentMethod string

const (
	PaymentCash       PaymentMethod = "cash"
	PaymentDebitCard  PaymentMethod = "debit_card"
	PaymentCreditCard PaymentMethod = "credit_card"
	PaymentPix        PaymentMethod = "pix"
)

// ValidPaymentMethod reports whether raw is a known payment method
func ValidPaymentMethod(raw string) bool {
	switch PaymentMethod(raw) {
	case PaymentCash, PaymentDebitCard, PaymentCreditCard, PaymentPix:
		return true
	}
	return false
}

// Order is a submitted cart snapshot plus customer identity, payment method
// and fulfillment status. Monetary fields are frozen at submission time.
type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	Number        string          `gorm:"uniqueIndex;not null" json:"number"`
	RestaurantID  uint            `gorm:"not null;index" json:"restaurant_id"`
	CustomerName  string          `gorm:"not null" json:"customer_name"`
	CustomerPhone string          `gorm:"not null" json:"customer_phone"`
	CustomerEmail string          `json:"customer_email"`
	Fulfillment   FulfillmentType `gorm:"not null" json:"fulfillment"`
	Street        string          `json:"street"`
	AddressNumber string          `json:"address_number"`
	Complement    string          `json:"complement"`
	District      string          `json:"district"`
	City          string          `json:"city"`
	State         string          `json:"state"`
	PostalCode    string          `json:"postal_code"`
	Payment       PaymentMethod   `gorm:"not null" json:"payment"`
	ChangeFor     *float64        `json:"change_for"` // cash orders only: bill the customer pays with
	Note          string          `json:"note"`
	Subtotal      float64         `gorm:"not null" json:"subtotal"`
	DeliveryFee   float64         `gorm:"not null" json:"delivery_fee"`
	Total         float64         `gorm:"not null" json:"total"`
	Status        OrderStatus     `gorm:"not null;default:'pending'" json:"status"`
	CancelReason  *string         `json:"cancel_reason,omitempty"`
	EstimatedMins int             `json:"estimated_mins"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of a submitted order, with the product name and unit
// price snapshotted at submission time
type OrderItem struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	OrderID     uint                `gorm:"not null;index" json:"order_id"`
	ProductID   uint                `gorm:"not null" json:"product_id"`
	ProductName string              `gorm:"not null" json:"product_name"`
	UnitPrice   float64             `gorm:"not null" json:"unit_price"`
	Quantity    int                 `gorm:"not null;check:quantity > 0" json:"quantity"`
	Note        string              `json:"note"`
	LineTotal   float64             `gorm:"not null" json:"line_total"`
	Additives   []OrderItemAdditive `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE" json:"additives,omitempty"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// OrderItemAdditive records one selected additive on an order item. Quantity
// is always 1 on the wire; the owning group is re-derived from the additive id
// server-side rather than sent explicitly.
type OrderItemAdditive struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	OrderItemID  uint    `gorm:"not null;index" json:"order_item_id"`
	AdditiveID   uint    `gorm:"not null" json:"additive_id"`
	AdditiveName string  `gorm:"not null" json:"additive_name"`
	Price        float64 `gorm:"not null" json:"price"`
	Quantity     int     `gorm:"not null;default:1" json:"quantity"`
}

// TableName specifies the table name for the OrderItemAdditive model
func (OrderItemAdditive) TableName() string {
	return "order_item_additives"
}
