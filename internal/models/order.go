package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus represents the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

// ShippingAddress represents the delivery address collected at checkout
type ShippingAddress struct {
	FullName   string `json:"fullName" gorm:"column:full_name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Street     string `json:"street"`
	City       string `json:"city"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode" gorm:"column:postal_code"`
	Country    string `json:"country"`
}

// Order represents a customer order
type Order struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderNumber     string          `json:"orderNumber" gorm:"not null;uniqueIndex"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'PENDING';index"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"not null;default:'PENDING';index"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentRef      *string         `json:"paymentRef,omitempty" gorm:"column:payment_ref"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:ship_"`
	ShippingZoneID  *uuid.UUID      `json:"shippingZoneId,omitempty" gorm:"type:uuid"`
	SubtotalGhs     float64         `json:"subtotalGhs" gorm:"not null;default:0"`
	ShippingGhs     float64         `json:"shippingGhs" gorm:"not null;default:0"`
	TotalGhs        float64         `json:"totalGhs" gorm:"not null;default:0"`
	Notes           *string         `json:"notes,omitempty"`
	Items           []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
	DeletedAt       *gorm.DeletedAt `json:"deletedAt,omitempty" gorm:"index"`
}

// OrderItem represents a line item on an order. Product name, variant value
// and unit price are denormalized at order time so later catalog edits do
// not rewrite order history.
type OrderItem struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID      uuid.UUID  `json:"orderId" gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID  `json:"productId" gorm:"type:uuid;not null;index"`
	VariantID    *uuid.UUID `json:"variantId,omitempty" gorm:"type:uuid"`
	ProductName  string     `json:"productName" gorm:"not null"`
	VariantValue *string    `json:"variantValue,omitempty"`
	UnitPriceGhs float64    `json:"unitPriceGhs" gorm:"not null"`
	Quantity     int        `json:"quantity" gorm:"not null"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// CheckoutItem represents one cart line submitted at checkout
type CheckoutItem struct {
	ProductID string  `json:"productId" binding:"required"`
	VariantID *string `json:"variantId,omitempty"`
	Quantity  int     `json:"quantity" binding:"required,min=1"`
}

// CheckoutRequest represents the checkout submission: address, shipping zone,
// payment method and cart lines
type CheckoutRequest struct {
	Address        ShippingAddress `json:"address" binding:"required"`
	ShippingZoneID string          `json:"shippingZoneId" binding:"required"`
	PaymentMethod  string          `json:"paymentMethod" binding:"required"`
	Items          []CheckoutItem  `json:"items" binding:"required,min=1,dive"`
	Notes          *string         `json:"notes,omitempty"`
	SuccessURL     *string         `json:"successUrl,omitempty"`
	CancelURL      *string         `json:"cancelUrl,omitempty"`
}

// CheckoutResponse is returned after an order is created. PaymentURL is set
// when the gateway returned a hosted payment page.
type CheckoutResponse struct {
	Success    bool    `json:"success"`
	Data       *Order  `json:"data"`
	PaymentURL *string `json:"paymentUrl,omitempty"`
	Message    *string `json:"message,omitempty"`
}

// UpdateOrderStatusRequest represents an admin order status change
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
	Notes  *string     `json:"notes,omitempty"`
}

type OrderResponse struct {
	Success bool    `json:"success"`
	Data    *Order  `json:"data"`
	Message *string `json:"message,omitempty"`
}

type OrderListResponse struct {
	Success    bool            `json:"success"`
	Data       []Order         `json:"data"`
	Pagination *PaginationInfo `json:"pagination"`
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// TableName returns the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}
