package model

import (
	"time"

	"github.com/emmaeryne/amjednamoussa/constant"
)

// CartItemRequest is one storefront cart line. Product name and price are
// snapshotted into the order item at submission time.
type CartItemRequest struct {
	ProductID   *uint64 `json:"product_id,omitempty"`
	ProductName string  `json:"product_name" validate:"required,max=200"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Quantity    int     `json:"quantity" validate:"required,gt=0"`
	Size        string  `json:"size,omitempty" validate:"max=50"`
	Color       string  `json:"color,omitempty" validate:"max=50"`
}

// CreateOrderRequest for order submission
type CreateOrderRequest struct {
	CustomerName    string            `json:"customer_name"`
	CustomerEmail   string            `json:"customer_email"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	CustomerCity    string            `json:"customer_city"`
	Notes           string            `json:"notes,omitempty"`
	Items           []CartItemRequest `json:"items"`
	PromoCode       string            `json:"promo_code,omitempty"`
	DiscountAmount  float64           `json:"discount_amount,omitempty"`
}

// Order represents the `order` table entity
type Order struct {
	ID              string               `db:"id" json:"id"`
	CustomerName    string               `db:"customer_name" json:"customer_name"`
	CustomerEmail   string               `db:"customer_email" json:"customer_email"`
	CustomerPhone   string               `db:"customer_phone" json:"customer_phone"`
	CustomerAddress string               `db:"customer_address" json:"customer_address"`
	CustomerCity    string               `db:"customer_city" json:"customer_city"`
	Notes           *string              `db:"notes" json:"notes,omitempty"`
	TotalAmount     float64              `db:"total_amount" json:"total_amount"`
	DeliveryFee     float64              `db:"delivery_fee" json:"delivery_fee"`
	DiscountAmount  float64              `db:"discount_amount" json:"discount_amount"`
	PromoCode       *string              `db:"promo_code" json:"promo_code"`
	Status          constant.OrderStatus `db:"status" json:"status"`
	PaymentMethod   string               `db:"payment_method" json:"payment_method"`
	CreatedAt       time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time           `db:"updated_at" json:"updated_at,omitempty"`
}

// OrderItem is an immutable snapshot of a product at order time, decoupled from
// the live product record so historical orders survive product edits and deletes.
type OrderItem struct {
	ID           uint64    `db:"id" json:"id"`
	OrderID      string    `db:"order_id" json:"order_id"`
	ProductID    *uint64   `db:"product_id" json:"product_id"`
	ProductName  string    `db:"product_name" json:"product_name"`
	ProductPrice float64   `db:"product_price" json:"product_price"`
	Quantity     int       `db:"quantity" json:"quantity"`
	Size         *string   `db:"size" json:"size"`
	Color        *string   `db:"color" json:"color"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// OrderWithItems is an order joined with its line items
type OrderWithItems struct {
	Order
	Items []OrderItem `json:"order_items"`
}

// UpdateOrderStatusRequest for admin status transitions
type UpdateOrderStatusRequest struct {
	Status constant.OrderStatus `json:"status" validate:"required"`
}

// InsertOrderTxItem carries the already validated and rounded order fields
// into the order repository.
type InsertOrderTxItem struct {
	ID              string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	CustomerCity    string
	Notes           *string
	TotalAmount     float64
	DeliveryFee     float64
	DiscountAmount  float64
	PromoCode       *string
	Status          constant.OrderStatus
	PaymentMethod   string
}
