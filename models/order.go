package models

import (
	"time"
)

// Order status constants
const (
	OrderStatusProcessing = "Processing"
	OrderStatusShipped    = "Shipped"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

// Payment status constants
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusRefunded  = "refunded"
)

// Order is the immutable settlement record. Items, pricing and the payment
// reference are fixed at settlement; only Status may change afterwards.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	Number          int64       `gorm:"uniqueIndex;not null" json:"number"`
	UserID          uint        `json:"user_id"`
	User            User        `json:"user" gorm:"foreignKey:UserID"`
	AddressID       uint        `json:"address_id"`
	Address         Address     `json:"address" gorm:"foreignKey:AddressID"`
	Subtotal        float64     `json:"subtotal"`
	DiscountCode    string      `json:"discount_code,omitempty"`
	DiscountPercent int         `json:"discount_percent,omitempty"`
	DiscountAmount  float64     `json:"discount_amount"`
	Total           float64     `json:"total"`
	PaymentMethod   string      `json:"payment_method"`
	PaymentRef      string      `gorm:"uniqueIndex" json:"payment_ref"`
	RemoteOrderID   string      `json:"remote_order_id,omitempty"`
	PaymentStatus   string      `json:"payment_status"`
	Status          string      `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	OrderItems      []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem snapshots a purchased line. Name, price and image are copied
// from the product at purchase time so later catalog edits leave historical
// orders untouched.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `json:"order_id"`
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Total     float64 `json:"total"`
}
