package models

import (
	"time"

	"gorm.io/gorm"
)

// Cart holds one pending line per user and product. PriceAtAdd captures the
// catalog price when the item entered the cart; the pricing view always
// recomputes against the live price, PriceAtAdd only feeds the "price
// changed" hint in cart responses.
type Cart struct {
	gorm.Model
	UserID     uint    `json:"user_id" gorm:"uniqueIndex:idx_cart_user_product"`
	User       User    `gorm:"foreignKey:UserID" json:"user"`
	ProductID  uint    `json:"product_id" gorm:"uniqueIndex:idx_cart_user_product"`
	Product    Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity   int     `json:"quantity" gorm:"check:quantity >= 1"`
	PriceAtAdd float64 `json:"price_at_add"`
}

// UserActiveCode tracks the discount code currently held on a user's cart.
// Holding a code does not consume it; the code stays available until the
// settlement transaction redeems it.
type UserActiveCode struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `json:"user_id" gorm:"uniqueIndex"`
	CodeID    uint      `json:"code_id"`
	Code      string    `json:"code"`
	AppliedAt time.Time `json:"applied_at"`
}
