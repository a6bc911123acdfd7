package models

import (
	"time"
)

// StoreSettings is the singleton configuration row. TotalOrders doubles as
// the order-number sequence: it only moves forward, by exactly one, inside
// the settlement transaction.
type StoreSettings struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RewardInterval int64     `json:"reward_interval" gorm:"default:5;check:reward_interval >= 1"`
	RewardPercent  int       `json:"reward_percent" gorm:"default:10;check:reward_percent >= 1 AND reward_percent <= 100"`
	TotalOrders    int64     `json:"total_orders" gorm:"default:0"`
	CodeExpiryDays int       `json:"code_expiry_days" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
