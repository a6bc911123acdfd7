package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountCode is a single-use percentage coupon. Codes minted by the reward
// scheme carry the order number that generated them in SourceOrderNumber;
// admin-created codes leave it at zero.
type DiscountCode struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Code              string         `gorm:"uniqueIndex" json:"code"`
	Percent           int            `json:"percent" gorm:"check:percent >= 1 AND percent <= 100"`
	Used              bool           `json:"used" gorm:"default:false"`
	UsedByID          *uint          `json:"used_by_id,omitempty"`
	UsedAt            *time.Time     `json:"used_at,omitempty"`
	UsedOrderNumber   int64          `json:"used_order_number,omitempty"`
	SourceOrderNumber int64          `json:"source_order_number,omitempty"`
	ExpiresAt         *time.Time     `json:"expires_at,omitempty"`
	Active            bool           `json:"active" gorm:"default:true"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// IsExpired reports whether the code has passed its expiry. Codes without an
// expiry never expire. Expiry is evaluated lazily and never written back.
func (d *DiscountCode) IsExpired(now time.Time) bool {
	return d.ExpiresAt != nil && !now.Before(*d.ExpiresAt)
}

// Usable reports whether the code can still be applied or redeemed.
func (d *DiscountCode) Usable(now time.Time) bool {
	return d.Active && !d.Used && !d.IsExpired(now)
}
