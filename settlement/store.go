// Package settlement converts a verified payment confirmation into a durable
// order: it allocates the next order number, decrements stock, redeems the
// held discount code, clears the cart and mints the Nth-order reward code,
// all inside one store transaction.
package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/Naveen-512/StoreLoop/models"
)

var (
	// ErrEmptyCart is returned when the cart has no purchasable lines left.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInsufficientStock is returned when a line can no longer be covered
	// by the product's current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCodeRedeemed is returned when the held discount code was already
	// consumed, typically by a racing settlement.
	ErrCodeRedeemed = errors.New("discount code already redeemed")
	// ErrCodeExpired is returned when the held discount code expired or was
	// deactivated between checkout and payment confirmation.
	ErrCodeExpired = errors.New("discount code is no longer valid")
	// ErrAmountMismatch is returned when the amount the gateway confirmed
	// does not equal the server-recomputed order total.
	ErrAmountMismatch = errors.New("paid amount does not match order total")
)

// Line is a cart row joined with its live product.
type Line struct {
	ProductID uint
	Name      string
	ImageURL  string
	Price     float64
	Quantity  int
	Stock     int
	Active    bool
}

// PaymentProof is the verified outcome of a gateway payment. PaymentID is
// the idempotency key: the same proof settles at most once.
type PaymentProof struct {
	PaymentID     string
	RemoteOrderID string
	Method        string
	AmountPaise   int64
}

// Result is what a settlement returns to its caller. Replayed marks a
// duplicate proof that resolved to the previously settled order.
type Result struct {
	Order      *models.Order
	RewardCode *models.DiscountCode
	Replayed   bool
}

// Store is the persistence contract the engine runs against. Every method
// except Transaction is only called from inside a Transaction callback; the
// conditional updates (DecrementStock, RedeemCode, NextOrderNumber) must be
// atomic so two concurrent settlements cannot both pass the same guard.
type Store interface {
	// Transaction runs fn atomically: either every write fn performed is
	// persisted, or none are.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// OrderByPaymentRef returns the order settled with the given payment
	// reference, or (nil, nil) when no such order exists.
	OrderByPaymentRef(ctx context.Context, ref string) (*models.Order, error)

	// CartLines returns the user's cart joined with live product rows,
	// locked against concurrent settlement where the backend supports it.
	CartLines(ctx context.Context, userID uint) ([]Line, error)

	// HeldCode returns the discount code currently applied to the user's
	// cart, or (nil, nil) when none is held.
	HeldCode(ctx context.Context, userID uint) (*models.DiscountCode, error)

	// Settings returns the singleton store settings row.
	Settings(ctx context.Context) (*models.StoreSettings, error)

	// NextOrderNumber atomically increments the lifetime order counter and
	// returns the new value. Two callers never receive the same number.
	NextOrderNumber(ctx context.Context) (int64, error)

	// DecrementStock subtracts qty from the product's stock only if the
	// remaining stock covers it, in a single operation. Returns
	// ErrInsufficientStock when the guard fails.
	DecrementStock(ctx context.Context, productID uint, qty int) error

	// RedeemCode marks the code used only if it is currently unused, in a
	// single operation. Returns ErrCodeRedeemed when the guard fails.
	RedeemCode(ctx context.Context, codeID, userID uint, orderNumber int64, at time.Time) error

	CreateOrder(ctx context.Context, order *models.Order) error
	CreateCode(ctx context.Context, code *models.DiscountCode) error

	// ClearCart removes the user's cart lines and any held code reference.
	ClearCart(ctx context.Context, userID uint) error
}
