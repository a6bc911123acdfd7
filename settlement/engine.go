package settlement

import (
	"context"
	"time"

	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
	"github.com/Naveen-512/StoreLoop/utils"
)

// Engine performs order settlement against a Store.
type Engine struct {
	store Store

	// Now and GenerateCode exist so tests can pin the clock and the minted
	// code value.
	Now          func() time.Time
	GenerateCode func() string
}

// NewEngine creates a settlement engine with production defaults.
func NewEngine(store Store) *Engine {
	return &Engine{
		store:        store,
		Now:          time.Now,
		GenerateCode: utils.GenerateDiscountCode,
	}
}

// Settle records a paid order and applies all of its side effects, exactly
// once per payment proof. The cart, prices and discount are re-derived from
// the store; nothing client-supplied beyond the user, address and proof is
// trusted. On any failure the transaction rolls back whole.
func (e *Engine) Settle(ctx context.Context, userID, addressID uint, proof PaymentProof) (*Result, error) {
	var result Result
	err := e.store.Transaction(ctx, func(tx Store) error {
		// Duplicate webhook deliveries resolve to the first settlement.
		existing, err := tx.OrderByPaymentRef(ctx, proof.PaymentID)
		if err != nil {
			return err
		}
		if existing != nil {
			result.Order = existing
			result.Replayed = true
			return nil
		}

		lines, err := tx.CartLines(ctx, userID)
		if err != nil {
			return err
		}
		lines = purchasable(lines)
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		now := e.Now()
		items := make([]pricing.LineItem, 0, len(lines))
		for _, line := range lines {
			items = append(items, pricing.LineItem{Price: line.Price, Quantity: line.Quantity})
		}
		subtotal := pricing.Subtotal(items)

		code, err := tx.HeldCode(ctx, userID)
		if err != nil {
			return err
		}
		var discountAmount float64
		var discountPercent int
		var discountCode string
		if code != nil {
			if code.Used {
				return ErrCodeRedeemed
			}
			if !code.Usable(now) {
				return ErrCodeExpired
			}
			discountPercent = code.Percent
			discountCode = code.Code
			discountAmount = pricing.DiscountAmount(subtotal, code.Percent)
		}
		total := pricing.Total(subtotal, discountAmount)

		// Never trust the client-echoed amount: the gateway-confirmed charge
		// must equal what this cart costs right now.
		if pricing.Paise(total) != proof.AmountPaise {
			return ErrAmountMismatch
		}

		// Re-check stock before decrementing; the conditional update below
		// is the authoritative guard under concurrency.
		for _, line := range lines {
			if line.Stock < line.Quantity {
				return ErrInsufficientStock
			}
		}

		number, err := tx.NextOrderNumber(ctx)
		if err != nil {
			return err
		}

		for _, line := range lines {
			if err := tx.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		order := &models.Order{
			Number:          number,
			UserID:          userID,
			AddressID:       addressID,
			Subtotal:        subtotal,
			DiscountCode:    discountCode,
			DiscountPercent: discountPercent,
			DiscountAmount:  discountAmount,
			Total:           total,
			PaymentMethod:   proof.Method,
			PaymentRef:      proof.PaymentID,
			RemoteOrderID:   proof.RemoteOrderID,
			PaymentStatus:   models.PaymentStatusCompleted,
			Status:          models.OrderStatusProcessing,
			OrderItems:      snapshot(lines),
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}

		if code != nil {
			if err := tx.RedeemCode(ctx, code.ID, userID, number, now); err != nil {
				return err
			}
		}

		if err := tx.ClearCart(ctx, userID); err != nil {
			return err
		}

		settings, err := tx.Settings(ctx)
		if err != nil {
			return err
		}
		if settings.RewardInterval >= 1 && number%settings.RewardInterval == 0 {
			reward := &models.DiscountCode{
				Code:              e.GenerateCode(),
				Percent:           settings.RewardPercent,
				SourceOrderNumber: number,
				Active:            true,
			}
			if settings.CodeExpiryDays > 0 {
				expiry := now.AddDate(0, 0, settings.CodeExpiryDays)
				reward.ExpiresAt = &expiry
			}
			if err := tx.CreateCode(ctx, reward); err != nil {
				return err
			}
			result.RewardCode = reward
		}

		result.Order = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// purchasable drops lines whose product has been deactivated since it was
// added to the cart.
func purchasable(lines []Line) []Line {
	kept := lines[:0]
	for _, line := range lines {
		if line.Active {
			kept = append(kept, line)
		}
	}
	return kept
}

// snapshot denormalizes the lines into immutable order items so later
// catalog edits cannot alter historical orders.
func snapshot(lines []Line) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Total:     pricing.Round2(line.Price * float64(line.Quantity)),
		})
	}
	return items
}
