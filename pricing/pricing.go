// Package pricing holds the order-total arithmetic. The same functions quote
// a checkout and re-verify the charged amount at settlement, so nothing in
// here touches the database or the clock.
package pricing

import "math"

// LineItem is the minimal shape the calculations need.
type LineItem struct {
	Price    float64
	Quantity int
}

// Round2 rounds to two decimals, half away from zero at the 2-decimal
// boundary. All monetary values in the system pass through this.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// Subtotal sums price x quantity over all items. An empty list yields 0.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return Round2(sum)
}

// DiscountAmount computes a percentage discount on a subtotal, rounded to
// two decimals. Percent must already be validated to [0,100] by the caller.
func DiscountAmount(subtotal float64, percent int) float64 {
	return Round2(subtotal * float64(percent) / 100)
}

// Paise converts a rupee amount to integer paise, the unit the payment
// gateway charges and confirms in.
func Paise(v float64) int64 {
	return int64(math.Round(v * 100))
}

// Total is the amount due after the discount. Because the discount is at
// most 100% of the subtotal it can never go negative, but clamp anyway so a
// bad caller surfaces as a zero total rather than a negative charge.
func Total(subtotal, discountAmount float64) float64 {
	total := Round2(subtotal - discountAmount)
	if total < 0 {
		return 0
	}
	return total
}
