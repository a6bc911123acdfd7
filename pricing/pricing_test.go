package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	assert.Equal(t, 0.0, Subtotal(nil))
	assert.Equal(t, 0.0, Subtotal([]LineItem{}))

	items := []LineItem{
		{Price: 299.50, Quantity: 2},
		{Price: 100, Quantity: 1},
	}
	assert.Equal(t, 699.0, Subtotal(items))
}

func TestDiscountAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		percent  int
		want     float64
	}{
		{"ten percent of 1000", 1000, 10, 100},
		{"ten percent of 333", 333, 10, 33.3},
		{"quarter of 500", 500, 25, 125},
		{"zero percent", 750.25, 0, 0},
		{"full discount", 420.69, 100, 420.69},
		{"rounds half up", 333.35, 10, 33.34},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountAmount(tt.subtotal, tt.percent))
		})
	}
}

func TestTotal(t *testing.T) {
	assert.Equal(t, 900.0, Total(1000, 100))
	assert.Equal(t, 0.0, Total(100, 100))
	// A discount larger than the subtotal cannot happen with percent <= 100,
	// but the clamp keeps a broken caller from charging a negative amount.
	assert.Equal(t, 0.0, Total(100, 150))
}

func TestTotalNeverNegativeAcrossPercents(t *testing.T) {
	subtotals := []float64{0, 0.01, 1, 99.99, 333, 1000, 123456.78}
	for _, s := range subtotals {
		for p := 0; p <= 100; p++ {
			d := DiscountAmount(s, p)
			total := Total(s, d)
			assert.GreaterOrEqual(t, total, 0.0, "subtotal %v percent %d", s, p)
			assert.InDelta(t, s-d, total, 0.0001)
		}
	}
}
