package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDiscountCodeIsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, (&DiscountCode{}).IsExpired(now), "nil expiry never expires")
	assert.True(t, (&DiscountCode{ExpiresAt: &past}).IsExpired(now))
	assert.False(t, (&DiscountCode{ExpiresAt: &future}).IsExpired(now))
	assert.True(t, (&DiscountCode{ExpiresAt: &now}).IsExpired(now), "expiry instant counts as expired")
}

func TestDiscountCodeUsable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)

	assert.True(t, (&DiscountCode{Active: true}).Usable(now))
	assert.True(t, (&DiscountCode{Active: true, ExpiresAt: &future}).Usable(now))
	assert.False(t, (&DiscountCode{Active: true, Used: true}).Usable(now))
	assert.False(t, (&DiscountCode{Active: false}).Usable(now))

	past := now.Add(-time.Hour)
	assert.False(t, (&DiscountCode{Active: true, ExpiresAt: &past}).Usable(now))
}
