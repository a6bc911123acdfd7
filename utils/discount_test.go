package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateDiscountCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateDiscountCode()
		assert.True(t, ValidDiscountCodeFormat(code), "bad code format: %s", code)
	}
}

func TestGeneratedCodesDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code := GenerateDiscountCode()
		assert.False(t, seen[code], "duplicate code generated: %s", code)
		seen[code] = true
	}
}

func TestValidDiscountCodeFormat(t *testing.T) {
	assert.True(t, ValidDiscountCodeFormat("SAVE-7GQ2-X9KD"))
	assert.False(t, ValidDiscountCodeFormat("SAVE-7gq2-X9KD"))
	assert.False(t, ValidDiscountCodeFormat("SAVE-7GQ2X9KD"))
	assert.False(t, ValidDiscountCodeFormat("GIFT-7GQ2-X9KD"))
	assert.False(t, ValidDiscountCodeFormat("SAVE-7GQ2-X9KD1"))
	assert.False(t, ValidDiscountCodeFormat(""))
}
