package utils

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail checks that an email address is well formed
func ValidateEmail(email string) bool {
	return emailRegex.MatchString(strings.TrimSpace(email))
}

// ValidatePassword enforces the password policy: length plus at least one
// uppercase, lowercase, digit and special character.
func ValidatePassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// ValidatePercent checks a discount percentage is within [1,100]
func ValidatePercent(percent int) error {
	if percent < 1 || percent > 100 {
		return fmt.Errorf("%s", ErrInvalidPercent)
	}
	return nil
}

// ValidatePrice checks a product price is non-negative
func ValidatePrice(price float64) error {
	if price < 0 {
		return fmt.Errorf("%s", ErrInvalidPrice)
	}
	return nil
}

// ValidateStock checks a stock quantity is non-negative
func ValidateStock(stock int) error {
	if stock < 0 {
		return fmt.Errorf("%s", ErrInvalidStock)
	}
	return nil
}
