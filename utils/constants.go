package utils

// Application constants
const (
	// Application name
	AppName = "StoreLoop"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// Reward code prefix; generated codes look like SAVE-7GQ2-X9KD
	RewardCodePrefix = "SAVE"

	// Default reward interval (every Nth order mints a code)
	DefaultRewardInterval = 5

	// Default reward percent for minted codes
	DefaultRewardPercent = 10

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8
)

// Error messages
const (
	ErrInvalidCredentials = "Invalid email or password"
	ErrUserBlocked        = "Your account has been blocked"
	ErrUnauthorized       = "Unauthorized access"
	ErrInvalidEmail       = "Invalid email format"
	ErrInvalidPassword    = "Password must be at least 8 characters long and contain at least one uppercase letter, one lowercase letter, one number, and one special character"
	ErrInvalidPrice       = "Price must be greater than or equal to 0"
	ErrInvalidStock       = "Stock cannot be negative"
	ErrInvalidPercent     = "Percent must be between 1 and 100"
	ErrRecordNotFound     = "Record not found"
	ErrInternalServer     = "Internal server error"
)
