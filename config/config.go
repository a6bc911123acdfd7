package config

import (
	"fmt"
	"os"

	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	JWTSecret      string
	RazorpayKey    string
	RazorpaySecret string
	Port           string
	Env            string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:         os.Getenv("DB_HOST"),
		DBPort:         os.Getenv("DB_PORT"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		RazorpayKey:    os.Getenv("RAZORPAY_KEY"),
		RazorpaySecret: os.Getenv("RAZORPAY_SECRET"),
		Port:           os.Getenv("PORT"),
		Env:            os.Getenv("ENV"),
	}

	return config, nil
}

// InitDB initializes the database connection
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	err = DB.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Category{},
		&models.Product{},
		&models.Address{},
		&models.Cart{},
		&models.UserActiveCode{},
		&models.DiscountCode{},
		&models.Order{},
		&models.OrderItem{},
		&models.StoreSettings{},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}

	ensureStoreSettings()
}

// ensureStoreSettings creates the singleton settings row on first boot so
// the settlement transaction always has a counter to increment.
func ensureStoreSettings() {
	var count int64
	if err := DB.Model(&models.StoreSettings{}).Count(&count).Error; err != nil {
		panic(fmt.Sprintf("Failed to check store settings: %v", err))
	}
	if count > 0 {
		return
	}
	settings := models.StoreSettings{
		RewardInterval: utils.DefaultRewardInterval,
		RewardPercent:  utils.DefaultRewardPercent,
	}
	if err := DB.Create(&settings).Error; err != nil {
		panic(fmt.Sprintf("Failed to create store settings: %v", err))
	}
}
