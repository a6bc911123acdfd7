package utils

import (
	"time"

	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
	"gorm.io/gorm"
)

// CartItemDetail is one cart line priced against the live catalog.
type CartItemDetail struct {
	ProductID    uint
	Name         string
	ImageURL     string
	Price        float64
	Quantity     int
	ItemTotal    float64
	Stock        int
	PriceChanged bool
}

// CartDetails is the cart pricing view. It is recomputed from live product
// rows on every read; per-item totals cached on the cart are never trusted.
type CartDetails struct {
	Items           []CartItemDetail
	Subtotal        float64
	DiscountCode    string
	DiscountPercent int
	DiscountAmount  float64
	FinalTotal      float64
	Dropped         []string
}

// GetCartDetails loads the user's cart, drops lines whose product went
// inactive since being added, and applies the held discount code if it is
// still usable.
func GetCartDetails(db *gorm.DB, userID uint) (*CartDetails, error) {
	var cartItems []models.Cart
	if err := db.Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return nil, WrapError(err, "failed to fetch cart items")
	}

	var details CartDetails
	var lineItems []pricing.LineItem
	for _, item := range cartItems {
		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			continue
		}
		if !product.IsActive {
			details.Dropped = append(details.Dropped, product.Name)
			continue
		}

		itemTotal := pricing.Round2(product.Price * float64(item.Quantity))
		details.Items = append(details.Items, CartItemDetail{
			ProductID:    product.ID,
			Name:         product.Name,
			ImageURL:     product.ImageURL,
			Price:        product.Price,
			Quantity:     item.Quantity,
			ItemTotal:    itemTotal,
			Stock:        product.Stock,
			PriceChanged: product.Price != item.PriceAtAdd,
		})
		lineItems = append(lineItems, pricing.LineItem{Price: product.Price, Quantity: item.Quantity})
	}

	details.Subtotal = pricing.Subtotal(lineItems)

	// The held code stays available until settlement redeems it; here it is
	// only evaluated, never consumed.
	var held models.UserActiveCode
	if err := db.Where("user_id = ?", userID).First(&held).Error; err == nil {
		var code models.DiscountCode
		if err := db.Where("id = ?", held.CodeID).First(&code).Error; err == nil && code.Usable(time.Now()) {
			details.DiscountCode = code.Code
			details.DiscountPercent = code.Percent
			details.DiscountAmount = pricing.DiscountAmount(details.Subtotal, code.Percent)
		}
	}

	details.FinalTotal = pricing.Total(details.Subtotal, details.DiscountAmount)
	return &details, nil
}
