package controllers

import (
	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AddToCartRequest represents the request body for adding to the cart
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// AddToCart adds a product to the user's cart or bumps its quantity
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add-to-cart request for user ID: %d: %v", user.ID, err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.LogError("Product not found, ID: %d", req.ProductID)
		utils.NotFound(c, "Product not found")
		return
	}
	if !product.IsActive {
		utils.BadRequest(c, "Product is not available for purchase", nil)
		return
	}

	var cartItem models.Cart
	err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&cartItem).Error
	switch {
	case err == nil:
		newQty := cartItem.Quantity + req.Quantity
		if product.Stock < newQty {
			utils.LogError("Insufficient stock for product ID: %d, requested: %d, available: %d", product.ID, newQty, product.Stock)
			utils.Conflict(c, "Not enough stock for the requested quantity", gin.H{"available": product.Stock})
			return
		}
		if err := config.DB.Model(&cartItem).UpdateColumn("quantity", newQty).Error; err != nil {
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
	case err == gorm.ErrRecordNotFound:
		if product.Stock < req.Quantity {
			utils.Conflict(c, "Not enough stock for the requested quantity", gin.H{"available": product.Stock})
			return
		}
		cartItem = models.Cart{
			UserID:     user.ID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			PriceAtAdd: product.Price,
		}
		if err := config.DB.Create(&cartItem).Error; err != nil {
			utils.LogError("Failed to add to cart for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to add to cart", err.Error())
			return
		}
	default:
		utils.InternalServerError(c, "Failed to read cart", err.Error())
		return
	}
	utils.LogInfo("Cart updated for user ID: %d, product ID: %d", user.ID, req.ProductID)

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Product added to cart", cartResponse(details))
}
