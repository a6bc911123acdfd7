package controllers

import (
	"fmt"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// cartResponse formats the cart pricing view for API responses
func cartResponse(details *utils.CartDetails) gin.H {
	items := make([]gin.H, 0, len(details.Items))
	for _, item := range details.Items {
		items = append(items, gin.H{
			"product_id":    item.ProductID,
			"name":          item.Name,
			"image_url":     item.ImageURL,
			"price":         fmt.Sprintf("%.2f", item.Price),
			"quantity":      item.Quantity,
			"item_total":    fmt.Sprintf("%.2f", item.ItemTotal),
			"in_stock":      item.Stock >= item.Quantity,
			"price_changed": item.PriceChanged,
		})
	}
	return gin.H{
		"items":            items,
		"subtotal":         fmt.Sprintf("%.2f", details.Subtotal),
		"discount_code":    details.DiscountCode,
		"discount_percent": details.DiscountPercent,
		"discount_amount":  fmt.Sprintf("%.2f", details.DiscountAmount),
		"final_total":      fmt.Sprintf("%.2f", details.FinalTotal),
		"dropped_items":    details.Dropped,
	}
}

// GetCart returns the user's cart priced against the live catalog
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.LogError("Failed to get cart details for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}

	utils.Success(c, "Cart retrieved successfully", cartResponse(details))
}

// UpdateCartRequest represents the request body for changing a line quantity
type UpdateCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCart sets the quantity of an existing cart line
func UpdateCart(c *gin.Context) {
	utils.LogInfo("UpdateCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req UpdateCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var cartItem models.Cart
	if err := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).First(&cartItem).Error; err != nil {
		utils.NotFound(c, "Item not in cart")
		return
	}

	var product models.Product
	if err := config.DB.First(&product, req.ProductID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}
	if product.Stock < req.Quantity {
		utils.Conflict(c, "Not enough stock for the requested quantity", gin.H{"available": product.Stock})
		return
	}

	if err := config.DB.Model(&cartItem).UpdateColumn("quantity", req.Quantity).Error; err != nil {
		utils.InternalServerError(c, "Failed to update cart", err.Error())
		return
	}
	utils.LogInfo("Updated cart quantity for user ID: %d, product ID: %d", user.ID, req.ProductID)

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Cart updated successfully", cartResponse(details))
}

// RemoveFromCart deletes one line from the cart
func RemoveFromCart(c *gin.Context) {
	utils.LogInfo("RemoveFromCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	res := config.DB.Where("user_id = ? AND product_id = ?", user.ID, req.ProductID).Delete(&models.Cart{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to remove item", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Item not in cart")
		return
	}

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Item removed from cart", cartResponse(details))
}

// ClearCart empties the cart and drops any held discount code
func ClearCart(c *gin.Context) {
	utils.LogInfo("ClearCart called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.Cart{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}
	if err := config.DB.Where("user_id = ?", user.ID).Delete(&models.UserActiveCode{}).Error; err != nil {
		utils.InternalServerError(c, "Failed to clear held discount code", err.Error())
		return
	}
	utils.LogInfo("Cleared cart for user ID: %d", user.ID)

	utils.Success(c, "Cart cleared", nil)
}
