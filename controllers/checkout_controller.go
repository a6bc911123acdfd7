package controllers

import (
	"fmt"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// GetCheckoutSummary returns the priced cart together with the user's saved
// addresses, which is everything the payment step needs.
func GetCheckoutSummary(c *gin.Context) {
	utils.LogInfo("GetCheckoutSummary called")

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
	if len(details.Items) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}

	for _, item := range details.Items {
		if item.Stock < item.Quantity {
			utils.Conflict(c, fmt.Sprintf("Not enough stock for %s", item.Name), gin.H{
				"product_id": item.ProductID,
				"available":  item.Stock,
			})
			return
		}
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}

	utils.Success(c, "Checkout summary retrieved successfully", gin.H{
		"cart":         cartResponse(details),
		"addresses":    addresses,
		"amount_paise": pricing.Paise(details.FinalTotal),
	})
}
