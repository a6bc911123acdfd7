package controllers

import (
	"strings"
	"time"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplyDiscountRequest represents the request body for applying a code
type ApplyDiscountRequest struct {
	Code string `json:"code" binding:"required"`
}

// ApplyDiscountCode holds a discount code against the user's cart. The code
// is only evaluated here; it is consumed during settlement, so applying is
// fully reversible until payment completes.
func ApplyDiscountCode(c *gin.Context) {
	utils.LogInfo("ApplyDiscountCode called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	codeValue := strings.ToUpper(strings.TrimSpace(req.Code))
	if !utils.ValidDiscountCodeFormat(codeValue) {
		utils.BadRequest(c, "Invalid discount code format", nil)
		return
	}

	var cartCount int64
	if err := config.DB.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to read cart", err.Error())
		return
	}
	if cartCount == 0 {
		utils.BadRequest(c, "Cannot apply a discount code to an empty cart", nil)
		return
	}

	var code models.DiscountCode
	if err := config.DB.Where("code = ?", codeValue).First(&code).Error; err != nil {
		utils.LogError("Discount code not found: %s", codeValue)
		utils.NotFound(c, "Discount code not found")
		return
	}
	now := time.Now()
	if code.Used {
		utils.Conflict(c, "Discount code has already been redeemed", nil)
		return
	}
	if !code.Usable(now) {
		utils.BadRequest(c, "Discount code is expired or inactive", nil)
		return
	}

	// One held code per user: applying a new one replaces the old hold.
	var held models.UserActiveCode
	err := config.DB.Where("user_id = ?", user.ID).First(&held).Error
	switch {
	case err == nil:
		held.CodeID = code.ID
		held.Code = code.Code
		held.AppliedAt = now
		if err := config.DB.Save(&held).Error; err != nil {
			utils.InternalServerError(c, "Failed to apply discount code", err.Error())
			return
		}
	case err == gorm.ErrRecordNotFound:
		held = models.UserActiveCode{UserID: user.ID, CodeID: code.ID, Code: code.Code, AppliedAt: now}
		if err := config.DB.Create(&held).Error; err != nil {
			utils.InternalServerError(c, "Failed to apply discount code", err.Error())
			return
		}
	default:
		utils.InternalServerError(c, "Failed to apply discount code", err.Error())
		return
	}
	utils.LogInfo("Applied discount code %s for user ID: %d", code.Code, user.ID)

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Discount code applied", cartResponse(details))
}

// RemoveDiscountCode releases the held code without consuming it
func RemoveDiscountCode(c *gin.Context) {
	utils.LogInfo("RemoveDiscountCode called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	res := config.DB.Where("user_id = ?", user.ID).Delete(&models.UserActiveCode{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to remove discount code", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "No discount code applied")
		return
	}
	utils.LogInfo("Removed held discount code for user ID: %d", user.ID)

	details, err := utils.GetCartDetails(config.DB, user.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to get cart details", err.Error())
		return
	}
	utils.Success(c, "Discount code removed", cartResponse(details))
}
