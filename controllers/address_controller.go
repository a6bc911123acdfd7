package controllers

import (
	"strconv"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// AddressRequest represents the request body for address create/update
type AddressRequest struct {
	Line1      string `json:"line1" binding:"required"`
	Line2      string `json:"line2"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state" binding:"required"`
	Country    string `json:"country" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	IsDefault  bool   `json:"is_default"`
}

// ListAddresses returns the user's saved shipping addresses
func ListAddresses(c *gin.Context) {
	utils.LogInfo("ListAddresses called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Order("is_default DESC, created_at DESC").Find(&addresses).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}

	utils.Success(c, "Addresses retrieved successfully", addresses)
}

// AddAddress saves a new shipping address for the user
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	address := models.Address{
		UserID:     user.ID,
		Line1:      req.Line1,
		Line2:      req.Line2,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		IsDefault:  req.IsDefault,
	}
	if req.IsDefault {
		if err := config.DB.Model(&models.Address{}).Where("user_id = ?", user.ID).
			UpdateColumn("is_default", false).Error; err != nil {
			utils.InternalServerError(c, "Failed to save address", err.Error())
			return
		}
	}
	if err := config.DB.Create(&address).Error; err != nil {
		utils.LogError("Failed to create address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to save address", err.Error())
		return
	}

	utils.Created(c, "Address saved successfully", address)
}

// DeleteAddress removes one of the user's addresses
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid address ID", nil)
		return
	}

	res := config.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Address{})
	if res.Error != nil {
		utils.InternalServerError(c, "Failed to delete address", res.Error.Error())
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Address not found")
		return
	}

	utils.Success(c, "Address deleted successfully", nil)
}
