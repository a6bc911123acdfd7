package controllers

import (
	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// GetStoreSettings returns the reward scheme configuration and the lifetime
// order counter
func GetStoreSettings(c *gin.Context) {
	utils.LogInfo("GetStoreSettings called")

	var settings models.StoreSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.LogError("Failed to fetch store settings: %v", err)
		utils.InternalServerError(c, "Failed to fetch store settings", err.Error())
		return
	}

	utils.Success(c, "Store settings retrieved successfully", settings)
}

// UpdateStoreSettingsRequest represents the request body for settings changes
type UpdateStoreSettingsRequest struct {
	RewardInterval *int64 `json:"reward_interval"`
	RewardPercent  *int   `json:"reward_percent"`
	CodeExpiryDays *int   `json:"code_expiry_days"`
}

// UpdateStoreSettings changes the reward scheme configuration. The order
// counter is never writable from here; only settlement moves it.
func UpdateStoreSettings(c *gin.Context) {
	utils.LogInfo("UpdateStoreSettings called")

	var req UpdateStoreSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.RewardInterval != nil {
		if *req.RewardInterval < 1 {
			utils.BadRequest(c, "Reward interval must be at least 1", nil)
			return
		}
		updates["reward_interval"] = *req.RewardInterval
	}
	if req.RewardPercent != nil {
		if err := utils.ValidatePercent(*req.RewardPercent); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		updates["reward_percent"] = *req.RewardPercent
	}
	if req.CodeExpiryDays != nil {
		if *req.CodeExpiryDays < 0 {
			utils.BadRequest(c, "Code expiry days cannot be negative", nil)
			return
		}
		updates["code_expiry_days"] = *req.CodeExpiryDays
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	var settings models.StoreSettings
	if err := config.DB.First(&settings).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch store settings", err.Error())
		return
	}
	if err := config.DB.Model(&settings).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update store settings: %v", err)
		utils.InternalServerError(c, "Failed to update store settings", err.Error())
		return
	}
	utils.LogInfo("Store settings updated: %v", updates)

	utils.Success(c, "Store settings updated", settings)
}
