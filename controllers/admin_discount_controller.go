package controllers

import (
	"strconv"
	"time"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// AdminListDiscountCodes lists all codes, reward-minted and manual alike
func AdminListDiscountCodes(c *gin.Context) {
	utils.LogInfo("AdminListDiscountCodes called")

	page, limit := utils.GetPaginationParams(c)

	query := config.DB.Model(&models.DiscountCode{})
	switch c.Query("state") {
	case "used":
		query = query.Where("used = ?", true)
	case "unused":
		query = query.Where("used = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count discount codes", err.Error())
		return
	}

	var codes []models.DiscountCode
	if err := query.Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&codes).Error; err != nil {
		utils.LogError("Failed to fetch discount codes: %v", err)
		utils.InternalServerError(c, "Failed to fetch discount codes", err.Error())
		return
	}

	now := time.Now()
	items := make([]gin.H, 0, len(codes))
	for _, code := range codes {
		items = append(items, gin.H{
			"id":                  code.ID,
			"code":                code.Code,
			"percent":             code.Percent,
			"used":                code.Used,
			"used_order_number":   code.UsedOrderNumber,
			"source_order_number": code.SourceOrderNumber,
			"expires_at":          code.ExpiresAt,
			"active":              code.Active,
			"is_valid":            code.Usable(now),
			"created_at":          code.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Discount codes retrieved successfully", items, total, page, limit)
}

// CreateDiscountCodeRequest represents the request body for a manual code
type CreateDiscountCodeRequest struct {
	Percent    int `json:"percent" binding:"required"`
	ExpiryDays int `json:"expiry_days"`
}

// CreateDiscountCode mints a manual code outside the reward scheme
func CreateDiscountCode(c *gin.Context) {
	utils.LogInfo("CreateDiscountCode called")

	var req CreateDiscountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}
	if err := utils.ValidatePercent(req.Percent); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if req.ExpiryDays < 0 {
		utils.BadRequest(c, "Expiry days cannot be negative", nil)
		return
	}

	code := models.DiscountCode{
		Code:    utils.GenerateDiscountCode(),
		Percent: req.Percent,
		Active:  true,
	}
	if req.ExpiryDays > 0 {
		expiry := time.Now().AddDate(0, 0, req.ExpiryDays)
		code.ExpiresAt = &expiry
	}

	if err := config.DB.Create(&code).Error; err != nil {
		utils.LogError("Failed to create discount code: %v", err)
		utils.InternalServerError(c, "Failed to create discount code", err.Error())
		return
	}
	utils.LogInfo("Created manual discount code %s (%d%%)", code.Code, code.Percent)

	utils.Created(c, "Discount code created", code)
}

// DisableDiscountCode deactivates an unused code so it can no longer be applied
func DisableDiscountCode(c *gin.Context) {
	utils.LogInfo("DisableDiscountCode called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid discount code ID", nil)
		return
	}

	var code models.DiscountCode
	if err := config.DB.First(&code, id).Error; err != nil {
		utils.NotFound(c, "Discount code not found")
		return
	}
	if code.Used {
		utils.Conflict(c, "Discount code has already been redeemed", nil)
		return
	}
	if !code.Active {
		utils.Success(c, "Discount code is already disabled", nil)
		return
	}

	if err := config.DB.Model(&code).UpdateColumn("active", false).Error; err != nil {
		utils.InternalServerError(c, "Failed to disable discount code", err.Error())
		return
	}
	utils.LogInfo("Disabled discount code %s", code.Code)

	utils.Success(c, "Discount code disabled", nil)
}
