package controllers

import (
	"fmt"
	"strconv"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// ListOrders returns the user's order history, newest first
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	page, limit := utils.GetPaginationParams(c)

	var total int64
	if err := config.DB.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", err.Error())
		return
	}

	var orders []models.Order
	if err := config.DB.Where("user_id = ?", user.ID).Order("number DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items = append(items, gin.H{
			"number":     o.Number,
			"total":      fmt.Sprintf("%.2f", o.Total),
			"status":     o.Status,
			"created_at": o.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, page, limit)
}

// GetOrderDetails returns one of the user's orders with its item snapshot
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found")
		return
	}
	user := userVal.(models.User)

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid order number", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("Address").
		Where("number = ? AND user_id = ?", number, user.ID).First(&order).Error; err != nil {
		utils.LogError("Order #%d not found for user ID: %d", number, user.ID)
		utils.NotFound(c, "Order not found")
		return
	}

	items := make([]gin.H, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, gin.H{
			"product_id": item.ProductID,
			"name":       item.Name,
			"image_url":  item.ImageURL,
			"quantity":   item.Quantity,
			"price":      fmt.Sprintf("%.2f", item.Price),
			"total":      fmt.Sprintf("%.2f", item.Total),
		})
	}

	utils.Success(c, "Order retrieved successfully", gin.H{
		"number":           order.Number,
		"items":            items,
		"subtotal":         fmt.Sprintf("%.2f", order.Subtotal),
		"discount_code":    order.DiscountCode,
		"discount_percent": order.DiscountPercent,
		"discount_amount":  fmt.Sprintf("%.2f", order.DiscountAmount),
		"total":            fmt.Sprintf("%.2f", order.Total),
		"payment_method":   order.PaymentMethod,
		"payment_status":   order.PaymentStatus,
		"status":           order.Status,
		"address":          order.Address,
		"created_at":       order.CreatedAt,
	})
}
