package controllers

import (
	"fmt"
	"strconv"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// statusTransitions defines which order status changes an admin may make
var statusTransitions = map[string][]string{
	models.OrderStatusProcessing: {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:    {models.OrderStatusDelivered},
}

// AdminListOrders lists all orders with optional status filtering
func AdminListOrders(c *gin.Context) {
	utils.LogInfo("AdminListOrders called")

	page, limit := utils.GetPaginationParams(c)
	status := c.Query("status")

	query := config.DB.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Preload("User").Order("number DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	items := make([]gin.H, 0, len(orders))
	for _, o := range orders {
		items = append(items, gin.H{
			"number":         o.Number,
			"user_email":     o.User.Email,
			"total":          fmt.Sprintf("%.2f", o.Total),
			"payment_status": o.PaymentStatus,
			"status":         o.Status,
			"created_at":     o.CreatedAt,
		})
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", items, total, page, limit)
}

// AdminGetOrderDetails returns any order with its item snapshot
func AdminGetOrderDetails(c *gin.Context) {
	utils.LogInfo("AdminGetOrderDetails called")

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid order number", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("OrderItems").Preload("User").Preload("Address").
		Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", order)
}

// UpdateOrderStatusRequest represents the request body for a status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order along the fulfilment flow
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")

	number, err := strconv.ParseInt(c.Param("number"), 10, 64)
	if err != nil {
		utils.BadRequest(c, "Invalid order number", nil)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.Where("number = ?", number).First(&order).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	allowed := false
	for _, next := range statusTransitions[order.Status] {
		if next == req.Status {
			allowed = true
			break
		}
	}
	if !allowed {
		utils.Conflict(c, fmt.Sprintf("Cannot move order from %s to %s", order.Status, req.Status), nil)
		return
	}

	if err := config.DB.Model(&order).UpdateColumn("status", req.Status).Error; err != nil {
		utils.LogError("Failed to update status for order #%d: %v", order.Number, err)
		utils.InternalServerError(c, "Failed to update order status", err.Error())
		return
	}
	utils.LogInfo("Order #%d moved to %s", order.Number, req.Status)

	utils.Success(c, "Order status updated", gin.H{
		"number": order.Number,
		"status": req.Status,
	})
}
