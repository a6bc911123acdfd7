package controllers

import (
	"fmt"
	"time"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/pricing"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// salesWindow parses the optional from/to query params, defaulting to the
// last 30 days.
func salesWindow(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date: %s", v)
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date: %s", v)
		}
		// Include the whole closing day.
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// GetSalesReport summarises settled orders over a date window
func GetSalesReport(c *gin.Context) {
	utils.LogInfo("GetSalesReport called")

	from, to, err := salesWindow(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Where("created_at >= ? AND created_at < ?", from, to).
		Order("number").Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders for report: %v", err)
		utils.InternalServerError(c, "Failed to build sales report", err.Error())
		return
	}

	var gross, discount, net float64
	var discounted int
	for _, o := range orders {
		gross += o.Subtotal
		discount += o.DiscountAmount
		net += o.Total
		if o.DiscountAmount > 0 {
			discounted++
		}
	}

	utils.Success(c, "Sales report generated", gin.H{
		"from":              from.Format("2006-01-02"),
		"to":                to.AddDate(0, 0, -1).Format("2006-01-02"),
		"order_count":       len(orders),
		"discounted_orders": discounted,
		"gross_sales":       fmt.Sprintf("%.2f", pricing.Round2(gross)),
		"total_discount":    fmt.Sprintf("%.2f", pricing.Round2(discount)),
		"net_sales":         fmt.Sprintf("%.2f", pricing.Round2(net)),
	})
}

// ExportSalesReport downloads the same window as an xlsx spreadsheet
func ExportSalesReport(c *gin.Context) {
	utils.LogInfo("ExportSalesReport called")

	from, to, err := salesWindow(c)
	if err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var orders []models.Order
	if err := config.DB.Preload("User").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("number").Find(&orders).Error; err != nil {
		utils.InternalServerError(c, "Failed to build sales report", err.Error())
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Sales")
	if err != nil {
		utils.InternalServerError(c, "Failed to build spreadsheet", err.Error())
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"Order #", "Date", "Customer", "Subtotal", "Discount Code", "Discount", "Total", "Status"} {
		header.AddCell().SetString(title)
	}

	for _, o := range orders {
		row := sheet.AddRow()
		row.AddCell().SetInt64(o.Number)
		row.AddCell().SetString(o.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(o.User.Email)
		row.AddCell().SetFloat(o.Subtotal)
		row.AddCell().SetString(o.DiscountCode)
		row.AddCell().SetFloat(o.DiscountAmount)
		row.AddCell().SetFloat(o.Total)
		row.AddCell().SetString(o.Status)
	}

	filename := fmt.Sprintf("sales-%s-to-%s.xlsx", from.Format("20060102"), to.AddDate(0, 0, -1).Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write sales export: %v", err)
	}
}
