package controllers

import (
	"strconv"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// GetProducts lists active products with pagination and optional search
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	page, limit := utils.GetPaginationParams(c)
	search := c.Query("search")
	categoryID := c.Query("category_id")

	query := config.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	var products []models.Product
	if err := query.Preload("Category").
		Order("is_featured DESC, created_at DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	items := make([]gin.H, 0, len(products))
	for _, p := range products {
		items = append(items, gin.H{
			"id":        p.ID,
			"name":      p.Name,
			"price":     p.Price,
			"image_url": p.ImageURL,
			"category":  p.Category.Name,
			"in_stock":  p.Stock > 0,
		})
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", items, total, page, limit)
}

// GetProductDetails returns a single active product
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").Where("id = ? AND is_active = ?", id, true).First(&product).Error; err != nil {
		utils.LogError("Product not found, ID: %d", id)
		utils.NotFound(c, "Product not found")
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"id":          product.ID,
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"stock":       product.Stock,
		"image_url":   product.ImageURL,
		"category":    product.Category.Name,
		"sku":         product.SKU,
	})
}

// ListCategories lists unblocked categories
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")

	var categories []models.Category
	if err := config.DB.Where("blocked = ?", false).Order("name").Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.Success(c, "Categories retrieved successfully", categories)
}
