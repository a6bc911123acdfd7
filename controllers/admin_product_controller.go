package controllers

import (
	"strconv"

	"github.com/Naveen-512/StoreLoop/config"
	"github.com/Naveen-512/StoreLoop/models"
	"github.com/Naveen-512/StoreLoop/utils"
	"github.com/gin-gonic/gin"
)

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required"`
	Stock       int     `json:"stock"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	ImageURL    string  `json:"image_url"`
	SKU         string  `json:"sku" binding:"required"`
	IsFeatured  bool    `json:"is_featured"`
}

// UpdateProductRequest represents the request body for updating a product
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
	IsActive    *bool    `json:"is_active"`
	IsFeatured  *bool    `json:"is_featured"`
}

// AdminListProducts lists all products including inactive ones
func AdminListProducts(c *gin.Context) {
	utils.LogInfo("AdminListProducts called")

	page, limit := utils.GetPaginationParams(c)

	var total int64
	if err := config.DB.Model(&models.Product{}).Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count products", err.Error())
		return
	}

	var products []models.Product
	if err := config.DB.Preload("Category").Order("created_at DESC").
		Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Products retrieved successfully", products, total, page, limit)
}

// CreateProduct creates a new catalog item
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product create request: %v", err)
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	if err := utils.ValidatePrice(req.Price); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}
	if err := utils.ValidateStock(req.Stock); err != nil {
		utils.BadRequest(c, err.Error(), nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		ImageURL:    req.ImageURL,
		SKU:         req.SKU,
		IsActive:    true,
		IsFeatured:  req.IsFeatured,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}
	utils.LogInfo("Created product ID: %d", product.ID)

	utils.Created(c, "Product created successfully", product)
}

// UpdateProduct applies partial field updates to a product
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if err := utils.ValidatePrice(*req.Price); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		updates["price"] = *req.Price
	}
	if req.Stock != nil {
		if err := utils.ValidateStock(*req.Stock); err != nil {
			utils.BadRequest(c, err.Error(), nil)
			return
		}
		updates["stock"] = *req.Stock
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
		updates["category_id"] = *req.CategoryID
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.IsFeatured != nil {
		updates["is_featured"] = *req.IsFeatured
	}
	if len(updates) == 0 {
		utils.BadRequest(c, "No fields to update", nil)
		return
	}

	if err := config.DB.Model(&product).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}
	utils.LogInfo("Updated product ID: %d", product.ID)

	utils.Success(c, "Product updated successfully", product)
}

// DeleteProduct soft-deletes a product
func DeleteProduct(c *gin.Context) {
	utils.LogInfo("DeleteProduct called")

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, id).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if err := config.DB.Delete(&product).Error; err != nil {
		utils.LogError("Failed to delete product ID: %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to delete product", err.Error())
		return
	}
	utils.LogInfo("Deleted product ID: %d", product.ID)

	utils.Success(c, "Product deleted successfully", nil)
}
