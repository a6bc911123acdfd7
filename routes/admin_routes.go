package routes

import (
	"github.com/Naveen-512/StoreLoop/controllers"
	"github.com/Naveen-512/StoreLoop/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the admin console routes
func initAdminRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.POST("/login", controllers.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuthMiddleware())
	{
		products := protected.Group("/products")
		{
			products.GET("", controllers.AdminListProducts)
			products.POST("", controllers.CreateProduct)
			products.PUT("/:id", controllers.UpdateProduct)
			products.DELETE("/:id", controllers.DeleteProduct)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", controllers.AdminListCategories)
			categories.POST("", controllers.CreateCategory)
			categories.PUT("/:id", controllers.UpdateCategory)
			categories.PATCH("/:id/block", controllers.BlockCategory)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", controllers.AdminListOrders)
			orders.GET("/:number", controllers.AdminGetOrderDetails)
			orders.PATCH("/:number/status", controllers.UpdateOrderStatus)
		}

		discounts := protected.Group("/discount-codes")
		{
			discounts.GET("", controllers.AdminListDiscountCodes)
			discounts.POST("", controllers.CreateDiscountCode)
			discounts.PATCH("/:id/disable", controllers.DisableDiscountCode)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("", controllers.GetStoreSettings)
			settings.PUT("", controllers.UpdateStoreSettings)
		}

		reports := protected.Group("/reports")
		{
			reports.GET("/sales", controllers.GetSalesReport)
			reports.GET("/sales/export", controllers.ExportSalesReport)
		}
	}
}
