package routes

import (
	"github.com/Naveen-512/StoreLoop/controllers"
	"github.com/Naveen-512/StoreLoop/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers the storefront routes
func initUserRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", controllers.RegisterUser)
		auth.POST("/login", controllers.LoginUser)
	}

	// Catalog is public; no auth required to browse.
	rg.GET("/products", controllers.GetProducts)
	rg.GET("/products/:id", controllers.GetProductDetails)
	rg.GET("/categories", controllers.ListCategories)

	user := rg.Group("")
	user.Use(middleware.AuthMiddleware())
	{
		cart := user.Group("/cart")
		{
			cart.GET("", controllers.GetCart)
			cart.POST("/items", controllers.AddToCart)
			cart.PUT("/items", controllers.UpdateCart)
			cart.DELETE("/items", controllers.RemoveFromCart)
			cart.DELETE("", controllers.ClearCart)
			cart.POST("/discount", controllers.ApplyDiscountCode)
			cart.DELETE("/discount", controllers.RemoveDiscountCode)
		}

		addresses := user.Group("/addresses")
		{
			addresses.GET("", controllers.ListAddresses)
			addresses.POST("", controllers.AddAddress)
			addresses.DELETE("/:id", controllers.DeleteAddress)
		}

		checkout := user.Group("/checkout")
		{
			checkout.GET("", controllers.GetCheckoutSummary)
			checkout.POST("/payment", controllers.InitiateRazorpayPayment)
			checkout.POST("/payment/verify", controllers.VerifyRazorpayPayment)
		}

		orders := user.Group("/orders")
		{
			orders.GET("", controllers.ListOrders)
			orders.GET("/:number", controllers.GetOrderDetails)
			orders.GET("/:number/invoice", controllers.DownloadInvoice)
		}
	}
}
