// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires all API routes
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	SetupStorefrontRoutes(rg, db, redisClient, cfg)
	SetupAdminRoutes(rg, db, redisClient, cfg)
}

// SetupStorefrontRoutes sets up the public shopper-facing routes. None of
// them require authentication; carts are tracked by session cookie.
func SetupStorefrontRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	rg.GET("/categories", categoryHandler.GetCategories)
	rg.GET("/payment-methods", paymentHandler.GetPaymentMethods)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/count", cartHandler.GetCartCount)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cart.DELETE("", cartHandler.ClearCart)
	}

	checkout := rg.Group("/checkout")
	{
		checkout.GET("/shipping-methods", checkoutHandler.GetShippingMethods)
		checkout.GET("/summary", checkoutHandler.GetSummary)
		checkout.POST("/voucher", checkoutHandler.ApplyVoucher)
		checkout.DELETE("/voucher", checkoutHandler.RemoveVoucher)
		checkout.POST("/validate", checkoutHandler.ValidateCheckout)
	}

	rg.POST("/orders", orderHandler.PlaceOrder)
	rg.GET("/orders/:number", orderHandler.GetOrderByNumber)
}

// SetupAdminRoutes sets up the password-gated admin panel routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(cfg)
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, redisClient, cfg)
	paymentHandler := handlers.NewPaymentHandler(db, cfg)
	voucherHandler := handlers.NewVoucherHandler(db, cfg)

	admin := rg.Group("/admin")

	admin.POST("/login", authHandler.AdminLogin)

	protected := admin.Group("")
	protected.Use(middleware.AdminAuth(cfg))
	{
		products := protected.Group("/products")
		{
			products.GET("", productHandler.AdminGetProducts)
			products.POST("", productHandler.AdminCreateProduct)
			products.PUT("/:id", productHandler.AdminUpdateProduct)
			products.PUT("/:id/stock", productHandler.AdminUpdateStock)
			products.DELETE("/:id", productHandler.AdminDeleteProduct)
		}

		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.AdminGetCategories)
			categories.POST("", categoryHandler.AdminCreateCategory)
			categories.PUT("/:id", categoryHandler.AdminUpdateCategory)
			categories.DELETE("/:id", categoryHandler.AdminDeleteCategory)
		}

		orders := protected.Group("/orders")
		{
			orders.GET("", orderHandler.AdminGetOrders)
			orders.GET("/:id", orderHandler.AdminGetOrder)
			orders.GET("/:id/invoice", orderHandler.AdminDownloadInvoice)
			orders.PUT("/:id/status", orderHandler.AdminUpdateOrderStatus)
		}

		paymentMethods := protected.Group("/payment-methods")
		{
			paymentMethods.GET("", paymentHandler.AdminGetPaymentMethods)
			paymentMethods.POST("", paymentHandler.AdminCreatePaymentMethod)
			paymentMethods.PUT("/:id", paymentHandler.AdminUpdatePaymentMethod)
			paymentMethods.DELETE("/:id", paymentHandler.AdminDeletePaymentMethod)
		}

		vouchers := protected.Group("/vouchers")
		{
			vouchers.GET("", voucherHandler.AdminGetVouchers)
			vouchers.GET("/:id", voucherHandler.AdminGetVoucher)
			vouchers.POST("", voucherHandler.AdminCreateVoucher)
			vouchers.PUT("/:id", voucherHandler.AdminUpdateVoucher)
			vouchers.DELETE("/:id", voucherHandler.AdminDeleteVoucher)
		}
	}
}
