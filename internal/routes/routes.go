package routes

import (
	"github.com/gin-gonic/gin"

	"novashop_back_end/internal/handlers/ai"
	"novashop_back_end/internal/handlers/order"
	"novashop_back_end/internal/handlers/product"
	"novashop_back_end/internal/handlers/user"
	"novashop_back_end/internal/middleware"
)

// RegisterRoutes branche toutes les routes de l'API
func RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ---------- PRODUITS ----------
	products := api.Group("/products")
	{
		products.GET("", product.GetProducts)
		products.GET("/featured", product.GetFeaturedProducts)
		products.GET("/categories", product.GetCategories)
		products.GET("/:id", product.GetProduct)
		products.GET("/:id/image-url", product.GetImageURL)

		admin := products.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			admin.POST("", product.CreateProduct)
			admin.PUT("/:id", product.UpdateProduct)
			admin.DELETE("/:id", product.DeleteProduct)
			admin.POST("/:id/image", product.UploadImage)
		}
	}

	// ---------- UTILISATEURS ----------
	users := api.Group("/users")
	{
		users.POST("/register", user.Register)
		users.POST("/login", user.Login)

		auth := users.Group("", middleware.AuthRequired())
		{
			auth.GET("/profile", user.GetProfile)
			auth.PUT("/preferences", user.UpdatePreferences)
			auth.POST("/history", user.AddBrowsingHistory)
			auth.POST("/wishlist/:productId", user.AddToWishlist)
			auth.DELETE("/wishlist/:productId", user.RemoveFromWishlist)
		}

		users.GET("", middleware.AuthRequired(), middleware.RequireAdmin, user.GetUsers)
	}

	// ---------- PANIER ----------
	cart := api.Group("/cart", middleware.AuthRequired())
	{
		cart.GET("", user.GetCart)
		cart.POST("/add", user.AddToCart)
		cart.DELETE("/clear", user.ClearCart)
		cart.DELETE("/:productId", user.RemoveFromCart)
		cart.GET("/ws", user.CartWebSocket)
	}

	// ---------- COMMANDES ----------
	orders := api.Group("/orders")
	{
		orders.POST("", order.CreateOrder)
		orders.GET("/myorders/:userId", order.GetMyOrders)
		orders.GET("/:id", order.GetOrderByID)
		orders.GET("/:id/invoice", middleware.AuthRequired(), order.GetOrderInvoice)

		admin := orders.Group("", middleware.AuthRequired(), middleware.RequireAdmin)
		{
			admin.GET("", order.GetAllOrders)
			admin.PUT("/:id/status", order.UpdateOrderStatus)
			admin.GET("/stats/summary", order.GetOrderStats)
		}
	}

	// ---------- IA ----------
	aiGroup := api.Group("/ai")
	{
		aiGroup.GET("/recommendations", ai.GetRecommendations)
		aiGroup.GET("/recommendations/:userId", ai.GetRecommendations)
		aiGroup.GET("/similar/:productId", ai.GetSimilarProducts)
		aiGroup.GET("/search", ai.SearchProducts)
		aiGroup.GET("/insights", middleware.AuthRequired(), middleware.RequireAdmin, ai.GetInsights)
	}
}
