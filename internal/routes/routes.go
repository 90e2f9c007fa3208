package routes

import (
	"github.com/gin-gonic/gin"

	"celta_back_end/internal/handlers"
	"celta_back_end/internal/middleware"
)

func RegisterRoutes(r *gin.Engine) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/products", handlers.GetProducts)
		api.POST("/products", handlers.CreateProduct)
		api.PUT("/products/:id", handlers.UpdateProduct)
		api.DELETE("/products/:id", handlers.DeleteProduct)

		api.POST("/sales", handlers.CreateSale)
		api.GET("/sales", handlers.GetSaleHistory)

		api.GET("/reports", handlers.GetReport)
		api.GET("/metrics", handlers.GetMetrics)

		api.GET("/notifications", handlers.GetNotifications)
		api.POST("/notifications/read", handlers.MarkNotificationsRead)

		api.GET("/profile", handlers.GetProfile)
		api.PUT("/profile", handlers.UpdateProfile)
		api.GET("/settings", handlers.GetSettings)
		api.PUT("/settings", handlers.UpdateSettings)

		api.POST("/admin/reset", handlers.ResetAllData)
		api.POST("/admin/clean-tracking", handlers.CleanTrackingData)
	}
}
