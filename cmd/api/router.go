package api

import (
	"net/http"

	"github.com/KumarShresth7/EmailAutomation/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := delivery.NewAuthHandler(h.authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		// Order routes (protected)
		orders := api.Group("/orders")
		orders.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			orders.GET("", h.orderHandler.GetOrders)
			orders.GET("/:id", h.orderHandler.GetOrderByID)
			orders.PUT("/status", h.orderHandler.UpdateStatus)
		}

		// Inventory routes (protected)
		inventory := api.Group("/inventory")
		inventory.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			inventory.GET("", h.inventoryHandler.GetInventory)
			inventory.POST("", h.inventoryHandler.AddItem)
			inventory.GET("/:id", h.inventoryHandler.GetItemByID)
			inventory.PUT("/:id", h.inventoryHandler.UpdateItem)
			inventory.DELETE("/:id", h.inventoryHandler.DeleteItem)
		}

		// Feedback routes (protected)
		feedback := api.Group("/feedback")
		feedback.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			feedback.GET("", h.feedbackHandler.GetFeedback)
		}

		// Analytics routes (protected)
		analytics := api.Group("/analytics")
		analytics.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			analytics.GET("/deadstocks", h.analyticsHandler.GetDeadstocks)
			analytics.GET("/urgent-restocking", h.analyticsHandler.GetUrgentRestocking)
			analytics.GET("/dynamic-pricing", h.analyticsHandler.GetPricingSuggestions)
		}

		// Chatbot routes (protected)
		chatbot := api.Group("/chatbot")
		chatbot.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			chatbot.POST("", h.chatbotHandler.Chat)
			chatbot.POST("/sync", h.chatbotHandler.Sync)
		}
	}
}
