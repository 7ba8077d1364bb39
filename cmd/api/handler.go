package api

import (
	analyticsDelivery "github.com/KumarShresth7/EmailAutomation/internal/analytics/delivery"
	analyticsUsecase "github.com/KumarShresth7/EmailAutomation/internal/analytics/usecase"
	authUsecase "github.com/KumarShresth7/EmailAutomation/internal/auth/usecase"
	chatbotDelivery "github.com/KumarShresth7/EmailAutomation/internal/chatbot/delivery"
	chatbotUsecase "github.com/KumarShresth7/EmailAutomation/internal/chatbot/usecase"
	feedbackDelivery "github.com/KumarShresth7/EmailAutomation/internal/feedback/delivery"
	feedbackUsecase "github.com/KumarShresth7/EmailAutomation/internal/feedback/usecase"
	inventoryDelivery "github.com/KumarShresth7/EmailAutomation/internal/inventory/delivery"
	inventoryUsecase "github.com/KumarShresth7/EmailAutomation/internal/inventory/usecase"
	orderDelivery "github.com/KumarShresth7/EmailAutomation/internal/order/delivery"
	orderUsecase "github.com/KumarShresth7/EmailAutomation/internal/order/usecase"
	"github.com/KumarShresth7/EmailAutomation/pkg/config"

	"github.com/gin-gonic/gin"
)

// Handler wires the delivery layer over the usecases and runs the
// HTTP server.
type Handler struct {
	authUsecase      authUsecase.AuthUsecase
	orderHandler     *orderDelivery.OrderHandler
	inventoryHandler *inventoryDelivery.InventoryHandler
	feedbackHandler  *feedbackDelivery.FeedbackHandler
	analyticsHandler *analyticsDelivery.AnalyticsHandler
	chatbotHandler   *chatbotDelivery.ChatbotHandler
	config           *config.Config
}

func NewHandler(
	authUc authUsecase.AuthUsecase,
	orderUc orderUsecase.OrderUsecase,
	inventoryUc inventoryUsecase.InventoryUsecase,
	feedbackUc feedbackUsecase.FeedbackUsecase,
	analyticsUc analyticsUsecase.AnalyticsUsecase,
	chatbotUc chatbotUsecase.ChatbotUsecase,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:      authUc,
		orderHandler:     orderDelivery.NewOrderHandler(orderUc),
		inventoryHandler: inventoryDelivery.NewInventoryHandler(inventoryUc),
		feedbackHandler:  feedbackDelivery.NewFeedbackHandler(feedbackUc),
		analyticsHandler: analyticsDelivery.NewAnalyticsHandler(analyticsUc),
		chatbotHandler:   chatbotDelivery.NewChatbotHandler(chatbotUc),
		config:           cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
