package delivery

import (
	"net/http"

	"github.com/KumarShresth7/EmailAutomation/internal/chatbot/usecase"

	"github.com/gin-gonic/gin"
)

// ChatbotHandler handles chatbot HTTP requests
type ChatbotHandler struct {
	chatbotUsecase usecase.ChatbotUsecase
}

// NewChatbotHandler creates a new ChatbotHandler
func NewChatbotHandler(chatbotUsecase usecase.ChatbotUsecase) *ChatbotHandler {
	return &ChatbotHandler{chatbotUsecase: chatbotUsecase}
}

// ChatRequest represents the request body for a chatbot query
type ChatRequest struct {
	Query string `json:"query" binding:"required"`
}

// Chat answers one staff question
// POST /api/chatbot
func (h *ChatbotHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter is required"})
		return
	}

	response, err := h.chatbotUsecase.Ask(c.Request.Context(), req.Query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// Sync re-indexes the catalog and orders into the vector store
// POST /api/chatbot/sync
func (h *ChatbotHandler) Sync(c *gin.Context) {
	if err := h.chatbotUsecase.SyncKnowledge(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Knowledge base synced"})
}
