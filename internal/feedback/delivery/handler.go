package delivery

import (
	"net/http"

	"github.com/KumarShresth7/EmailAutomation/internal/feedback/usecase"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler handles feedback HTTP requests
type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
}

// NewFeedbackHandler creates a new FeedbackHandler
func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase) *FeedbackHandler {
	return &FeedbackHandler{feedbackUsecase: feedbackUsecase}
}

// GetFeedback returns all stored feedback, newest first
// GET /api/feedback
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	feedback, err := h.feedbackUsecase.GetFeedback()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, feedback)
}
