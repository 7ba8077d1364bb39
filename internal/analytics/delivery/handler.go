package delivery

import (
	"net/http"

	"github.com/KumarShresth7/EmailAutomation/internal/analytics/usecase"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler handles dashboard analytics HTTP requests
type AnalyticsHandler struct {
	analyticsUsecase usecase.AnalyticsUsecase
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(analyticsUsecase usecase.AnalyticsUsecase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUsecase: analyticsUsecase}
}

// GetDeadstocks returns items unsold over the deadstock window
// GET /api/analytics/deadstocks
func (h *AnalyticsHandler) GetDeadstocks(c *gin.Context) {
	deadstocks, err := h.analyticsUsecase.GetDeadstocks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, deadstocks)
}

// GetUrgentRestocking returns items at or below their alert level
// GET /api/analytics/urgent-restocking
func (h *AnalyticsHandler) GetUrgentRestocking(c *gin.Context) {
	alerts, err := h.analyticsUsecase.GetUrgentRestocking()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}

// GetPricingSuggestions returns AI-generated price adjustments
// GET /api/analytics/dynamic-pricing
func (h *AnalyticsHandler) GetPricingSuggestions(c *gin.Context) {
	summary, err := h.analyticsUsecase.GetPricingSuggestions(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pricing_suggestions": summary})
}
