package api

import (
	"alcyxob/coach-api/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler holds the analytics service dependency.
type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// GetWorkoutAnalytics returns the full workout analytics snapshot for the
// authenticated user.
func (h *AnalyticsHandler) GetWorkoutAnalytics(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	analytics, err := h.analyticsService.GetWorkoutAnalytics(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute workout analytics.")
		return
	}
	c.JSON(http.StatusOK, analytics)
}

// GetSleepStats returns aggregated sleep statistics. The window is selected
// with ?period=7d|30d|90d and defaults to 30d.
func (h *AnalyticsHandler) GetSleepStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	period := c.DefaultQuery("period", service.PeriodMonth)

	stats, err := h.analyticsService.GetSleepStats(c.Request.Context(), userID, period)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute sleep statistics.")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetInsights returns rule-based insights and recommendations.
func (h *AnalyticsHandler) GetInsights(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	insights, err := h.analyticsService.GetInsights(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute insights.")
		return
	}
	c.JSON(http.StatusOK, insights)
}
