package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/dto"
	"github.com/finacct/accrual_subledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// analyticsHandler handles HTTP requests for the read-only analytics views.
type analyticsHandler struct {
	analyticsService portssvc.AnalyticsSvcFacade
}

func newAnalyticsHandler(as portssvc.AnalyticsSvcFacade) *analyticsHandler {
	return &analyticsHandler{
		analyticsService: as,
	}
}

// registerAnalyticsRoutes registers routes related to analytics.
func registerAnalyticsRoutes(rg *gin.RouterGroup, analyticsService portssvc.AnalyticsSvcFacade) {
	h := newAnalyticsHandler(analyticsService)
	rg.GET("/analytics", h.getAnalytics)
}

// getAnalytics godoc
// @Summary Get accrual analytics
// @Description Returns summary, 12-month trend, type breakdown, aging buckets and settlement accuracy
// @Tags analytics
// @Produce  json
// @Success 200 {object} dto.AnalyticsResponse
// @Failure 500 {object} map[string]string "Failed to retrieve analytics"
// @Router /analytics [get]
func (h *analyticsHandler) getAnalytics(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	analytics, err := h.analyticsService.GetAnalytics(c.Request.Context(), tenantID)
	if err != nil {
		logger.Error("Failed to retrieve analytics", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve analytics"})
		return
	}

	c.JSON(http.StatusOK, dto.ToAnalyticsResponse(analytics))
}
