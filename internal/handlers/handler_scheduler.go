package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// schedulerHandler exposes a manual trigger for the recurrence driver, used
// by operators to catch up after downtime or to run period-end on demand.
type schedulerHandler struct {
	recurrenceService portssvc.RecurrenceSvcFacade
}

func newSchedulerHandler(rs portssvc.RecurrenceSvcFacade) *schedulerHandler {
	return &schedulerHandler{
		recurrenceService: rs,
	}
}

// registerSchedulerRoutes registers the manual scheduler trigger.
func registerSchedulerRoutes(rg *gin.RouterGroup, recurrenceService portssvc.RecurrenceSvcFacade) {
	h := newSchedulerHandler(recurrenceService)
	rg.POST("/scheduler/run", h.runNow)
}

// runNow godoc
// @Summary Run the recurrence driver now
// @Description Generates due recurring accruals and executes due auto-reversals as of the given date (default: today)
// @Tags scheduler
// @Produce  json
// @Param   asOf query string false "Run as-of date (YYYY-MM-DD, default today)"
// @Success 200 {object} services.RecurrenceRunReport
// @Failure 400 {object} map[string]string "Invalid asOf date"
// @Failure 500 {object} map[string]string "Recurrence run failed"
// @Router /scheduler/run [post]
func (h *schedulerHandler) runNow(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf := time.Now().UTC()
	if raw := c.Query("asOf"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			logger.Warn("Invalid asOf date for scheduler run", slog.String("as_of", raw))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
			return
		}
		asOf = parsed
	}

	logger.Info("Received request to run recurrence driver", slog.Time("as_of", asOf))

	report, err := h.recurrenceService.RunDaily(c.Request.Context(), asOf)
	if err != nil {
		logger.Error("Recurrence run failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Recurrence run failed"})
		return
	}

	logger.Info("Recurrence run completed",
		slog.Int("recurring_generated", report.RecurringGenerated),
		slog.Int("auto_reversals_done", report.AutoReversalsDone),
		slog.Int("failures", report.Failures))
	c.JSON(http.StatusOK, report)
}
