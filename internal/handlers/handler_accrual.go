package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finacct/accrual_subledger_app/internal/apperrors"
	portssvc "github.com/finacct/accrual_subledger_app/internal/core/ports/services"
	"github.com/finacct/accrual_subledger_app/internal/dto"
	"github.com/finacct/accrual_subledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accrualHandler handles HTTP requests for the accrual lifecycle.
type accrualHandler struct {
	accrualService portssvc.AccrualSvcFacade
}

// newAccrualHandler creates a new accrualHandler.
func newAccrualHandler(as portssvc.AccrualSvcFacade) *accrualHandler {
	return &accrualHandler{
		accrualService: as,
	}
}

// registerAccrualRoutes registers routes related to accruals.
func registerAccrualRoutes(rg *gin.RouterGroup, accrualService portssvc.AccrualSvcFacade) {
	h := newAccrualHandler(accrualService)

	accruals := rg.Group("/accruals")
	{
		accruals.POST("", h.createAccrual)
		accruals.GET("", h.listAccruals)
		accruals.GET("/:accrualID", h.getAccrual)
		accruals.GET("/:accrualID/entries", h.listEntries)
		accruals.POST("/:accrualID/approve", h.approveAccrual)
		accruals.POST("/:accrualID/reject", h.rejectAccrual)
		accruals.POST("/:accrualID/reverse", h.reverseAccrual)
		accruals.POST("/:accrualID/settle", h.settleAccrual)
	}
	rg.GET("/summary", h.getSummary)
}

// respondLifecycleError maps service errors from lifecycle mutations onto
// HTTP statuses. 409 marks state/concurrency problems worth retrying after a
// re-read; 422 marks amounts the current balance cannot absorb.
func respondLifecycleError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Accrual not found for "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": "Accrual not found"})
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrInvalidAccount):
		logger.Warn("Validation error during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid state transition during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		logger.Warn("Concurrent modification during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": "Accrual was modified concurrently, please retry"})
	case errors.Is(err, apperrors.ErrOverAmount):
		logger.Warn("Amount exceeds outstanding balance during "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}

// createAccrual godoc
// @Summary Create a new accrual
// @Description Creates an accrual in PENDING_APPROVAL for the tenant
// @Tags accruals
// @Accept  json
// @Produce  json
// @Param   accrual body dto.CreateAccrualRequest true "Accrual details"
// @Success 201 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to create accrual"
// @Router /accruals [post]
func (h *accrualHandler) createAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actor, _ := middleware.GetActorIDFromContext(c)

	logger.Info("Received request to create accrual",
		slog.String("accrual_type", string(req.Type)),
		slog.String("amount", req.Amount.String()))

	accrual, err := h.accrualService.CreateAccrual(c.Request.Context(), tenantID, req, actor)
	if err != nil {
		respondLifecycleError(c, logger, "create accrual", err)
		return
	}

	logger.Info("Accrual created successfully",
		slog.String("accrual_id", accrual.AccrualID),
		slog.String("accrual_number", accrual.AccrualNumber))
	c.JSON(http.StatusCreated, dto.ToAccrualResponse(accrual))
}

// getAccrual godoc
// @Summary Get an accrual by ID
// @Description Retrieves a single accrual with its balances and status
// @Tags accruals
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Success 200 {object} dto.AccrualResponse
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 500 {object} map[string]string "Failed to retrieve accrual"
// @Router /accruals/{accrualID} [get]
func (h *accrualHandler) getAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	accrual, err := h.accrualService.GetAccrualByID(c.Request.Context(), tenantID, accrualID)
	if err != nil {
		respondLifecycleError(c, logger.With(slog.String("accrual_id", accrualID)), "retrieve accrual", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual))
}

// listAccruals godoc
// @Summary List accruals
// @Description Retrieves a filtered, token-paginated accrual listing
// @Tags accruals
// @Produce  json
// @Param   status query string false "Filter by status"
// @Param   type query string false "Filter by accrual type"
// @Param   periodStart query string false "Accrual date lower bound (YYYY-MM-DD)"
// @Param   periodEnd query string false "Accrual date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListAccrualsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list accruals"
// @Router /accruals [get]
func (h *accrualHandler) listAccruals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListAccrualsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListAccruals", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	tenantID, _ := middleware.GetTenantIDFromContext(c)

	resp, err := h.accrualService.ListAccruals(c.Request.Context(), tenantID, params)
	if err != nil {
		respondLifecycleError(c, logger, "list accruals", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// listEntries godoc
// @Summary List journal entries for an accrual
// @Description Retrieves the full journal history of one accrual, oldest first
// @Tags accruals
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Router /accruals/{accrualID}/entries [get]
func (h *accrualHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	entries, err := h.accrualService.ListEntriesByAccrual(c.Request.Context(), tenantID, accrualID)
	if err != nil {
		respondLifecycleError(c, logger.With(slog.String("accrual_id", accrualID)), "list journal entries", err)
		return
	}

	c.JSON(http.StatusOK, dto.ListEntriesResponse{Entries: dto.ToJournalEntryResponses(entries)})
}

// approveAccrual godoc
// @Summary Approve a pending accrual
// @Description Moves the accrual to ACTIVE and posts the initial journal entry
// @Tags accruals
// @Accept  json
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Param   approval body dto.ApproveAccrualRequest false "Approval notes"
// @Success 200 {object} dto.AccrualResponse
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 409 {object} map[string]string "Accrual is not pending approval"
// @Failure 500 {object} map[string]string "Failed to approve accrual"
// @Router /accruals/{accrualID}/approve [post]
func (h *accrualHandler) approveAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actor, _ := middleware.GetActorIDFromContext(c)

	// An empty body is fine for approvals.
	var req dto.ApproveAccrualRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for ApproveAccrual", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
			return
		}
	}

	logger = logger.With(slog.String("accrual_id", accrualID))
	logger.Info("Received request to approve accrual")

	accrual, err := h.accrualService.ApproveAccrual(c.Request.Context(), tenantID, accrualID, req, actor)
	if err != nil {
		respondLifecycleError(c, logger, "approve accrual", err)
		return
	}

	logger.Info("Accrual approved successfully", slog.String("status", string(accrual.Status)))
	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual))
}

// rejectAccrual godoc
// @Summary Reject a pending accrual
// @Description Cancels a pending accrual without posting any journal entry
// @Tags accruals
// @Accept  json
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Param   rejection body dto.RejectAccrualRequest true "Rejection reason"
// @Success 200 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format"
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 409 {object} map[string]string "Accrual is not pending approval"
// @Failure 500 {object} map[string]string "Failed to reject accrual"
// @Router /accruals/{accrualID}/reject [post]
func (h *accrualHandler) rejectAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actor, _ := middleware.GetActorIDFromContext(c)

	var req dto.RejectAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RejectAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("accrual_id", accrualID))
	logger.Info("Received request to reject accrual")

	accrual, err := h.accrualService.RejectAccrual(c.Request.Context(), tenantID, accrualID, req, actor)
	if err != nil {
		respondLifecycleError(c, logger, "reject accrual", err)
		return
	}

	logger.Info("Accrual rejected", slog.String("status", string(accrual.Status)))
	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual))
}

// reverseAccrual godoc
// @Summary Reverse an accrual
// @Description Applies a full or partial reversal and posts a reversal entry with swapped accounts
// @Tags accruals
// @Accept  json
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Param   reversal body dto.ReverseAccrualRequest true "Reversal amount and reason"
// @Success 200 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 409 {object} map[string]string "Accrual state does not allow reversal"
// @Failure 422 {object} map[string]string "Amount exceeds outstanding balance"
// @Failure 500 {object} map[string]string "Failed to reverse accrual"
// @Router /accruals/{accrualID}/reverse [post]
func (h *accrualHandler) reverseAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actor, _ := middleware.GetActorIDFromContext(c)

	var req dto.ReverseAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ReverseAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("accrual_id", accrualID))
	logger.Info("Received request to reverse accrual", slog.String("amount", req.Amount.String()))

	accrual, err := h.accrualService.ReverseAccrual(c.Request.Context(), tenantID, accrualID, req, actor)
	if err != nil {
		respondLifecycleError(c, logger, "reverse accrual", err)
		return
	}

	logger.Info("Accrual reversed successfully",
		slog.String("status", string(accrual.Status)),
		slog.String("outstanding", accrual.OutstandingBalance.String()))
	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual))
}

// settleAccrual godoc
// @Summary Settle an accrual
// @Description Records the actual cash event, posts a settlement entry and computes accuracy metrics
// @Tags accruals
// @Accept  json
// @Produce  json
// @Param   accrualID path string true "Accrual ID"
// @Param   settlement body dto.SettleAccrualRequest true "Settlement amount and date"
// @Success 200 {object} dto.AccrualResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 404 {object} map[string]string "Accrual not found"
// @Failure 409 {object} map[string]string "Accrual state does not allow settlement"
// @Failure 422 {object} map[string]string "Amount exceeds outstanding balance"
// @Failure 500 {object} map[string]string "Failed to settle accrual"
// @Router /accruals/{accrualID}/settle [post]
func (h *accrualHandler) settleAccrual(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accrualID := c.Param("accrualID")
	tenantID, _ := middleware.GetTenantIDFromContext(c)
	actor, _ := middleware.GetActorIDFromContext(c)

	var req dto.SettleAccrualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SettleAccrual", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.String("accrual_id", accrualID))
	logger.Info("Received request to settle accrual", slog.String("amount", req.Amount.String()))

	accrual, err := h.accrualService.SettleAccrual(c.Request.Context(), tenantID, accrualID, req, actor)
	if err != nil {
		respondLifecycleError(c, logger, "settle accrual", err)
		return
	}

	logger.Info("Accrual settled successfully",
		slog.String("status", string(accrual.Status)),
		slog.String("accuracy_score", accrual.Settlement.AccuracyScore.String()))
	c.JSON(http.StatusOK, dto.ToAccrualResponse(accrual))
}

// getSummary godoc
// @Summary Get the accrual summary
// @Description Returns headline counts and outstanding totals for the tenant
// @Tags analytics
// @Produce  json
// @Success 200 {object} dto.SummaryResponse
// @Failure 500 {object} map[string]string "Failed to retrieve summary"
// @Router /summary [get]
func (h *accrualHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID, _ := middleware.GetTenantIDFromContext(c)

	summary, err := h.accrualService.GetSummary(c.Request.Context(), tenantID)
	if err != nil {
		respondLifecycleError(c, logger, "retrieve summary", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
