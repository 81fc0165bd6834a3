package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reconciliationHandler handles the per-item reconciliation mutations.
type reconciliationHandler struct {
	reconciliationService portssvc.ReconciliationSvcFacade
}

// newReconciliationHandler creates a new reconciliationHandler.
func newReconciliationHandler(rs portssvc.ReconciliationSvcFacade) *reconciliationHandler {
	return &reconciliationHandler{
		reconciliationService: rs,
	}
}

// registerReconciliationRoutes registers the item mutation routes.
func registerReconciliationRoutes(rg *gin.RouterGroup, reconciliationService portssvc.ReconciliationSvcFacade) {
	h := newReconciliationHandler(reconciliationService)

	items := rg.Group("/statements/:id/items/:itemID")
	{
		items.POST("/match", h.manualMatch)
		items.POST("/unmatch", h.unmatch)
		items.POST("/suspense", h.flagSuspense)
		items.POST("/suspense/resolve", h.resolveSuspense)
		items.POST("/suspense/movement", h.createMovementFromSuspense)
	}
}

func (h *reconciliationHandler) manualMatch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ManualMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ManualMatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	resp, err := h.reconciliationService.ManualMatch(c.Request.Context(), companyID, c.Param("id"), c.Param("itemID"), req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to match item")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reconciliationHandler) unmatch(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.UnmatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Unmatch", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	resp, err := h.reconciliationService.Unmatch(c.Request.Context(), companyID, c.Param("id"), c.Param("itemID"), req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to unmatch item")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reconciliationHandler) flagSuspense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.FlagSuspenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for FlagSuspense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	resp, err := h.reconciliationService.FlagSuspense(c.Request.Context(), companyID, c.Param("id"), c.Param("itemID"), req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to flag item as suspense")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reconciliationHandler) resolveSuspense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.ResolveSuspenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ResolveSuspense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	resp, err := h.reconciliationService.ResolveSuspense(c.Request.Context(), companyID, c.Param("id"), c.Param("itemID"), req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to resolve suspense item")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *reconciliationHandler) createMovementFromSuspense(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.MovementFromSuspenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateMovementFromSuspense", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	resp, err := h.reconciliationService.CreateMovementFromSuspense(c.Request.Context(), companyID, c.Param("id"), c.Param("itemID"), req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to create movement from suspense item")
		return
	}

	c.JSON(http.StatusCreated, resp)
}
