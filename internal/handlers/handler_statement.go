package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for the statement lifecycle.
type statementHandler struct {
	statementService portssvc.StatementSvcFacade
	matchService     portssvc.MatchSvcFacade
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(ss portssvc.StatementSvcFacade, ms portssvc.MatchSvcFacade) *statementHandler {
	return &statementHandler{
		statementService: ss,
		matchService:     ms,
	}
}

// registerStatementRoutes registers routes related to statements.
func registerStatementRoutes(rg *gin.RouterGroup, statementService portssvc.StatementSvcFacade, matchService portssvc.MatchSvcFacade) {
	h := newStatementHandler(statementService, matchService)

	statements := rg.Group("/statements")
	{
		statements.POST("", h.ingestStatement)
		statements.GET("/:id", h.getStatement)
		statements.POST("/:id/close", h.closeStatement)
		statements.POST("/:id/automatch", h.runAutoMatch)
	}
}

func (h *statementHandler) ingestStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.IngestStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for IngestStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	statement, err := h.statementService.IngestStatement(c.Request.Context(), companyID, req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to ingest statement")
		return
	}

	logger.Info("Statement ingested successfully", slog.String("statement_id", statement.StatementID))
	c.JSON(http.StatusCreated, dto.ToStatementResponse(statement, nil))
}

func (h *statementHandler) getStatement(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	statementID := c.Param("id")

	statement, items, err := h.statementService.GetStatement(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve statement")
		return
	}

	c.JSON(http.StatusOK, dto.ToStatementResponse(statement, items))
}

func (h *statementHandler) closeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CloseStatementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CloseStatement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)
	statementID := c.Param("id")

	statement, err := h.statementService.CloseStatement(c.Request.Context(), companyID, statementID, req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to close statement")
		return
	}

	logger.Info("Statement closed successfully", slog.String("statement_id", statementID))
	c.JSON(http.StatusOK, dto.ToStatementResponse(statement, nil))
}

func (h *statementHandler) runAutoMatch(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	statementID := c.Param("id")

	result, err := h.matchService.RunAutoMatch(c.Request.Context(), companyID, statementID, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to run auto-match pass")
		return
	}

	c.JSON(http.StatusOK, result)
}
