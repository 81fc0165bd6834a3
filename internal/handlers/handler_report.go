package handlers

import (
	"net/http"

	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportHandler handles the reconciliation report endpoint.
type reportHandler struct {
	reportService portssvc.ReportSvcFacade
}

// registerReportRoutes registers the report route.
func registerReportRoutes(rg *gin.RouterGroup, reportService portssvc.ReportSvcFacade) {
	h := &reportHandler{reportService: reportService}

	rg.GET("/statements/:id/report", h.getReport)
}

func (h *reportHandler) getReport(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	statementID := c.Param("id")

	report, err := h.reportService.Generate(c.Request.Context(), companyID, statementID)
	if err != nil {
		respondWithError(c, err, "Failed to generate reconciliation report")
		return
	}

	c.JSON(http.StatusOK, report)
}
