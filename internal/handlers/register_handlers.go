package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/finvela/bank_recon_svc/internal/apperrors"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/finvela/bank_recon_svc/internal/platform/config"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidations()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route is company-scoped; the gateway sets the identity headers.
	v1 := r.Group("/api/v1", middleware.CompanyContextMiddleware())

	registerAccountRoutes(v1, services.Account, services.Statement)
	registerStatementRoutes(v1, services.Statement, services.Match)
	registerReconciliationRoutes(v1, services.Reconciliation)
	registerReportRoutes(v1, services.Report)
}

// respondWithError translates a service error into the HTTP status the API
// contract promises: 404 for missing entities, 400 for validation failures,
// 409 for state conflicts and duplicates, 500 otherwise.
func respondWithError(c *gin.Context, err error, fallbackMsg string) {
	logger := middleware.GetLoggerFromContext(c)

	var appErr *apperrors.AppError
	message := err.Error()
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request rejected on validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": message})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Request rejected on conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": message})
	default:
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallbackMsg})
	}
}

// actingUserID returns the user the mutation is attributed to, defaulting to
// the service identity when the gateway sent no user header.
func actingUserID(c *gin.Context) string {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return userID
	}
	return "system"
}
