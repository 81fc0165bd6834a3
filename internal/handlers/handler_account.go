package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	portssvc "github.com/finvela/bank_recon_svc/internal/core/ports/services"
	"github.com/finvela/bank_recon_svc/internal/dto"
	"github.com/finvela/bank_recon_svc/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests related to bank accounts.
type accountHandler struct {
	accountService   portssvc.AccountSvcFacade
	statementService portssvc.StatementSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(as portssvc.AccountSvcFacade, ss portssvc.StatementSvcFacade) *accountHandler {
	return &accountHandler{
		accountService:   as,
		statementService: ss,
	}
}

// registerAccountRoutes registers routes related to bank accounts.
func registerAccountRoutes(rg *gin.RouterGroup, accountService portssvc.AccountSvcFacade, statementService portssvc.StatementSvcFacade) {
	h := newAccountHandler(accountService, statementService)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.POST("/:id/movements", h.recordMovement)
		accounts.GET("/:id/statements", h.listStatements)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)

	newAccount, err := h.accountService.CreateAccount(c.Request.Context(), companyID, req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to create account")
		return
	}

	logger.Info("Account created successfully", slog.String("account_id", newAccount.AccountID))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(newAccount))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	accountID := c.Param("id")

	account, err := h.accountService.GetAccountByID(c.Request.Context(), companyID, accountID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve account")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)

	accounts, err := h.accountService.ListAccountsWithBalances(c.Request.Context(), companyID)
	if err != nil {
		respondWithError(c, err, "Failed to list accounts")
		return
	}

	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// getBalance returns one computed book balance. The book query parameter
// defaults to EXTENDED, the view that includes every movement.
func (h *accountHandler) getBalance(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	accountID := c.Param("id")

	book := domain.Book(c.DefaultQuery("book", string(domain.BookExtended)))

	balance, err := h.accountService.Balance(c.Request.Context(), companyID, accountID, book)
	if err != nil {
		respondWithError(c, err, "Failed to compute balance")
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Book:      book,
		Balance:   balance,
	})
}

func (h *accountHandler) recordMovement(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.RecordMovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordMovement", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	companyID, _ := middleware.GetCompanyIDFromContext(c)
	accountID := c.Param("id")

	movement, err := h.accountService.RecordMovement(c.Request.Context(), companyID, accountID, req, actingUserID(c))
	if err != nil {
		respondWithError(c, err, "Failed to record movement")
		return
	}

	logger.Info("Movement recorded successfully", slog.String("movement_id", movement.MovementID))
	c.JSON(http.StatusCreated, dto.ToMovementResponse(movement))
}

func (h *accountHandler) listStatements(c *gin.Context) {
	companyID, _ := middleware.GetCompanyIDFromContext(c)
	accountID := c.Param("id")

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	statements, err := h.statementService.ListStatements(c.Request.Context(), companyID, accountID, limit)
	if err != nil {
		respondWithError(c, err, "Failed to list statements")
		return
	}

	resp := dto.ListStatementsResponse{Statements: make([]dto.StatementResponse, len(statements))}
	for i := range statements {
		resp.Statements[i] = dto.ToStatementResponse(&statements[i], nil)
	}
	c.JSON(http.StatusOK, resp)
}
