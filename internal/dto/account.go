package dto

import (
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating a bank account.
type CreateAccountRequest struct {
	Name         string `json:"name" binding:"required"`
	IBAN         string `json:"iban" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// AccountResponse defines the data returned for a bank account.
type AccountResponse struct {
	AccountID    string    `json:"accountID"`
	Name         string    `json:"name"`
	IBAN         string    `json:"iban"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// AccountWithBalancesResponse adds the two computed book balances, used by
// the account-listing screen.
type AccountWithBalancesResponse struct {
	AccountResponse
	OfficialBalance decimal.Decimal `json:"officialBalance"`
	ExtendedBalance decimal.Decimal `json:"extendedBalance"`
}

// BalanceResponse defines the result of a single-book balance query.
type BalanceResponse struct {
	AccountID string          `json:"accountID"`
	Book      domain.Book     `json:"book"`
	Balance   decimal.Decimal `json:"balance"`
}

// ToAccountResponse converts a domain.BankAccount to AccountResponse.
func ToAccountResponse(a *domain.BankAccount) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Name:         a.Name,
		IBAN:         a.IBAN,
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
	}
}
