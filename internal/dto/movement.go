package dto

import (
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordMovementRequest defines the payload for recording a ledger movement.
// Amount is signed: inflows positive, outflows negative.
type RecordMovementRequest struct {
	ValueDate    time.Time           `json:"valueDate" binding:"required"`
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=TRANSFER FEE INTEREST OTHER"`
	Amount       decimal.Decimal     `json:"amount" binding:"required"`
	Description  string              `json:"description"`
	Book         domain.Book         `json:"book" binding:"required,oneof=OFFICIAL EXTENDED"`
}

// MovementResponse defines the data returned for a treasury movement.
type MovementResponse struct {
	MovementID   string              `json:"movementID"`
	AccountID    string              `json:"accountID"`
	ValueDate    time.Time           `json:"valueDate"`
	MovementType domain.MovementType `json:"movementType"`
	Amount       decimal.Decimal     `json:"amount"`
	Description  string              `json:"description"`
	Book         domain.Book         `json:"book"`
	Reconciled   bool                `json:"reconciled"`
	CreatedAt    time.Time           `json:"createdAt"`
}

// ToMovementResponse converts a domain.TreasuryMovement to MovementResponse.
func ToMovementResponse(m *domain.TreasuryMovement) MovementResponse {
	return MovementResponse{
		MovementID:   m.MovementID,
		AccountID:    m.AccountID,
		ValueDate:    m.ValueDate,
		MovementType: m.MovementType,
		Amount:       m.Amount,
		Description:  m.Description,
		Book:         m.Book,
		Reconciled:   m.Reconciled,
		CreatedAt:    m.CreatedAt,
	}
}
