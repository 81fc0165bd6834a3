package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a treasury movement.
type MovementType string

const (
	MovementTransfer MovementType = "TRANSFER"
	MovementFee      MovementType = "FEE"
	MovementInterest MovementType = "INTEREST"
	MovementOther    MovementType = "OTHER"
)

// TreasuryMovement is one internally recorded ledger entry, the match target
// for statement items. Amount is signed: inflows positive, outflows negative.
// Reconciled is derived from the presence of a statement-item link at read
// time; it is never stored on the movement itself.
type TreasuryMovement struct {
	MovementID   string          `json:"movementID"` // Primary Key (UUID)
	CompanyID    string          `json:"companyID"`
	AccountID    string          `json:"accountID"` // FK -> bank_accounts
	ValueDate    time.Time       `json:"valueDate"`
	MovementType MovementType    `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Book         Book            `json:"book"`
	Reconciled   bool            `json:"reconciled"`
	AuditFields
}
