package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TreasuryMovement is the persistence model for the treasury_movements table.
type TreasuryMovement struct {
	MovementID   string          `json:"movementID"`
	CompanyID    string          `json:"companyID"`
	AccountID    string          `json:"accountID"`
	ValueDate    time.Time       `json:"valueDate"`
	MovementType string          `json:"movementType"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	Book         string          `json:"book"`
	Reconciled   bool            `json:"reconciled"`
	AuditFields
}

// IdempotencyRecord is the persistence model for the idempotency_records table.
type IdempotencyRecord struct {
	CompanyID     string    `json:"companyID"`
	OperationKind string    `json:"operationKind"`
	Key           string    `json:"key"`
	Status        string    `json:"status"`
	Result        []byte    `json:"result"`
	EntityID      string    `json:"entityID"`
	ExpiresAt     time.Time `json:"expiresAt"`
	CreatedAt     time.Time `json:"createdAt"`
}
