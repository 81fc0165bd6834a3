package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementState indicates the lifecycle state of a bank statement.
type StatementState string

const (
	StatementOpen   StatementState = "OPEN"
	StatementClosed StatementState = "CLOSED"
)

// Statement is the persistence model for the statements table.
type Statement struct {
	StatementID            string          `json:"statementID"`
	CompanyID              string          `json:"companyID"`
	AccountID              string          `json:"accountID"`
	PeriodLabel            string          `json:"periodLabel"`
	PeriodStart            time.Time       `json:"periodStart"`
	PeriodEnd              time.Time       `json:"periodEnd"`
	DeclaredOpeningBalance decimal.Decimal `json:"declaredOpeningBalance"`
	DeclaredClosingBalance decimal.Decimal `json:"declaredClosingBalance"`
	State                  StatementState  `json:"state"`
	TotalItems             int             `json:"totalItems"`
	MatchedCount           int             `json:"matchedCount"`
	SuspenseCount          int             `json:"suspenseCount"`
	PendingCount           int             `json:"pendingCount"`
	ClosedBy               *string         `json:"closedBy"`
	ClosedAt               *time.Time      `json:"closedAt"`
	ClosingNotes           string          `json:"closingNotes"`
	AuditFields
}

// JustifiedDifference is the persistence model for statement_justified_differences.
type JustifiedDifference struct {
	DifferenceID  string          `json:"differenceID"`
	StatementID   string          `json:"statementID"`
	Amount        decimal.Decimal `json:"amount"`
	Concept       string          `json:"concept"`
	Justification string          `json:"justification"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// StatementItem is the persistence model for the statement_items table.
type StatementItem struct {
	ItemID           string          `json:"itemID"`
	StatementID      string          `json:"statementID"`
	LineNumber       int             `json:"lineNumber"`
	ValueDate        time.Time       `json:"valueDate"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	Book             string          `json:"book"`
	Matched          bool            `json:"matched"`
	MatchType        string          `json:"matchType"`
	MatchConfidence  *int            `json:"matchConfidence"`
	MovementID       *string         `json:"movementID"`
	IsSuspense       bool            `json:"isSuspense"`
	SuspenseResolved bool            `json:"suspenseResolved"`
	SuspenseNotes    string          `json:"suspenseNotes"`
	AuditFields
}
