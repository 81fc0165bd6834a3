package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementState indicates the lifecycle state of a bank statement.
// CLOSED is terminal: a closed statement accepts no further item transitions.
type StatementState string

const (
	StatementOpen   StatementState = "OPEN"
	StatementClosed StatementState = "CLOSED"
)

// Statement represents one reconciliation period of one bank account, with the
// balances declared by the bank and running counters over its items.
//
// Counter invariant: MatchedCount + SuspenseCount + PendingCount == TotalItems
// after every operation. Resolved suspense items stay in SuspenseCount; they
// only leave it when matched through the create-movement path.
type Statement struct {
	StatementID            string                `json:"statementID"` // Primary Key (UUID)
	CompanyID              string                `json:"companyID"`
	AccountID              string                `json:"accountID"` // FK -> bank_accounts
	PeriodLabel            string                `json:"periodLabel"`
	PeriodStart            time.Time             `json:"periodStart"`
	PeriodEnd              time.Time             `json:"periodEnd"`
	DeclaredOpeningBalance decimal.Decimal       `json:"declaredOpeningBalance"`
	DeclaredClosingBalance decimal.Decimal       `json:"declaredClosingBalance"`
	State                  StatementState        `json:"state"`
	TotalItems             int                   `json:"totalItems"`
	MatchedCount           int                   `json:"matchedCount"`
	SuspenseCount          int                   `json:"suspenseCount"`
	PendingCount           int                   `json:"pendingCount"`
	JustifiedDifferences   []JustifiedDifference `json:"justifiedDifferences,omitempty"`
	ClosedBy               *string               `json:"closedBy,omitempty"`
	ClosedAt               *time.Time            `json:"closedAt,omitempty"`
	ClosingNotes           string                `json:"closingNotes,omitempty"`
	AuditFields
}

// JustifiedDifference explains one residual gap between the declared closing
// balance and the balance computed from the statement's items.
type JustifiedDifference struct {
	DifferenceID  string          `json:"differenceID"`
	StatementID   string          `json:"statementID"`
	Amount        decimal.Decimal `json:"amount"`
	Concept       string          `json:"concept"`
	Justification string          `json:"justification"`
	CreatedAt     time.Time       `json:"createdAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ComputedClosingBalance returns the closing balance implied by the declared
// opening balance plus the net of all items, excluding resolved suspense items
// (their gaps are explained through the justified-differences path instead).
func (s *Statement) ComputedClosingBalance(items []StatementItem) decimal.Decimal {
	closing := s.DeclaredOpeningBalance
	for _, item := range items {
		if item.IsSuspense && item.SuspenseResolved {
			continue
		}
		closing = closing.Add(item.CreditAmount).Sub(item.DebitAmount)
	}
	return closing
}
