package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MatchType records how a statement item was paired with a movement.
type MatchType string

const (
	MatchNone      MatchType = "NONE"
	MatchAutoExact MatchType = "AUTO_EXACT"
	MatchAutoFuzzy MatchType = "AUTO_FUZZY"
	MatchManual    MatchType = "MANUAL"
)

// StatementItem is one bank-reported transaction line, the unit being matched.
// Exactly one of DebitAmount/CreditAmount is non-zero. At most one movement
// may be linked to an item, and each movement links to at most one item.
type StatementItem struct {
	ItemID       string          `json:"itemID"` // Primary Key (UUID)
	StatementID  string          `json:"statementID"`
	LineNumber   int             `json:"lineNumber"` // Stable ordering within the statement
	ValueDate    time.Time       `json:"valueDate"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Book         Book            `json:"book"`

	Matched          bool      `json:"matched"`
	MatchType        MatchType `json:"matchType"`
	MatchConfidence  *int      `json:"matchConfidence,omitempty"` // 0-100, nil when unmatched
	MovementID       *string   `json:"movementID,omitempty"`      // FK -> treasury_movements, nullable
	IsSuspense       bool      `json:"isSuspense"`
	SuspenseResolved bool      `json:"suspenseResolved"`
	SuspenseNotes    string    `json:"suspenseNotes,omitempty"`
	AuditFields
}

// Amount returns the magnitude of the item's single non-zero side.
func (i *StatementItem) Amount() decimal.Decimal {
	if i.DebitAmount.IsPositive() {
		return i.DebitAmount
	}
	return i.CreditAmount
}

// IsCredit reports whether the item records money flowing into the account.
func (i *StatementItem) IsCredit() bool {
	return i.CreditAmount.IsPositive()
}

// SignedAmount returns the item's amount with the sign convention used by
// treasury movements: inflows positive, outflows negative.
func (i *StatementItem) SignedAmount() decimal.Decimal {
	if i.IsCredit() {
		return i.CreditAmount
	}
	return i.DebitAmount.Neg()
}

// Pending reports whether the item is still awaiting matching or suspense
// flagging.
func (i *StatementItem) Pending() bool {
	return !i.Matched && !i.IsSuspense
}

// MatchLink describes one item-to-movement pairing to be applied atomically.
type MatchLink struct {
	StatementID string
	ItemID      string
	MovementID  string
	MatchType   MatchType
	Confidence  int
}
