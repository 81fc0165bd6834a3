package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReconciliationReport is the structured output consumed by the external
// renderer. Assembling it performs no state transitions.
type ReconciliationReport struct {
	StatementID   string         `json:"statementID"`
	AccountID     string         `json:"accountID"`
	PeriodLabel   string         `json:"periodLabel"`
	State         StatementState `json:"state"`
	GeneratedAt   time.Time      `json:"generatedAt"`

	DeclaredOpeningBalance  decimal.Decimal `json:"declaredOpeningBalance"`
	DeclaredClosingBalance  decimal.Decimal `json:"declaredClosingBalance"`
	ComputedClosingBalance  decimal.Decimal `json:"computedClosingBalance"`
	OfficialAccountBalance  decimal.Decimal `json:"officialAccountBalance"`
	ExtendedAccountBalance  decimal.Decimal `json:"extendedAccountBalance"`
	TotalDebits             decimal.Decimal `json:"totalDebits"`
	TotalCredits            decimal.Decimal `json:"totalCredits"`

	ReconciledItems []ReportItem `json:"reconciledItems"`
	PendingItems    []ReportItem `json:"pendingItems"`
	SuspenseItems   []ReportItem `json:"suspenseItems"`

	MatchBreakdown       map[MatchType]int     `json:"matchBreakdown"`
	JustifiedDifferences []JustifiedDifference `json:"justifiedDifferences"`

	ClosedBy     *string    `json:"closedBy,omitempty"`
	ClosedAt     *time.Time `json:"closedAt,omitempty"`
	ClosingNotes string     `json:"closingNotes,omitempty"`
}

// ReportItem pairs a statement item with its matched movement, if any.
type ReportItem struct {
	Item     StatementItem     `json:"item"`
	Movement *TreasuryMovement `json:"movement,omitempty"`
}
