package dto

import (
	"time"

	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/shopspring/decimal"
)

// IngestItemRequest defines one structured statement line supplied by the
// ingestion collaborator. Exactly one of debitAmount/creditAmount must be
// non-zero; the service validates this beyond binding.
type IngestItemRequest struct {
	LineNumber   int             `json:"lineNumber" binding:"required,min=1"`
	ValueDate    time.Time       `json:"valueDate" binding:"required"`
	Description  string          `json:"description"`
	Reference    string          `json:"reference"`
	DebitAmount  decimal.Decimal `json:"debitAmount"`
	CreditAmount decimal.Decimal `json:"creditAmount"`
	Book         domain.Book     `json:"book" binding:"required,oneof=OFFICIAL EXTENDED"`
}

// IngestStatementRequest defines the payload for ingesting a statement period.
type IngestStatementRequest struct {
	AccountID              string              `json:"accountID" binding:"required"`
	PeriodLabel            string              `json:"periodLabel" binding:"required,periodlabel"`
	PeriodStart            time.Time           `json:"periodStart" binding:"required"`
	PeriodEnd              time.Time           `json:"periodEnd" binding:"required"`
	DeclaredOpeningBalance decimal.Decimal     `json:"declaredOpeningBalance"`
	DeclaredClosingBalance decimal.Decimal     `json:"declaredClosingBalance"`
	Items                  []IngestItemRequest `json:"items" binding:"required,min=1,dive"`
}

// JustifiedDifferenceRequest explains one residual gap at closing time.
type JustifiedDifferenceRequest struct {
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	Concept       string          `json:"concept" binding:"required"`
	Justification string          `json:"justification" binding:"required"`
}

// CloseStatementRequest defines the payload for closing a statement.
type CloseStatementRequest struct {
	ClosingNotes string                       `json:"closingNotes"`
	Differences  []JustifiedDifferenceRequest `json:"differences" binding:"dive"`
}

// StatementItemResponse defines the data returned for one statement line.
type StatementItemResponse struct {
	ItemID           string          `json:"itemID"`
	LineNumber       int             `json:"lineNumber"`
	ValueDate        time.Time       `json:"valueDate"`
	Description      string          `json:"description"`
	Reference        string          `json:"reference"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	Book             domain.Book     `json:"book"`
	Matched          bool            `json:"matched"`
	MatchType        domain.MatchType `json:"matchType"`
	MatchConfidence  *int            `json:"matchConfidence,omitempty"`
	MovementID       *string         `json:"movementID,omitempty"`
	IsSuspense       bool            `json:"isSuspense"`
	SuspenseResolved bool            `json:"suspenseResolved"`
	SuspenseNotes    string          `json:"suspenseNotes,omitempty"`
}

// StatementResponse defines the data returned for a statement.
type StatementResponse struct {
	StatementID            string                  `json:"statementID"`
	AccountID              string                  `json:"accountID"`
	PeriodLabel            string                  `json:"periodLabel"`
	PeriodStart            time.Time               `json:"periodStart"`
	PeriodEnd              time.Time               `json:"periodEnd"`
	DeclaredOpeningBalance decimal.Decimal         `json:"declaredOpeningBalance"`
	DeclaredClosingBalance decimal.Decimal         `json:"declaredClosingBalance"`
	State                  domain.StatementState   `json:"state"`
	TotalItems             int                     `json:"totalItems"`
	MatchedCount           int                     `json:"matchedCount"`
	SuspenseCount          int                     `json:"suspenseCount"`
	PendingCount           int                     `json:"pendingCount"`
	ClosedBy               *string                 `json:"closedBy,omitempty"`
	ClosedAt               *time.Time              `json:"closedAt,omitempty"`
	ClosingNotes           string                  `json:"closingNotes,omitempty"`
	Items                  []StatementItemResponse `json:"items,omitempty"`
}

// ListStatementsResponse wraps a statement listing.
type ListStatementsResponse struct {
	Statements []StatementResponse `json:"statements"`
}

// ToStatementItemResponse converts a domain.StatementItem to its DTO.
func ToStatementItemResponse(item *domain.StatementItem) StatementItemResponse {
	return StatementItemResponse{
		ItemID:           item.ItemID,
		LineNumber:       item.LineNumber,
		ValueDate:        item.ValueDate,
		Description:      item.Description,
		Reference:        item.Reference,
		DebitAmount:      item.DebitAmount,
		CreditAmount:     item.CreditAmount,
		Book:             item.Book,
		Matched:          item.Matched,
		MatchType:        item.MatchType,
		MatchConfidence:  item.MatchConfidence,
		MovementID:       item.MovementID,
		IsSuspense:       item.IsSuspense,
		SuspenseResolved: item.SuspenseResolved,
		SuspenseNotes:    item.SuspenseNotes,
	}
}

// ToStatementResponse converts a domain.Statement (and optional items) to its DTO.
func ToStatementResponse(s *domain.Statement, items []domain.StatementItem) StatementResponse {
	resp := StatementResponse{
		StatementID:            s.StatementID,
		AccountID:              s.AccountID,
		PeriodLabel:            s.PeriodLabel,
		PeriodStart:            s.PeriodStart,
		PeriodEnd:              s.PeriodEnd,
		DeclaredOpeningBalance: s.DeclaredOpeningBalance,
		DeclaredClosingBalance: s.DeclaredClosingBalance,
		State:                  s.State,
		TotalItems:             s.TotalItems,
		MatchedCount:           s.MatchedCount,
		SuspenseCount:          s.SuspenseCount,
		PendingCount:           s.PendingCount,
		ClosedBy:               s.ClosedBy,
		ClosedAt:               s.ClosedAt,
		ClosingNotes:           s.ClosingNotes,
	}
	if len(items) > 0 {
		resp.Items = make([]StatementItemResponse, len(items))
		for i := range items {
			resp.Items[i] = ToStatementItemResponse(&items[i])
		}
	}
	return resp
}
