package mapping

import (
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/finvela/bank_recon_svc/internal/models"
)

// ToModelStatement converts a domain Statement to a model Statement
func ToModelStatement(d domain.Statement) models.Statement {
	return models.Statement{
		StatementID:            d.StatementID,
		CompanyID:              d.CompanyID,
		AccountID:              d.AccountID,
		PeriodLabel:            d.PeriodLabel,
		PeriodStart:            d.PeriodStart,
		PeriodEnd:              d.PeriodEnd,
		DeclaredOpeningBalance: d.DeclaredOpeningBalance,
		DeclaredClosingBalance: d.DeclaredClosingBalance,
		State:                  models.StatementState(d.State),
		TotalItems:             d.TotalItems,
		MatchedCount:           d.MatchedCount,
		SuspenseCount:          d.SuspenseCount,
		PendingCount:           d.PendingCount,
		ClosedBy:               d.ClosedBy,
		ClosedAt:               d.ClosedAt,
		ClosingNotes:           d.ClosingNotes,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStatement converts a model Statement to a domain Statement
func ToDomainStatement(m models.Statement) domain.Statement {
	return domain.Statement{
		StatementID:            m.StatementID,
		CompanyID:              m.CompanyID,
		AccountID:              m.AccountID,
		PeriodLabel:            m.PeriodLabel,
		PeriodStart:            m.PeriodStart,
		PeriodEnd:              m.PeriodEnd,
		DeclaredOpeningBalance: m.DeclaredOpeningBalance,
		DeclaredClosingBalance: m.DeclaredClosingBalance,
		State:                  domain.StatementState(m.State),
		TotalItems:             m.TotalItems,
		MatchedCount:           m.MatchedCount,
		SuspenseCount:          m.SuspenseCount,
		PendingCount:           m.PendingCount,
		ClosedBy:               m.ClosedBy,
		ClosedAt:               m.ClosedAt,
		ClosingNotes:           m.ClosingNotes,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelStatementItem converts a domain StatementItem to a model StatementItem
func ToModelStatementItem(d domain.StatementItem) models.StatementItem {
	return models.StatementItem{
		ItemID:           d.ItemID,
		StatementID:      d.StatementID,
		LineNumber:       d.LineNumber,
		ValueDate:        d.ValueDate,
		Description:      d.Description,
		Reference:        d.Reference,
		DebitAmount:      d.DebitAmount,
		CreditAmount:     d.CreditAmount,
		Book:             string(d.Book),
		Matched:          d.Matched,
		MatchType:        string(d.MatchType),
		MatchConfidence:  d.MatchConfidence,
		MovementID:       d.MovementID,
		IsSuspense:       d.IsSuspense,
		SuspenseResolved: d.SuspenseResolved,
		SuspenseNotes:    d.SuspenseNotes,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStatementItem converts a model StatementItem to a domain StatementItem
func ToDomainStatementItem(m models.StatementItem) domain.StatementItem {
	return domain.StatementItem{
		ItemID:           m.ItemID,
		StatementID:      m.StatementID,
		LineNumber:       m.LineNumber,
		ValueDate:        m.ValueDate,
		Description:      m.Description,
		Reference:        m.Reference,
		DebitAmount:      m.DebitAmount,
		CreditAmount:     m.CreditAmount,
		Book:             domain.Book(m.Book),
		Matched:          m.Matched,
		MatchType:        domain.MatchType(m.MatchType),
		MatchConfidence:  m.MatchConfidence,
		MovementID:       m.MovementID,
		IsSuspense:       m.IsSuspense,
		SuspenseResolved: m.SuspenseResolved,
		SuspenseNotes:    m.SuspenseNotes,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainStatementItemSlice converts a slice of model items to domain items
func ToDomainStatementItemSlice(ms []models.StatementItem) []domain.StatementItem {
	items := make([]domain.StatementItem, len(ms))
	for i, m := range ms {
		items[i] = ToDomainStatementItem(m)
	}
	return items
}

// ToModelJustifiedDifference converts a domain JustifiedDifference to its model
func ToModelJustifiedDifference(d domain.JustifiedDifference) models.JustifiedDifference {
	return models.JustifiedDifference{
		DifferenceID:  d.DifferenceID,
		StatementID:   d.StatementID,
		Amount:        d.Amount,
		Concept:       d.Concept,
		Justification: d.Justification,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
	}
}

// ToDomainJustifiedDifference converts a model JustifiedDifference to its domain form
func ToDomainJustifiedDifference(m models.JustifiedDifference) domain.JustifiedDifference {
	return domain.JustifiedDifference{
		DifferenceID:  m.DifferenceID,
		StatementID:   m.StatementID,
		Amount:        m.Amount,
		Concept:       m.Concept,
		Justification: m.Justification,
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
	}
}
