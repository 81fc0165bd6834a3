package mapping

import (
	"github.com/finvela/bank_recon_svc/internal/core/domain"
	"github.com/finvela/bank_recon_svc/internal/models"
)

// ToModelMovement converts a domain TreasuryMovement to a model TreasuryMovement
func ToModelMovement(d domain.TreasuryMovement) models.TreasuryMovement {
	return models.TreasuryMovement{
		MovementID:   d.MovementID,
		CompanyID:    d.CompanyID,
		AccountID:    d.AccountID,
		ValueDate:    d.ValueDate,
		MovementType: string(d.MovementType),
		Amount:       d.Amount,
		Description:  d.Description,
		Book:         string(d.Book),
		Reconciled:   d.Reconciled,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model TreasuryMovement to a domain TreasuryMovement
func ToDomainMovement(m models.TreasuryMovement) domain.TreasuryMovement {
	return domain.TreasuryMovement{
		MovementID:   m.MovementID,
		CompanyID:    m.CompanyID,
		AccountID:    m.AccountID,
		ValueDate:    m.ValueDate,
		MovementType: domain.MovementType(m.MovementType),
		Amount:       m.Amount,
		Description:  m.Description,
		Book:         domain.Book(m.Book),
		Reconciled:   m.Reconciled,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model movements to domain movements
func ToDomainMovementSlice(ms []models.TreasuryMovement) []domain.TreasuryMovement {
	movements := make([]domain.TreasuryMovement, len(ms))
	for i, m := range ms {
		movements[i] = ToDomainMovement(m)
	}
	return movements
}

// ToDomainIdempotencyRecord converts a model IdempotencyRecord to its domain form
func ToDomainIdempotencyRecord(m models.IdempotencyRecord) domain.IdempotencyRecord {
	return domain.IdempotencyRecord{
		CompanyID:     m.CompanyID,
		OperationKind: domain.OperationKind(m.OperationKind),
		Key:           m.Key,
		Status:        domain.IdempotencyStatus(m.Status),
		Result:        m.Result,
		EntityID:      m.EntityID,
		ExpiresAt:     m.ExpiresAt,
		CreatedAt:     m.CreatedAt,
	}
}

// ToModelAccount converts a domain BankAccount to a model BankAccount
func ToModelAccount(d domain.BankAccount) models.BankAccount {
	return models.BankAccount{
		AccountID:    d.AccountID,
		CompanyID:    d.CompanyID,
		Name:         d.Name,
		IBAN:         d.IBAN,
		CurrencyCode: d.CurrencyCode,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model BankAccount to a domain BankAccount
func ToDomainAccount(m models.BankAccount) domain.BankAccount {
	return domain.BankAccount{
		AccountID:    m.AccountID,
		CompanyID:    m.CompanyID,
		Name:         m.Name,
		IBAN:         m.IBAN,
		CurrencyCode: m.CurrencyCode,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
