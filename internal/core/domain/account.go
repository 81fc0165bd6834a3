package domain

// BankAccount identifies a real-world bank account within a company.
// Balances are never stored on the account row; they are computed on demand
// from treasury movements per book.
type BankAccount struct {
	AccountID    string `json:"accountID"`   // Primary Key (UUID)
	CompanyID    string `json:"companyID"`   // Owning company (scoped upstream)
	Name         string `json:"name"`        // User-defined name
	IBAN         string `json:"iban"`        // Account number as reported by the bank
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
