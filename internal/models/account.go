package models

// BankAccount is the persistence model for the bank_accounts table.
type BankAccount struct {
	AccountID    string `json:"accountID"`
	CompanyID    string `json:"companyID"`
	Name         string `json:"name"`
	IBAN         string `json:"iban"`
	CurrencyCode string `json:"currencyCode"`
	IsActive     bool   `json:"isActive"`
	AuditFields
}
