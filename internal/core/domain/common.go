package domain

import "time"

// AuditFields holds standard audit information for domain entities.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID Reference
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID Reference
}

// Book designates which balance view a record belongs to. The official book is
// restricted to compliance-grade movements; the extended book includes everything.
type Book string

const (
	BookOfficial Book = "OFFICIAL"
	BookExtended Book = "EXTENDED"
)

// ValidBook reports whether b is one of the known book designations.
func ValidBook(b Book) bool {
	return b == BookOfficial || b == BookExtended
}
