package entity

import "time"

// Customer classification.
const (
	CustomerResidential     = "RESIDENTIAL"
	CustomerCommercial      = "COMMERCIAL"
	CustomerPropertyManager = "PROPERTY_MANAGER"
)

// ValidCustomerType reports whether t is a known classification.
func ValidCustomerType(t string) bool {
	switch t {
	case CustomerResidential, CustomerCommercial, CustomerPropertyManager:
		return true
	}
	return false
}

// Customer owns zero or more jobs and invoices. Deletable only when it owns none.
type Customer struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Company   string
	Address   string
	City      string
	State     string
	Zip       string
	Notes     string
	Type      string // RESIDENTIAL | COMMERCIAL | PROPERTY_MANAGER
	CreatedAt time.Time
	UpdatedAt time.Time

	// Counts populated on list/detail reads, not stored.
	JobCount     int
	InvoiceCount int
}
