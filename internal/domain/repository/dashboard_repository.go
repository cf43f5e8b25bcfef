package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusTotals is one row of the invoices-by-status rollup.
type StatusTotals struct {
	Status     string
	Count      int
	Total      decimal.Decimal
	BalanceDue decimal.Decimal
}

// DashboardRepository runs the aggregate queries behind the overview page.
type DashboardRepository interface {
	CountCustomers() (int, error)
	CountJobsByStatus(statuses ...string) (int, error)
	CountPendingWorkOrders() (int, error)
	CountInvoicesByStatus(statuses ...string) (int, error)
	InvoiceTotalsByStatus() ([]StatusTotals, error)
	// PaidRevenue sums totals of PAID invoices; OutstandingBalance sums
	// balance due across SENT, PARTIAL and OVERDUE.
	PaidRevenue() (decimal.Decimal, error)
	OutstandingBalance() (decimal.Decimal, error)
	// MonthlyRevenue sums payments by calendar month since the given time,
	// keyed "YYYY-MM".
	MonthlyRevenue(since time.Time) (map[string]decimal.Decimal, error)
}
