package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo runs the aggregate queries behind the overview page.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository builds the adapter. Pass pool or tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountCustomers returns the total customer count.
func (r *DashboardRepo) CountCustomers() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM customers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return count, nil
}

// CountJobsByStatus counts jobs in any of the given statuses; with no
// statuses it counts all jobs.
func (r *DashboardRepo) CountJobsByStatus(statuses ...string) (int, error) {
	var count int
	var err error
	if len(statuses) == 0 {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM jobs`).Scan(&count)
	} else {
		err = r.q.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM jobs WHERE status = ANY($1)`, statuses).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count jobs: %w", err)
	}
	return count, nil
}

// CountPendingWorkOrders counts open work orders (not completed or cancelled).
func (r *DashboardRepo) CountPendingWorkOrders() (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM jobs WHERE is_work_order AND status NOT IN ($1, $2)`,
		entity.JobStatusCompleted, entity.JobStatusCancelled).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count pending work orders: %w", err)
	}
	return count, nil
}

// CountInvoicesByStatus counts invoices in any of the given statuses; with no
// statuses it counts all invoices.
func (r *DashboardRepo) CountInvoicesByStatus(statuses ...string) (int, error) {
	var count int
	var err error
	if len(statuses) == 0 {
		err = r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM invoices`).Scan(&count)
	} else {
		err = r.q.QueryRow(context.Background(),
			`SELECT COUNT(*) FROM invoices WHERE status = ANY($1)`, statuses).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return count, nil
}

// InvoiceTotalsByStatus returns count, total and balance due grouped by status.
func (r *DashboardRepo) InvoiceTotalsByStatus() ([]repository.StatusTotals, error) {
	query := `
		SELECT status, COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(balance_due), 0)
		FROM invoices GROUP BY status ORDER BY status`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("invoice totals by status: %w", err)
	}
	defer rows.Close()

	var list []repository.StatusTotals
	for rows.Next() {
		var st repository.StatusTotals
		if err := rows.Scan(&st.Status, &st.Count, &st.Total, &st.BalanceDue); err != nil {
			return nil, fmt.Errorf("scan status totals: %w", err)
		}
		list = append(list, st)
	}
	return list, rows.Err()
}

// PaidRevenue sums the totals of PAID invoices.
func (r *DashboardRepo) PaidRevenue() (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(total), 0) FROM invoices WHERE status = $1`,
		entity.InvoiceStatusPaid).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("paid revenue: %w", err)
	}
	return sum, nil
}

// OutstandingBalance sums balance due across SENT, PARTIAL and OVERDUE.
func (r *DashboardRepo) OutstandingBalance() (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(balance_due), 0) FROM invoices WHERE status IN ($1, $2, $3)`,
		entity.InvoiceStatusSent, entity.InvoiceStatusPartial, entity.InvoiceStatusOverdue).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("outstanding balance: %w", err)
	}
	return sum, nil
}

// MonthlyRevenue sums payments by calendar month since the given time, keyed
// "YYYY-MM".
func (r *DashboardRepo) MonthlyRevenue(since time.Time) (map[string]decimal.Decimal, error) {
	query := `
		SELECT to_char(date_trunc('month', paid_at), 'YYYY-MM'), COALESCE(SUM(amount), 0)
		FROM payments WHERE paid_at >= $1
		GROUP BY 1 ORDER BY 1`
	rows, err := r.q.Query(context.Background(), query, since)
	if err != nil {
		return nil, fmt.Errorf("monthly revenue: %w", err)
	}
	defer rows.Close()

	revenue := make(map[string]decimal.Decimal)
	for rows.Next() {
		var month string
		var sum decimal.Decimal
		if err := rows.Scan(&month, &sum); err != nil {
			return nil, fmt.Errorf("scan monthly revenue: %w", err)
		}
		revenue[month] = sum
	}
	return revenue, rows.Err()
}
