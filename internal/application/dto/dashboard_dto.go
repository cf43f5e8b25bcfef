package dto

import "github.com/shopspring/decimal"

// DashboardStats headline counters.
type DashboardStats struct {
	TotalCustomers     int             `json:"total_customers"`
	ActiveJobs         int             `json:"active_jobs"`
	CompletedJobs      int             `json:"completed_jobs"`
	TotalJobs          int             `json:"total_jobs"`
	OverdueInvoices    int             `json:"overdue_invoices"`
	PendingWorkOrders  int             `json:"pending_work_orders"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// InvoiceStatusRollup totals grouped by invoice status.
type InvoiceStatusRollup struct {
	Status     string          `json:"status"`
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	BalanceDue decimal.Decimal `json:"balance_due"`
}

// DashboardResponse the overview page payload.
type DashboardResponse struct {
	Stats            DashboardStats             `json:"stats"`
	InvoicesByStatus []InvoiceStatusRollup      `json:"invoices_by_status"`
	RecentActivities []*ActivityResponse        `json:"recent_activities"`
	RecentJobs       []*JobResponse             `json:"recent_jobs"`
	MonthlyRevenue   map[string]decimal.Decimal `json:"monthly_revenue"`
}
