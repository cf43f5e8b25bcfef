package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/dashboard"
	"github.com/intecelectric/crm-api/internal/application/dto"
)

// DashboardHandler serves the overview page aggregates.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview GET /api/dashboard
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	o, err := h.uc.Overview(c.Context())
	if err != nil {
		return writeError(c, err)
	}

	out := dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalCustomers:     o.TotalCustomers,
			ActiveJobs:         o.ActiveJobs,
			CompletedJobs:      o.CompletedJobs,
			TotalJobs:          o.TotalJobs,
			OverdueInvoices:    o.OverdueInvoices,
			PendingWorkOrders:  o.PendingWorkOrders,
			TotalRevenue:       o.PaidRevenue,
			OutstandingBalance: o.OutstandingBalance,
		},
		RecentActivities: activityResponses(o.RecentActivities),
		MonthlyRevenue:   o.MonthlyRevenue,
	}
	for _, st := range o.InvoicesByStatus {
		out.InvoicesByStatus = append(out.InvoicesByStatus, dto.InvoiceStatusRollup{
			Status:     st.Status,
			Count:      st.Count,
			Total:      st.Total,
			BalanceDue: st.BalanceDue,
		})
	}
	for _, job := range o.RecentJobs {
		out.RecentJobs = append(out.RecentJobs, jobResponse(job))
	}
	return c.JSON(out)
}
