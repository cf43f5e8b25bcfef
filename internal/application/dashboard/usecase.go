package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/domain/repository"
)

// Overview is the assembled dashboard payload before DTO mapping.
type Overview struct {
	TotalCustomers     int
	ActiveJobs         int
	CompletedJobs      int
	TotalJobs          int
	OverdueInvoices    int
	PendingWorkOrders  int
	PaidRevenue        decimal.Decimal
	OutstandingBalance decimal.Decimal
	InvoicesByStatus   []repository.StatusTotals
	RecentActivities   []*entity.Activity
	RecentJobs         []*entity.Job
	MonthlyRevenue     map[string]decimal.Decimal
}

// UseCase assembles the overview page from aggregate queries.
type UseCase struct {
	dashboardRepo repository.DashboardRepository
	activityRepo  repository.ActivityRepository
	jobRepo       repository.JobRepository
}

// NewUseCase wires the use case.
func NewUseCase(
	dashboardRepo repository.DashboardRepository,
	activityRepo repository.ActivityRepository,
	jobRepo repository.JobRepository,
) *UseCase {
	return &UseCase{dashboardRepo: dashboardRepo, activityRepo: activityRepo, jobRepo: jobRepo}
}

// Overview gathers the headline stats, status rollups, recent activity and
// the trailing six months of revenue.
func (uc *UseCase) Overview(ctx context.Context) (*Overview, error) {
	var (
		o   Overview
		err error
	)

	if o.TotalCustomers, err = uc.dashboardRepo.CountCustomers(); err != nil {
		return nil, err
	}
	if o.ActiveJobs, err = uc.dashboardRepo.CountJobsByStatus(
		entity.JobStatusScheduled, entity.JobStatusInProgress,
	); err != nil {
		return nil, err
	}
	if o.CompletedJobs, err = uc.dashboardRepo.CountJobsByStatus(entity.JobStatusCompleted); err != nil {
		return nil, err
	}
	if o.TotalJobs, err = uc.dashboardRepo.CountJobsByStatus(); err != nil {
		return nil, err
	}
	if o.PendingWorkOrders, err = uc.dashboardRepo.CountPendingWorkOrders(); err != nil {
		return nil, err
	}
	if o.OverdueInvoices, err = uc.dashboardRepo.CountInvoicesByStatus(entity.InvoiceStatusOverdue); err != nil {
		return nil, err
	}
	if o.PaidRevenue, err = uc.dashboardRepo.PaidRevenue(); err != nil {
		return nil, err
	}
	if o.OutstandingBalance, err = uc.dashboardRepo.OutstandingBalance(); err != nil {
		return nil, err
	}
	if o.InvoicesByStatus, err = uc.dashboardRepo.InvoiceTotalsByStatus(); err != nil {
		return nil, err
	}
	if o.RecentActivities, _, err = uc.activityRepo.List(repository.ActivityFilter{Limit: 10}); err != nil {
		return nil, err
	}
	if o.RecentJobs, _, err = uc.jobRepo.List(repository.JobFilter{Limit: 5}); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, -6, 0)
	if o.MonthlyRevenue, err = uc.dashboardRepo.MonthlyRevenue(since); err != nil {
		return nil, err
	}
	return &o, nil
}
