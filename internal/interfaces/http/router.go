package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/intecelectric/crm-api/internal/application/activity"
	"github.com/intecelectric/crm-api/internal/application/auth"
	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/application/crew"
	"github.com/intecelectric/crm-api/internal/application/customers"
	"github.com/intecelectric/crm-api/internal/application/dashboard"
	"github.com/intecelectric/crm-api/internal/application/jobs"
	"github.com/intecelectric/crm-api/internal/application/settings"
	"github.com/intecelectric/crm-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	CustomerUC  *customers.UseCase
	JobUC       *jobs.UseCase
	InvoiceUC   *billing.InvoiceUseCase
	CrewUC      *crew.UseCase
	ActivityUC  *activity.UseCase
	SettingsUC  *settings.UseCase
	DashboardUC *dashboard.UseCase
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login public, the rest behind the token)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Get("/auth/me", authHandler.Me)
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customersGroup := protected.Group("/customers")
	customersGroup.Post("/", customerHandler.Create)
	customersGroup.Get("/", customerHandler.List)
	customersGroup.Get("/:id", customerHandler.GetByID)
	customersGroup.Put("/:id", customerHandler.Update)
	customersGroup.Delete("/:id", customerHandler.Delete)

	// Jobs (and crew assignment)
	jobHandler := NewJobHandler(deps.JobUC)
	jobsGroup := protected.Group("/jobs")
	jobsGroup.Post("/", jobHandler.Create)
	jobsGroup.Get("/", jobHandler.List)
	jobsGroup.Get("/:id", jobHandler.GetByID)
	jobsGroup.Put("/:id", jobHandler.Update)
	jobsGroup.Delete("/:id", jobHandler.Delete)
	jobsGroup.Post("/:id/crew", jobHandler.AssignCrew)
	jobsGroup.Delete("/:id/crew/:crewId", jobHandler.RemoveCrew)

	// Invoices (payments, send, pdf)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoicesGroup := protected.Group("/invoices")
	invoicesGroup.Post("/", invoiceHandler.Create)
	invoicesGroup.Get("/", invoiceHandler.List)
	invoicesGroup.Get("/:id", invoiceHandler.GetByID)
	invoicesGroup.Put("/:id", invoiceHandler.Update)
	invoicesGroup.Delete("/:id", invoiceHandler.Delete)
	invoicesGroup.Post("/:id/payments", invoiceHandler.RecordPayment)
	invoicesGroup.Post("/:id/send", invoiceHandler.Send)
	invoicesGroup.Get("/:id/pdf", invoiceHandler.PDF)

	// Crew roster
	crewHandler := NewCrewHandler(deps.CrewUC)
	crewGroup := protected.Group("/crew")
	crewGroup.Post("/", crewHandler.Create)
	crewGroup.Get("/", crewHandler.List)
	crewGroup.Get("/:id", crewHandler.GetByID)
	crewGroup.Put("/:id", crewHandler.Update)
	crewGroup.Delete("/:id", crewHandler.Deactivate)

	// Audit trail
	activityHandler := NewActivityHandler(deps.ActivityUC)
	protected.Get("/activities", activityHandler.List)

	// Settings (writes restricted)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settingsGroup := protected.Group("/settings")
	settingsGroup.Get("/", settingsHandler.GetAll)
	settingsGroup.Put("/", RequireRole(entity.RoleAdmin, entity.RoleManager), settingsHandler.Update)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Overview)
}
