package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/intecelectric/crm-api/internal/application/activity"
	"github.com/intecelectric/crm-api/internal/application/auth"
	"github.com/intecelectric/crm-api/internal/application/billing"
	"github.com/intecelectric/crm-api/internal/application/crew"
	"github.com/intecelectric/crm-api/internal/application/customers"
	"github.com/intecelectric/crm-api/internal/application/dashboard"
	"github.com/intecelectric/crm-api/internal/application/jobs"
	"github.com/intecelectric/crm-api/internal/application/settings"
	infraemail "github.com/intecelectric/crm-api/internal/infrastructure/email"
	infrapdf "github.com/intecelectric/crm-api/internal/infrastructure/pdf"
	"github.com/intecelectric/crm-api/internal/infrastructure/postgres"
	httpRouter "github.com/intecelectric/crm-api/internal/interfaces/http"
	"github.com/intecelectric/crm-api/pkg/config"
	"github.com/intecelectric/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to PostgreSQL")
	}
	defer pool.Close()

	customerRepo := postgres.NewCustomerRepository(pool)
	jobRepo := postgres.NewJobRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	crewRepo := postgres.NewCrewRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	settingRepo := postgres.NewSettingRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	emailSender := infraemail.NewSMTPSender(cfg.SMTP, log)
	pdfGenerator := infrapdf.NewMarotoInvoiceGenerator()

	authUC := auth.NewUseCase(userRepo, cfg.JWT)
	customerUC := customers.NewUseCase(customerRepo)
	jobUC := jobs.NewUseCase(txRunner, jobRepo, customerRepo, crewRepo, activityRepo, settingRepo, emailSender, log)
	invoiceUC := billing.NewInvoiceUseCase(
		txRunner, invoiceRepo, customerRepo, jobRepo, activityRepo, settingRepo,
		emailSender, pdfGenerator, log,
	)
	crewUC := crew.NewUseCase(crewRepo)
	activityUC := activity.NewUseCase(activityRepo)
	settingsUC := settings.NewUseCase(settingRepo)
	dashboardUC := dashboard.NewUseCase(dashboardRepo, activityRepo, jobRepo)

	// Daily overdue sweep runs for the lifetime of the process.
	sweeper := billing.NewOverdueSweeper(txRunner, log, billing.SweeperConfig{
		Interval: cfg.Sweeper.Interval,
		Timeout:  cfg.Sweeper.Timeout,
		Batch:    cfg.Sweeper.Batch,
	})
	go sweeper.RunForever(ctx)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CustomerUC:  customerUC,
		JobUC:       jobUC,
		InvoiceUC:   invoiceUC,
		CrewUC:      crewUC,
		ActivityUC:  activityUC,
		SettingsUC:  settingsUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")
	stop() // stops the sweeper

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
