// seed bootstraps a fresh database: operator accounts, the default company
// settings and a couple of sample customers. Safe to re-run; writes are
// upserts or existence-checked inserts.
//
// Usage: go run ./cmd/seed
// Reads the same environment variables as the API (DB_*, DATABASE_URL).
// The admin password comes from SEED_ADMIN_PASSWORD, default "changeme123".
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/intecelectric/crm-api/internal/domain/entity"
	"github.com/intecelectric/crm-api/internal/infrastructure/postgres"
	"github.com/intecelectric/crm-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "changeme123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash admin password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	userRepo := postgres.NewUserRepository(pool)
	users := []*entity.User{
		{
			ID:           uuid.New().String(),
			Email:        "marcus@intecelectricfl.com",
			PasswordHash: string(hash),
			Name:         "Marcus",
			Role:         entity.RoleAdmin,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.New().String(),
			Email:        "office@intecelectricfl.com",
			PasswordHash: string(hash),
			Name:         "Office",
			Role:         entity.RoleStaff,
			Active:       true,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, u := range users {
		if err := userRepo.Upsert(u); err != nil {
			fmt.Fprintf(os.Stderr, "seed user %s: %v\n", u.Email, err)
			os.Exit(1)
		}
	}

	settingRepo := postgres.NewSettingRepository(pool)
	defaults := map[string]string{
		entity.SettingCompanyName:    "Intec Electric LLC",
		entity.SettingCompanyAddress: "1234 Industrial Blvd",
		entity.SettingCompanyCity:    "Cape Coral",
		entity.SettingCompanyState:   "FL",
		entity.SettingCompanyZip:     "33909",
		entity.SettingCompanyPhone:   "(239) 555-0142",
		entity.SettingCompanyEmail:   "marcus@intecelectricfl.com",
		entity.SettingWorkOrderEmail: "marcus@intecelectricfl.com",
		entity.SettingDefaultTaxRate: "7",
		entity.SettingPaymentTerms:   "Net 30",
		entity.SettingInvoiceFooter:  "Thank you for your business!",
	}
	for key, value := range defaults {
		if err := settingRepo.Upsert(key, value); err != nil {
			fmt.Fprintf(os.Stderr, "seed setting %s: %v\n", key, err)
			os.Exit(1)
		}
	}

	// Sample customers carry fixed IDs so a re-run skips them.
	customerRepo := postgres.NewCustomerRepository(pool)
	samples := []*entity.Customer{
		{
			ID:        "00000000-0000-0000-0000-00000000c001",
			Name:      "Harbor Point Marina",
			Email:     "office@harborpointmarina.com",
			Phone:     "(239) 555-0187",
			Company:   "Harbor Point Marina LLC",
			City:      "Cape Coral",
			State:     "FL",
			Type:      entity.CustomerCommercial,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "00000000-0000-0000-0000-00000000c002",
			Name:      "Gulf Breeze HOA",
			Email:     "manager@gulfbreezehoa.org",
			Phone:     "(239) 555-0164",
			City:      "Fort Myers",
			State:     "FL",
			Type:      entity.CustomerPropertyManager,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, c := range samples {
		existing, err := customerRepo.GetByID(c.ID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "check sample customer %s: %v\n", c.Name, err)
			os.Exit(1)
		}
		if existing != nil {
			continue
		}
		if err := customerRepo.Create(c); err != nil {
			fmt.Fprintf(os.Stderr, "seed sample customer %s: %v\n", c.Name, err)
			os.Exit(1)
		}
	}

	fmt.Println("seed complete: users, default settings, sample customers")
}
