package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rentledger/backend/internal/domain/identity"
	"github.com/rentledger/backend/internal/domain/rental"
	"github.com/rentledger/backend/internal/infrastructure/config"
	"github.com/rentledger/backend/internal/infrastructure/logger"
	"github.com/rentledger/backend/internal/infrastructure/persistence"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Seeds a demo landlord account with tenants, two months of electricity
// readings and a set of household expenses. Intended for development
// databases only.

const (
	seedUsername = "landlord"
	seedPassword = "landlord123"
)

type tenantSeed struct {
	name      string
	roomNo    string
	contactNo string
	joined    time.Time
	rent      string
}

type readingSeed struct {
	roomNo   string
	month    int
	year     int
	previous string
	current  string
	rate     string
	paid     bool
}

type expenseSeed struct {
	date        time.Time
	amount      string
	description string
	category    string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{Level: "info", Format: "console", Output: "stdout"})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	if cfg.App.Env == "production" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal("Auto migration failed", zap.Error(err))
	}

	ctx := context.Background()
	userRepo := persistence.NewGormUserRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	readingRepo := persistence.NewGormReadingRepository(db.DB)
	categoryRepo := persistence.NewGormExpenseCategoryRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)

	owner, err := identity.NewUser(seedUsername, "landlord@example.com", seedPassword)
	if err != nil {
		log.Fatal("Failed to build demo account", zap.Error(err))
	}
	if err := userRepo.Save(ctx, owner); err != nil {
		log.Fatal("Failed to save demo account (already seeded?)", zap.Error(err))
	}
	log.Info("Demo account created",
		zap.String("username", seedUsername),
		zap.String("password", seedPassword),
	)

	tenantSeeds := []tenantSeed{
		{"Aarav Gupta", "R101", "9876543210", date(2024, 8, 1), "7500.00"},
		{"Bela Singh", "R102", "9876543211", date(2025, 1, 15), "6800.00"},
		{"Chirag Das", "R201", "9876543212", date(2024, 11, 1), "8200.00"},
		{"Deepa Kadam", "R202", "9876543213", date(2025, 3, 1), "7100.00"},
		{"Esha Patil", "R301", "9876543214", date(2024, 7, 1), "9000.00"},
		{"Fahad Khan", "R302", "9876543215", date(2025, 4, 10), "6500.00"},
		{"Gita Menon", "R401", "9876543216", date(2024, 10, 1), "8500.00"},
	}

	tenantsByRoom := make(map[string]uuid.UUID, len(tenantSeeds))
	for _, ts := range tenantSeeds {
		tenant, err := rental.NewTenant(owner.ID, ts.name, ts.roomNo, ts.contactNo, ts.joined, decimal.RequireFromString(ts.rent))
		if err != nil {
			log.Fatal("Invalid tenant seed", zap.String("room_no", ts.roomNo), zap.Error(err))
		}
		if err := tenantRepo.Save(ctx, tenant); err != nil {
			log.Fatal("Failed to save tenant", zap.String("room_no", ts.roomNo), zap.Error(err))
		}
		tenantsByRoom[ts.roomNo] = tenant.ID
	}
	log.Info("Tenants created", zap.Int("count", len(tenantSeeds)))

	readingSeeds := []readingSeed{
		// September 2025, all paid
		{"R101", 9, 2025, "100", "220", "6.5", true},
		{"R102", 9, 2025, "50", "150", "6.5", true},
		{"R201", 9, 2025, "300", "410", "7", true},
		{"R202", 9, 2025, "150", "260", "7", true},
		{"R301", 9, 2025, "500", "650", "6", true},
		{"R302", 9, 2025, "200", "270", "6", true},
		{"R401", 9, 2025, "400", "520", "7.5", true},
		// October 2025, mixed payment status
		{"R101", 10, 2025, "220", "350", "6.5", false},
		{"R102", 10, 2025, "150", "240", "6.5", false},
		{"R201", 10, 2025, "410", "500", "7", true},
		{"R202", 10, 2025, "260", "360", "7", true},
		{"R301", 10, 2025, "650", "800", "6", false},
		{"R302", 10, 2025, "270", "330", "6", true},
		{"R401", 10, 2025, "520", "650", "7.5", false},
	}

	for _, rs := range readingSeeds {
		period, err := rental.NewPeriod(rs.month, rs.year)
		if err != nil {
			log.Fatal("Invalid reading seed period", zap.String("room_no", rs.roomNo), zap.Error(err))
		}
		reading, err := rental.NewElectricityReading(
			tenantsByRoom[rs.roomNo],
			period,
			decimal.RequireFromString(rs.previous),
			decimal.RequireFromString(rs.current),
			decimal.RequireFromString(rs.rate),
		)
		if err != nil {
			log.Fatal("Invalid reading seed", zap.String("room_no", rs.roomNo), zap.Error(err))
		}
		reading.SetPaid(rs.paid)
		if err := readingRepo.Save(ctx, reading); err != nil {
			log.Fatal("Failed to save reading", zap.String("room_no", rs.roomNo), zap.Error(err))
		}
	}
	log.Info("Electricity readings created", zap.Int("count", len(readingSeeds)))

	categorySeeds := map[string]string{
		"Maintenance":        "General repairs and upkeep",
		"Supplies":           "Cleaning and household supplies",
		"Utilities (Common)": "Internet, common area lighting",
		"Capital Repair":     "Major investments (e.g., Water heater)",
	}
	categoriesByName := make(map[string]*uuid.UUID, len(categorySeeds))
	for name, description := range categorySeeds {
		category, err := rental.NewExpenseCategory(owner.ID, name, description)
		if err != nil {
			log.Fatal("Invalid category seed", zap.String("name", name), zap.Error(err))
		}
		if err := categoryRepo.Save(ctx, category); err != nil {
			log.Fatal("Failed to save category", zap.String("name", name), zap.Error(err))
		}
		id := category.ID
		categoriesByName[name] = &id
	}
	log.Info("Expense categories created", zap.Int("count", len(categorySeeds)))

	expenseSeeds := []expenseSeed{
		{date(2025, 10, 5), "1500.00", "Plumbing service for common bathroom", "Maintenance"},
		{date(2025, 10, 10), "350.00", "Cleaning liquid and sponges", "Supplies"},
		{date(2025, 9, 28), "4200.00", "Replacement of main water heater unit", "Capital Repair"},
		{date(2025, 10, 15), "800.00", "Broadband internet subscription for common area", "Utilities (Common)"},
		{date(2025, 10, 20), "600.00", "Electrical socket repair in R101", "Maintenance"},
		{date(2025, 9, 1), "300.00", "Light bulbs for hallway", "Supplies"},
		{date(2025, 9, 15), "1200.00", "Annual fire extinguisher servicing", "Maintenance"},
		{date(2025, 10, 25), "450.00", "Common area sweeping and cleaning service", "Maintenance"},
		{date(2025, 10, 30), "120.00", "Dustbin liners and trash bags", "Supplies"},
		{date(2025, 8, 1), "150.00", "Gardening tools purchase", "Supplies"},
	}

	for _, es := range expenseSeeds {
		expense, err := rental.NewExpense(owner.ID, categoriesByName[es.category], decimal.RequireFromString(es.amount), es.date, es.description)
		if err != nil {
			log.Fatal("Invalid expense seed", zap.String("description", es.description), zap.Error(err))
		}
		if err := expenseRepo.Save(ctx, expense); err != nil {
			log.Fatal("Failed to save expense", zap.String("description", es.description), zap.Error(err))
		}
	}
	log.Info("Expenses created", zap.Int("count", len(expenseSeeds)))

	log.Info("Seeding complete")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
