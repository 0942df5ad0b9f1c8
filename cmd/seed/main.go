package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"etik/internal/checkin"
	"etik/internal/operators"
	"etik/internal/shared/config"
	"etik/internal/shared/database"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db       *database.DB
	password string
	eventID  int64
}

func main() {
	var (
		skipClean bool
		noScans   bool
		password  string
		eventID   int64
	)
	flagSet := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	flagSet.BoolVar(&skipClean, "skip-clean", false, "keep existing operators and scan logs")
	flagSet.BoolVar(&noScans, "no-scans", false, "seed operators only")
	flagSet.StringVar(&password, "password", "qwerty", "password for every seeded operator")
	flagSet.Int64Var(&eventID, "event", 1, "ETIK event ID the sample scan history belongs to")
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatalf("Invalid flags: %v", err)
	}

	fmt.Println("🌱 Starting ETIK station seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, password: password, eventID: eventID}

	if !skipClean {
		fmt.Println("\n🧹 Cleaning database...")
		if err := seeder.CleanDatabase(); err != nil {
			log.Fatalf("Failed to clean database: %v", err)
		}
		fmt.Println("✅ Database cleaned successfully")
	}

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(!noScans); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Printf("\n🎉 Seeding completed! Log in as owner@etik.local / %s\n", password)
}

// CleanDatabase truncates the station tables
func (s *Seeder) CleanDatabase() error {
	tables := []string{"scan_logs", "operators"}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds operators and a short scan history
func (s *Seeder) SeedAll(withScans bool) error {
	ctx := context.Background()

	operatorIDs, err := s.SeedOperators()
	if err != nil {
		return fmt.Errorf("failed to seed operators: %w", err)
	}

	if withScans {
		if err := s.SeedScanLogs(operatorIDs["gate"]); err != nil {
			return fmt.Errorf("failed to seed scan logs: %w", err)
		}
	}

	// Drop cached station state so stations start idle
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedOperators creates one owner and two gate staff accounts
func (s *Seeder) SeedOperators() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding operators...")

	ids := make(map[string]uuid.UUID)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	data := []struct {
		key       string
		firstName string
		lastName  string
		email     string
		role      operators.Role
	}{
		{"owner", "Event", "Owner", "owner@etik.local", operators.RoleOwner},
		{"gate", "Gate", "One", "gate1@etik.local", operators.RoleStaff},
		{"gate2", "Gate", "Two", "gate2@etik.local", operators.RoleStaff},
	}

	for _, d := range data {
		op := operators.Operator{
			ID:        uuid.New(),
			FirstName: d.firstName,
			LastName:  d.lastName,
			Email:     d.email,
			Password:  string(hashedPassword),
			Role:      d.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&op).Error; err != nil {
			return nil, fmt.Errorf("failed to create operator %s: %w", d.email, err)
		}

		ids[d.key] = op.ID
		fmt.Printf("    ✅ Created operator: %s (%s)\n", op.Email, op.Role)
	}

	return ids, nil
}

// SeedScanLogs records a few past station actions for the owner scan view
func (s *Seeder) SeedScanLogs(operatorID uuid.UUID) error {
	fmt.Println("  🎫 Seeding scan history...")

	now := time.Now()
	logs := []checkin.ScanLog{
		{ECode: "E-1001", StationID: "gate-1", Mode: checkin.ModeCheckIn, Action: checkin.ActionLookup, Source: "qr", TransactionID: 500, EnabledCount: 2, TicketCount: 3, Outcome: checkin.OutcomeOK},
		{ECode: "E-1001", StationID: "gate-1", Mode: checkin.ModeCheckIn, Action: checkin.ActionSubmit, Source: "qr", TransactionID: 500, TicketCount: 2, Outcome: checkin.OutcomeOK},
		{ECode: "E-1002", StationID: "gate-1", Mode: checkin.ModeCheckIn, Action: checkin.ActionLookup, Source: "manual", Outcome: checkin.OutcomeNotFound, Error: "transaction not found"},
		{ECode: "E-1001", StationID: "gate-2", Mode: checkin.ModeCheckOut, Action: checkin.ActionLookup, Source: "qr", TransactionID: 500, EnabledCount: 2, TicketCount: 3, Outcome: checkin.OutcomeOK},
	}

	for i := range logs {
		logs[i].EventID = s.eventID
		logs[i].OperatorID = operatorID
		logs[i].CreatedAt = now.Add(time.Duration(i-len(logs)) * time.Minute)
	}

	if err := s.db.PostgreSQL.Create(&logs).Error; err != nil {
		return fmt.Errorf("failed to create scan logs: %w", err)
	}

	fmt.Printf("    ✅ Created %d scan log entries\n", len(logs))
	return nil
}
