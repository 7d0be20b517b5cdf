package db

import (
	"errors"
	"fmt"

	"goldlinks/internal/config"
	"goldlinks/pkg/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg config.DBConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Error),
		DisableForeignKeyConstraintWhenMigrating: false,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// AutoMigrate runs database migrations using GORM
func AutoMigrate(db *gorm.DB) error {
	log.Info().Msg("Running GORM AutoMigrate...")

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		return fmt.Errorf("failed to run GORM AutoMigrate: %w", err)
	}

	if err := createCustomIndexes(db); err != nil {
		log.Warn().Err(err).Msg("Failed to create some custom indexes")
	}

	log.Info().Msg("GORM AutoMigrate completed successfully")
	return nil
}

// createCustomIndexes creates indexes that GORM does not derive from tags
func createCustomIndexes(db *gorm.DB) error {
	indexes := []string{
		// One structured row per store and day
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_store_hours_store_day ON store_hours(store_id, day_of_week) WHERE deleted_at IS NULL`,

		// Comparison queries filter on karat and style and sort on price
		`CREATE INDEX IF NOT EXISTS idx_products_compare ON products(karat, style, price) WHERE deleted_at IS NULL`,

		// Store name search
		`CREATE INDEX IF NOT EXISTS idx_stores_name_lower ON stores(LOWER(name))`,
	}

	var failed int
	for _, idx := range indexes {
		if err := db.Exec(idx).Error; err != nil {
			failed++
			log.Warn().Err(err).Str("statement", idx).Msg("Failed to create index")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d custom indexes failed", failed, len(indexes))
	}
	return nil
}

// SeedInitialData creates the system administrator when one is configured
func SeedInitialData(db *gorm.DB, adminEmail, adminPassword string) error {
	if adminEmail == "" || adminPassword == "" {
		log.Info().Msg("No admin credentials configured, skipping seed")
		return nil
	}

	var existing models.User
	err := db.Where("LOWER(email) = LOWER(?)", adminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing admin: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		Email:    adminEmail,
		Password: string(hash),
		Name:     "System Administrator",
		Role:     models.RoleSystemAdmin,
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info().Str("email", adminEmail).Msg("Admin user created successfully")
	return nil
}

// RunMigrations is the main migration function called from main.go
func RunMigrations(db *gorm.DB, cfg *config.Config) error {
	log.Info().Msg("Starting database migrations...")

	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("AutoMigrate failed: %w", err)
	}

	if err := SeedInitialData(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("initial data seeding failed: %w", err)
	}

	log.Info().Msg("All migrations completed successfully")
	return nil
}
