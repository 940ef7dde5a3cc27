package database

import (
	"fmt"
	"os"

	"zap-shift/logger"
	"zap-shift/models/log"
	"zap-shift/models/parcel"
	"zap-shift/models/payment"
	"zap-shift/models/rider"
	"zap-shift/models/tracking"
	"zap-shift/models/user"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection with auto migration and indexing
func InitDB() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil {
		logger.Error("Error loading .env file", err)
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	database := os.Getenv("DB_DATABASE")
	username := os.Getenv("DB_USERNAME")
	password := os.Getenv("DB_PASSWORD")
	sslmode := os.Getenv("DB_SSLMODE")

	if sslmode == "" {
		sslmode = "disable"
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, username, password, database, sslmode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database")

	if err := Migrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	return db, nil
}

// Migrate runs auto migration for all models in dependency order.
func Migrate(db *gorm.DB) error {
	// Stage 1: independent records
	stage1Models := []interface{}{
		&user.User{},
		&rider.Rider{},
		&tracking.TrackingEvent{},
	}

	for _, model := range stage1Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Stage 2: records referencing stage 1
	stage2Models := []interface{}{
		&parcel.Parcel{},
		&payment.Payment{},
	}

	for _, model := range stage2Models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	// Logging
	if err := db.AutoMigrate(&log.Log{}); err != nil {
		return fmt.Errorf("failed to migrate %T: %w", &log.Log{}, err)
	}

	return nil
}

// createIndexes creates additional indexes for better performance
func createIndexes(db *gorm.DB) error {
	// Parcel indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_sender_email ON parcels(sender_email)").Error; err != nil {
		return fmt.Errorf("failed to create parcel sender_email index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_delivery_status ON parcels(delivery_status)").Error; err != nil {
		return fmt.Errorf("failed to create parcel delivery_status index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_parcels_created_at ON parcels(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create parcel created_at index: %w", err)
	}

	// Tracking event indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_tracking_events_tracking_id ON tracking_events(tracking_id)").Error; err != nil {
		return fmt.Errorf("failed to create tracking_events tracking_id index: %w", err)
	}

	// Payment indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_payments_payer_email ON payments(payer_email)").Error; err != nil {
		return fmt.Errorf("failed to create payment payer_email index: %w", err)
	}

	// Rider indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_riders_district ON riders(district)").Error; err != nil {
		return fmt.Errorf("failed to create rider district index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_riders_status ON riders(status)").Error; err != nil {
		return fmt.Errorf("failed to create rider status index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}
