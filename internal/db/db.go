package db

import (
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sujalbistaa/zevina/internal/models"
)

// DefaultURL is used when DATABASE_URL is empty.
const DefaultURL = "sqlite://zevina.db"

// Init opens a GORM connection for dbURL, which must start with
// "postgres://" or "sqlite://".
func Init(dbURL string, log *zap.Logger) (*gorm.DB, error) {
	if dbURL == "" {
		dbURL = DefaultURL
		log.Info("DATABASE_URL not set, using default", zap.String("url", dbURL))
	}

	var dialector gorm.Dialector
	maxOpen := 100

	switch {
	case strings.HasPrefix(dbURL, "postgres://"):
		dialector = postgres.Open(dbURL)
		log.Info("Connecting to PostgreSQL database")
	case strings.HasPrefix(dbURL, "sqlite://"):
		dsn := strings.TrimPrefix(dbURL, "sqlite://")
		dialector = sqlite.Open(dsn)
		// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY.
		maxOpen = 1
		log.Info("Connecting to SQLite database", zap.String("path", dsn))
	default:
		return nil, fmt.Errorf("invalid DATABASE_URL %q: must start with 'postgres://' or 'sqlite://'", dbURL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(maxOpen)

	log.Info("Database connection established")
	return db, nil
}

// Migrate creates or updates the tables used by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Entry{})
}
