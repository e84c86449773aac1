package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/models"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB wraps the gorm.DB instance with additional functionality
type DB struct {
	*gorm.DB
	config *config.DatabaseConfig
}

// New creates a new database connection
func New(cfg *config.DatabaseConfig, l *log.Logger) (*DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.GetDSN())
	case "sqlite":
		dialector = sqlite.Open(cfg.GetDSN())
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	// Configure GORM
	gormConfig := &gorm.Config{
		Logger: newGormLogger(l),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	// Open database connection
	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure connection pool
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)

	// Test the connection
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{
		DB:     db,
		config: cfg,
	}, nil
}

// newGormLogger routes gorm's output through the application logger at a
// matching level.
func newGormLogger(l *log.Logger) logger.Interface {
	if l == nil {
		return logger.Default.LogMode(logger.Silent)
	}

	level := logger.Warn
	switch l.GetLevel().String() {
	case "debug", "trace":
		level = logger.Info
	case "error", "fatal", "panic":
		level = logger.Error
	}

	return logger.New(l, logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

// Migrate runs database migrations
func (db *DB) Migrate() error {
	if err := models.AutoMigrate(db.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := models.CreateIndexes(db.DB); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// SeedInitialData loads the attraction catalog and the demo user. Rows that
// already exist are left untouched.
func (db *DB) SeedInitialData(catalog planner.Catalog, demoUserID string) error {
	for _, attraction := range models.SeedAttractions(catalog) {
		var existing models.Attraction
		result := db.Where("id = ?", attraction.ID).First(&existing)
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := db.Create(&attraction).Error; err != nil {
				return fmt.Errorf("failed to seed attraction %s: %w", attraction.ID, err)
			}
		} else if result.Error != nil {
			return fmt.Errorf("failed to look up attraction %s: %w", attraction.ID, result.Error)
		}
	}

	if demoUserID != "" {
		demo := models.User{
			ID:       demoUserID,
			Email:    demoUserID + "@demo.local",
			FullName: "Demo User",
		}
		if err := db.Where(models.User{ID: demoUserID}).Attrs(demo).FirstOrCreate(&models.User{}).Error; err != nil {
			return fmt.Errorf("failed to seed demo user: %w", err)
		}
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck performs a health check on the database
func (db *DB) HealthCheck(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx)
}

// Transaction executes a function within a database transaction
func (db *DB) Transaction(ctx context.Context, fn func(*gorm.DB) error) error {
	return db.DB.WithContext(ctx).Transaction(fn)
}
