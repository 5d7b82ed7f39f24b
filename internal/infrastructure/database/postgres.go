package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/insights/internal/config"
	"github.com/sangkips/insights/internal/domain/entity"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB opens the accounts database
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)

	log.Info("connected to accounts database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the account tables
func AutoMigrate(db *gorm.DB, log *zap.Logger) error {
	if err := db.AutoMigrate(&entity.User{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	log.Info("database migrations completed")
	return nil
}

// SeedDemoUsers creates the configured demo accounts that do not exist yet.
// Existing accounts are left untouched.
func SeedDemoUsers(ctx context.Context, db *gorm.DB, users []config.DemoUser, log *zap.Logger) error {
	var errs []error
	for _, u := range users {
		email := strings.ToLower(strings.TrimSpace(u.Email))

		var existing entity.User
		err := db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&existing).Error
		if err == nil {
			log.Debug("demo user already exists", zap.String("email", email))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			errs = append(errs, fmt.Errorf("lookup %s: %w", email, err))
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			errs = append(errs, fmt.Errorf("hash password for %s: %w", email, err))
			continue
		}
		user := entity.User{Name: u.Name, Email: email, Password: string(hash), Provider: "local"}
		if err := db.WithContext(ctx).Create(&user).Error; err != nil {
			errs = append(errs, fmt.Errorf("create %s: %w", email, err))
			continue
		}
		log.Info("demo user created", zap.String("email", email))
	}
	return errors.Join(errs...)
}
