package database

import (
	"endowal/config"
	"endowal/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
		// Duplicate-key and not-found errors surface as gorm sentinels so
		// handlers can map them to 409/404.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate creates the schema from the models. Production uses the
// versioned SQL migrations (see Migrate); this covers tests and local
// development databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Classroom{},
		&models.Enrollment{},
		&models.Assignment{},
		&models.StudentWallet{},
		&models.WalletBucket{},
		&models.LedgerEntry{},
		&models.BudgetSubmission{},
		&models.BudgetLineItem{},
	)
}
