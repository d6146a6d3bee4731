package database

import (
	"errors"

	"fabra/config"
	"fabra/internal/domain"
	"fabra/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error), // Only log errors, not every SQL query
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

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Employee{},
		&models.Project{},
		&models.ProjectPhase{},
		&models.Task{},
		&models.RushOrder{},
		&models.RushOrderMessage{},
		&models.RushOrderMessageRead{},
		&models.BrokenPartReport{},
		&models.SupplyOrder{},
		&models.Notification{},
		&models.AuditLog{},
	)
}

// SeedAdmin creates a default admin account when no employee has the ADMIN role yet.
func SeedAdmin(db *gorm.DB) error {
	var admin models.Employee
	err := db.Where("role = ?", domain.RoleAdmin).First(&admin).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("change-me"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.Employee{
		Name:         "Admin",
		Email:        "admin@fabra.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}).Error
}
