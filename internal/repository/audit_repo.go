package repository

import (
	"fabra/internal/models"

	"gorm.io/gorm"
)

type AuditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Create(l *models.AuditLog) error {
	return r.db.Create(l).Error
}

func (r *AuditLogRepository) ListByEmployee(employeeID uint, limit int) ([]models.AuditLog, error) {
	var list []models.AuditLog
	err := r.db.Where("employee_id = ?", employeeID).Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}
