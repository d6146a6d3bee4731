package repository

import (
	"fabra/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// CreateAll inserts one notification per recipient in a single transaction,
// so a multi-recipient fan-out is all-or-nothing.
func (r *NotificationRepository) CreateAll(ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&ns).Error
	})
}

// ListByEmployee returns every notification for the recipient, newest first.
func (r *NotificationRepository) ListByEmployee(employeeID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("employee_id = ?", employeeID).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// MarkRead flips the read flag. Already-read or missing rows are a no-op success.
func (r *NotificationRepository) MarkRead(id, employeeID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND employee_id = ?", id, employeeID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(employeeID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Update("is_read", true).Error
}

func (r *NotificationRepository) CountUnread(employeeID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.Notification{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Count(&n).Error
	return n, err
}
