package repository

import (
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"

	"gorm.io/gorm"
)

type RushOrderRepository struct {
	db *gorm.DB
}

func NewRushOrderRepository(db *gorm.DB) *RushOrderRepository {
	return &RushOrderRepository{db: db}
}

func (r *RushOrderRepository) Create(o *models.RushOrder) error {
	return r.db.Create(o).Error
}

func (r *RushOrderRepository) GetByID(id uint) (*models.RushOrder, error) {
	var o models.RushOrder
	if err := r.db.Preload("Assignee").First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *RushOrderRepository) List(status string) ([]models.RushOrder, error) {
	var list []models.RushOrder
	q := r.db.Preload("Assignee").Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *RushOrderRepository) Assign(id, assigneeID uint) error {
	return r.db.Model(&models.RushOrder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"assignee_id": assigneeID,
		"status":      domain.RushOrderStatusInProgress,
	}).Error
}

func (r *RushOrderRepository) Complete(id uint, at time.Time) error {
	return r.db.Model(&models.RushOrder{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       domain.RushOrderStatusCompleted,
		"completed_at": at,
	}).Error
}

func (r *RushOrderRepository) Cancel(id uint) error {
	return r.db.Model(&models.RushOrder{}).Where("id = ?", id).
		Update("status", domain.RushOrderStatusCancelled).Error
}
