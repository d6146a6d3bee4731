package repository

import (
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"

	"gorm.io/gorm"
)

type SupplyOrderRepository struct {
	db *gorm.DB
}

func NewSupplyOrderRepository(db *gorm.DB) *SupplyOrderRepository {
	return &SupplyOrderRepository{db: db}
}

func (r *SupplyOrderRepository) Create(o *models.SupplyOrder) error {
	return r.db.Create(o).Error
}

func (r *SupplyOrderRepository) GetByID(id uint) (*models.SupplyOrder, error) {
	var o models.SupplyOrder
	if err := r.db.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SupplyOrderRepository) GetByReference(ref string) (*models.SupplyOrder, error) {
	var o models.SupplyOrder
	if err := r.db.Where("reference = ?", ref).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *SupplyOrderRepository) List(status string) ([]models.SupplyOrder, error) {
	var list []models.SupplyOrder
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *SupplyOrderRepository) Update(o *models.SupplyOrder) error {
	return r.db.Save(o).Error
}

func (r *SupplyOrderRepository) SetStatus(id uint, status string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == domain.SupplyOrderStatusDelivered {
		updates["delivered_at"] = now
	}
	return r.db.Model(&models.SupplyOrder{}).Where("id = ?", id).Updates(updates).Error
}
