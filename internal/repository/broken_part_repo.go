package repository

import (
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"

	"gorm.io/gorm"
)

type BrokenPartRepository struct {
	db *gorm.DB
}

func NewBrokenPartRepository(db *gorm.DB) *BrokenPartRepository {
	return &BrokenPartRepository{db: db}
}

func (r *BrokenPartRepository) Create(p *models.BrokenPartReport) error {
	return r.db.Create(p).Error
}

func (r *BrokenPartRepository) GetByID(id uint) (*models.BrokenPartReport, error) {
	var p models.BrokenPartReport
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *BrokenPartRepository) List(status string) ([]models.BrokenPartReport, error) {
	var list []models.BrokenPartReport
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *BrokenPartRepository) SetStatus(id uint, status string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == domain.PartStatusResolved {
		updates["resolved_at"] = now
	}
	return r.db.Model(&models.BrokenPartReport{}).Where("id = ?", id).Updates(updates).Error
}
