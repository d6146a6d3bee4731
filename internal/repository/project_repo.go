package repository

import (
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(p *models.Project) error {
	return r.db.Create(p).Error
}

func (r *ProjectRepository) GetByID(id uint) (*models.Project, error) {
	var p models.Project
	err := r.db.Preload("Phases", func(db *gorm.DB) *gorm.DB {
		return db.Order("sequence ASC")
	}).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) List() ([]models.Project, error) {
	var list []models.Project
	err := r.db.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *ProjectRepository) Update(p *models.Project) error {
	return r.db.Save(p).Error
}

func (r *ProjectRepository) AddPhase(ph *models.ProjectPhase) error {
	return r.db.Create(ph).Error
}

func (r *ProjectRepository) GetPhase(id uint) (*models.ProjectPhase, error) {
	var ph models.ProjectPhase
	if err := r.db.First(&ph, id).Error; err != nil {
		return nil, err
	}
	return &ph, nil
}

// SetPhaseStatus toggles a phase and stamps the matching timestamp.
func (r *ProjectRepository) SetPhaseStatus(id uint, status string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	switch status {
	case domain.PhaseStatusInProgress:
		updates["started_at"] = now
	case domain.PhaseStatusDone:
		updates["completed_at"] = now
	}
	return r.db.Model(&models.ProjectPhase{}).Where("id = ?", id).Updates(updates).Error
}
