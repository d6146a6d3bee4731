package repository

import (
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"

	"gorm.io/gorm"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

func (r *TaskRepository) GetByID(id uint) (*models.Task, error) {
	var t models.Task
	if err := r.db.Preload("Assignee").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// List filters by any combination of project, assignee and status; zero values skip the filter.
func (r *TaskRepository) List(projectID, assigneeID uint, status string) ([]models.Task, error) {
	var list []models.Task
	q := r.db.Preload("Assignee").Order("scheduled_for ASC, created_at DESC")
	if projectID != 0 {
		q = q.Where("project_id = ?", projectID)
	}
	if assigneeID != 0 {
		q = q.Where("assignee_id = ?", assigneeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&list).Error
	return list, err
}

// ListScheduledBetween returns tasks scheduled inside [from, to), for daily views.
func (r *TaskRepository) ListScheduledBetween(from, to time.Time) ([]models.Task, error) {
	var list []models.Task
	err := r.db.Preload("Assignee").
		Where("scheduled_for >= ? AND scheduled_for < ?", from, to).
		Order("scheduled_for ASC").
		Find(&list).Error
	return list, err
}

func (r *TaskRepository) Update(t *models.Task) error {
	return r.db.Save(t).Error
}

func (r *TaskRepository) Assign(id, assigneeID uint) error {
	return r.db.Model(&models.Task{}).Where("id = ?", id).Update("assignee_id", assigneeID).Error
}

func (r *TaskRepository) SetStatus(id uint, status string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == domain.TaskStatusDone {
		updates["completed_at"] = now
	}
	return r.db.Model(&models.Task{}).Where("id = ?", id).Updates(updates).Error
}

func (r *TaskRepository) Delete(id uint) error {
	return r.db.Delete(&models.Task{}, id).Error
}
