package models

import (
	"time"

	"fabra/internal/domain"

	"gorm.io/gorm"
)

type Task struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ProjectID    *uint          `gorm:"index" json:"project_id"`
	PhaseID      *uint          `gorm:"index" json:"phase_id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Details      string         `gorm:"type:text" json:"details"`
	AssigneeID   *uint          `gorm:"index" json:"assignee_id"`
	Status       string         `gorm:"size:20;not null;index" json:"status"`
	ScheduledFor *time.Time     `gorm:"index" json:"scheduled_for"`
	DueAt        *time.Time     `json:"due_at"`
	CompletedAt  *time.Time     `json:"completed_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	Assignee *Employee `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (Task) TableName() string {
	return "tasks"
}

func (t *Task) IsDone() bool { return t.Status == domain.TaskStatusDone }

// Overdue reports whether the task is past due and not completed.
func (t *Task) Overdue(now time.Time) bool {
	return t.DueAt != nil && t.DueAt.Before(now) && !t.IsDone()
}
