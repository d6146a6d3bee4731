package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // PENDING, IN_PROGRESS, DONE
	StartDate   *time.Time     `json:"start_date"`
	DueDate     *time.Time     `json:"due_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Phases []ProjectPhase `gorm:"foreignKey:ProjectID" json:"phases,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// ProjectPhase is one ordered step of a project; Sequence defines the order.
type ProjectPhase struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"not null;index" json:"project_id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Sequence    int            `gorm:"not null" json:"sequence"`
	Status      string         `gorm:"size:20;not null;index" json:"status"`
	StartedAt   *time.Time     `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (ProjectPhase) TableName() string {
	return "project_phases"
}
