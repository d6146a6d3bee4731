package models

import (
	"time"

	"gorm.io/gorm"
)

type BrokenPartReport struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PartName    string         `gorm:"size:255;not null" json:"part_name"`
	Machine     string         `gorm:"size:255" json:"machine"`
	Description string         `gorm:"type:text" json:"description"`
	PhotoURL    string         `gorm:"size:512" json:"photo_url"`
	ReporterID  uint           `gorm:"not null;index" json:"reporter_id"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // REPORTED, ORDERED, RESOLVED
	ResolvedAt  *time.Time     `json:"resolved_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Reporter Employee `gorm:"foreignKey:ReporterID" json:"-"`
}

func (BrokenPartReport) TableName() string {
	return "broken_part_reports"
}
