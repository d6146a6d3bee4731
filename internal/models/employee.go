package models

import (
	"time"

	"fabra/internal/domain"

	"gorm.io/gorm"
)

type Employee struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Name         string         `gorm:"size:120;not null" json:"name"`
	Email        string         `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	Role         string         `gorm:"size:20;not null;index" json:"role"` // ADMIN | MANAGER | WORKER
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"`      // nil for password signups (avoids duplicate '' on unique index)
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) IsAdmin() bool   { return e.Role == domain.RoleAdmin }
func (e *Employee) IsManager() bool { return e.Role == domain.RoleManager }
