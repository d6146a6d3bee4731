package models

import (
	"time"
)

// Notification rows are append-only: the read flag flips to true once and
// never reverts, and nothing deletes them.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	EmployeeID  uint      `gorm:"not null;index" json:"employee_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Read        bool      `gorm:"column:is_read;not null;default:false;index" json:"read"`
	RushOrderID *uint     `gorm:"index" json:"rush_order_id"`
	CreatedAt   time.Time `json:"created_at"`

	Employee Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}
