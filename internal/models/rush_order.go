package models

import (
	"time"

	"fabra/internal/domain"

	"gorm.io/gorm"
)

type RushOrder struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Details     string         `gorm:"type:text" json:"details"`
	Status      string         `gorm:"size:20;not null;index" json:"status"` // OPEN, IN_PROGRESS, COMPLETED, CANCELLED
	Deadline    *time.Time     `json:"deadline"`
	CreatedByID uint           `gorm:"not null;index" json:"created_by_id"`
	AssigneeID  *uint          `gorm:"index" json:"assignee_id"`
	CompletedAt *time.Time     `json:"completed_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	CreatedBy Employee  `gorm:"foreignKey:CreatedByID" json:"-"`
	Assignee  *Employee `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

func (RushOrder) TableName() string {
	return "rush_orders"
}

func (o *RushOrder) IsOpen() bool { return o.Status == domain.RushOrderStatusOpen }

// RushOrderMessage is one entry of a rush order's discussion thread.
// Threads are append-only: no edit or delete is exposed.
type RushOrderMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RushOrderID uint      `gorm:"not null;index" json:"rush_order_id"`
	EmployeeID  uint      `gorm:"not null;index" json:"employee_id"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	RushOrder RushOrder `gorm:"foreignKey:RushOrderID" json:"-"`
	Employee  Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (RushOrderMessage) TableName() string {
	return "rush_order_messages"
}

// RushOrderMessageRead is the per-(order, employee) read receipt.
// The composite primary key makes duplicate receipt rows impossible;
// LastReadAt only ever moves forward.
type RushOrderMessageRead struct {
	RushOrderID uint      `gorm:"primaryKey;autoIncrement:false" json:"rush_order_id"`
	EmployeeID  uint      `gorm:"primaryKey;autoIncrement:false" json:"employee_id"`
	LastReadAt  time.Time `gorm:"not null" json:"last_read_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (RushOrderMessageRead) TableName() string {
	return "rush_order_message_reads"
}
