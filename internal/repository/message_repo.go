package repository

import (
	"errors"
	"time"

	"fabra/internal/models"

	"gorm.io/gorm"
)

// ThreadMessage is a rush-order message annotated with its author's display
// fields. The author columns are nullable: a message whose author was deleted
// still appears, with nil name and role.
type ThreadMessage struct {
	ID           uint      `json:"id"`
	RushOrderID  uint      `json:"rush_order_id"`
	EmployeeID   uint      `json:"employee_id"`
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	EmployeeName *string   `json:"employee_name"`
	EmployeeRole *string   `json:"employee_role"`
}

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

const threadSelect = "m.id, m.rush_order_id, m.employee_id, m.message, m.created_at, m.updated_at, e.name AS employee_name, e.role AS employee_role"

// ListByRushOrder returns the thread ascending by creation time.
func (r *MessageRepository) ListByRushOrder(rushOrderID uint) ([]ThreadMessage, error) {
	var list []ThreadMessage
	err := r.db.Table("rush_order_messages m").
		Select(threadSelect).
		Joins("LEFT JOIN employees e ON e.id = m.employee_id AND e.deleted_at IS NULL").
		Where("m.rush_order_id = ?", rushOrderID).
		Order("m.created_at ASC, m.id ASC").
		Scan(&list).Error
	return list, err
}

func (r *MessageRepository) GetThreadMessage(id uint) (*ThreadMessage, error) {
	var m ThreadMessage
	err := r.db.Table("rush_order_messages m").
		Select(threadSelect).
		Joins("LEFT JOIN employees e ON e.id = m.employee_id AND e.deleted_at IS NULL").
		Where("m.id = ?", id).
		Scan(&m).Error
	if err != nil {
		return nil, err
	}
	if m.ID == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

func (r *MessageRepository) Create(m *models.RushOrderMessage) error {
	return r.db.Create(m).Error
}

func (r *MessageRepository) Receipt(rushOrderID, employeeID uint) (*models.RushOrderMessageRead, error) {
	var rec models.RushOrderMessageRead
	err := r.db.Where("rush_order_id = ? AND employee_id = ?", rushOrderID, employeeID).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// UpsertReceipt bumps the receipt timestamp, inserting the row on first read.
// Find-then-branch inside one transaction keeps the (order, employee) pair
// unique; the composite primary key backs that up at the schema level.
func (r *MessageRepository) UpsertReceipt(rushOrderID, employeeID uint, at time.Time) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var rec models.RushOrderMessageRead
		err := tx.Where("rush_order_id = ? AND employee_id = ?", rushOrderID, employeeID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.RushOrderMessageRead{
				RushOrderID: rushOrderID,
				EmployeeID:  employeeID,
				LastReadAt:  at,
			}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&models.RushOrderMessageRead{}).
			Where("rush_order_id = ? AND employee_id = ?", rushOrderID, employeeID).
			Update("last_read_at", at).Error
	})
}

func (r *MessageRepository) CountByRushOrder(rushOrderID uint) (int64, error) {
	var n int64
	err := r.db.Model(&models.RushOrderMessage{}).
		Where("rush_order_id = ?", rushOrderID).
		Count(&n).Error
	return n, err
}

func (r *MessageRepository) CountSince(rushOrderID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&models.RushOrderMessage{}).
		Where("rush_order_id = ? AND created_at > ?", rushOrderID, since).
		Count(&n).Error
	return n, err
}
