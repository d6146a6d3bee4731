package service

import (
	"errors"
	"time"

	"fabra/internal/models"
	"fabra/internal/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MessageService owns rush-order discussion threads and their read receipts.
// Callers must not pass empty trimmed message text to Append; validation lives
// at the edges (handlers, chat controller), not here.
type MessageService struct {
	repo *repository.MessageRepository
	log  *zap.Logger
}

func NewMessageService(repo *repository.MessageRepository, log *zap.Logger) *MessageService {
	return &MessageService{repo: repo, log: log}
}

// Thread returns the message list ascending by creation time, each entry
// annotated with the author's name and role.
func (s *MessageService) Thread(rushOrderID uint) ([]repository.ThreadMessage, error) {
	return s.repo.ListByRushOrder(rushOrderID)
}

// Append persists a message and returns it with the joined author fields.
func (s *MessageService) Append(rushOrderID, employeeID uint, text string) (*repository.ThreadMessage, error) {
	m := &models.RushOrderMessage{
		RushOrderID: rushOrderID,
		EmployeeID:  employeeID,
		Message:     text,
	}
	if err := s.repo.Create(m); err != nil {
		return nil, err
	}
	return s.repo.GetThreadMessage(m.ID)
}

// MarkThreadRead bumps the (order, employee) receipt to now, creating it on
// first call. Never produces a second receipt row for the same pair.
func (s *MessageService) MarkThreadRead(rushOrderID, employeeID uint) error {
	return s.repo.UpsertReceipt(rushOrderID, employeeID, time.Now())
}

// UnreadCount is the number of messages newer than the employee's receipt.
// No receipt means the whole thread is unread. Store failures degrade to zero
// with a log line instead of failing the caller: the badge this feeds is
// cosmetic, and the next successful poll corrects it.
func (s *MessageService) UnreadCount(rushOrderID, employeeID uint) int64 {
	rec, err := s.repo.Receipt(rushOrderID, employeeID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.log.Warn("unread count degraded to zero: receipt fetch failed",
			zap.Uint("rush_order_id", rushOrderID),
			zap.Uint("employee_id", employeeID),
			zap.Error(err))
		return 0
	}
	var n int64
	if rec == nil {
		n, err = s.repo.CountByRushOrder(rushOrderID)
	} else {
		n, err = s.repo.CountSince(rushOrderID, rec.LastReadAt)
	}
	if err != nil {
		s.log.Warn("unread count degraded to zero: count failed",
			zap.Uint("rush_order_id", rushOrderID),
			zap.Uint("employee_id", employeeID),
			zap.Error(err))
		return 0
	}
	return n
}
