package service

import (
	"fmt"

	"fabra/internal/models"
	"fabra/internal/repository"
	"fabra/internal/ws"

	"go.uber.org/zap"
)

type NotificationService struct {
	repo *repository.NotificationRepository
	hub  *ws.Hub
	log  *zap.Logger
}

func NewNotificationService(repo *repository.NotificationRepository, hub *ws.Hub, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, hub: hub, log: log}
}

// GetForEmployee returns every notification for the recipient, newest first.
// An error means "notifications unavailable", never "zero notifications".
func (s *NotificationService) GetForEmployee(employeeID uint) ([]models.Notification, error) {
	return s.repo.ListByEmployee(employeeID)
}

// MarkRead is idempotent: re-marking an already-read or vanished notification
// succeeds without effect.
func (s *NotificationService) MarkRead(id, employeeID uint) error {
	return s.repo.MarkRead(id, employeeID)
}

func (s *NotificationService) MarkAllRead(employeeID uint) error {
	return s.repo.MarkAllRead(employeeID)
}

func (s *NotificationService) Create(employeeID uint, message string, rushOrderID *uint) (*models.Notification, error) {
	n := &models.Notification{
		EmployeeID:  employeeID,
		Message:     message,
		RushOrderID: rushOrderID,
	}
	if err := s.repo.Create(n); err != nil {
		return nil, err
	}
	s.push(n)
	return n, nil
}

// CreateForEmployees fans one message out to many recipients. The insert runs
// in a single transaction: either every recipient gets a row or none do.
func (s *NotificationService) CreateForEmployees(employeeIDs []uint, message string, rushOrderID *uint) error {
	if len(employeeIDs) == 0 {
		return nil
	}
	ns := make([]models.Notification, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		ns = append(ns, models.Notification{
			EmployeeID:  id,
			Message:     message,
			RushOrderID: rushOrderID,
		})
	}
	if err := s.repo.CreateAll(ns); err != nil {
		return err
	}
	for i := range ns {
		s.push(&ns[i])
	}
	return nil
}

func (s *NotificationService) push(n *models.Notification) {
	if s.hub == nil {
		return
	}
	s.hub.PushToEmployee(n.EmployeeID, map[string]interface{}{
		"type":         "notification",
		"notification": n,
	})
}

func (s *NotificationService) NotifyRushOrderCreated(managerIDs []uint, order *models.RushOrder, creatorName string) error {
	msg := fmt.Sprintf("%s opened rush order \"%s\"", creatorName, order.Title)
	return s.CreateForEmployees(managerIDs, msg, &order.ID)
}

func (s *NotificationService) NotifyRushOrderAssigned(assigneeID uint, order *models.RushOrder) error {
	msg := fmt.Sprintf("Rush order \"%s\" was assigned to you", order.Title)
	_, err := s.Create(assigneeID, msg, &order.ID)
	return err
}

func (s *NotificationService) NotifyTaskAssigned(assigneeID uint, task *models.Task) error {
	_, err := s.Create(assigneeID, fmt.Sprintf("Task \"%s\" was assigned to you", task.Title), nil)
	return err
}

func (s *NotificationService) NotifyPartReported(managerIDs []uint, report *models.BrokenPartReport, reporterName string) error {
	msg := fmt.Sprintf("%s reported a broken part: %s", reporterName, report.PartName)
	return s.CreateForEmployees(managerIDs, msg, nil)
}

func (s *NotificationService) NotifySupplyOrderDelayed(managerIDs []uint, order *models.SupplyOrder) error {
	msg := fmt.Sprintf("Supply order %s from %s is delayed", order.Reference, order.Supplier)
	return s.CreateForEmployees(managerIDs, msg, nil)
}
