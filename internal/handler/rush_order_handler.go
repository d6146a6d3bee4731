package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fabra/internal/domain"
	"fabra/internal/middleware"
	"fabra/internal/models"
	"fabra/internal/repository"
	"fabra/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RushOrderHandler struct {
	repo         *repository.RushOrderRepository
	employeeRepo *repository.EmployeeRepository
	messages     *service.MessageService
	notifSvc     *service.NotificationService
	log          *zap.Logger
}

func NewRushOrderHandler(
	repo *repository.RushOrderRepository,
	employeeRepo *repository.EmployeeRepository,
	messages *service.MessageService,
	notifSvc *service.NotificationService,
	log *zap.Logger,
) *RushOrderHandler {
	return &RushOrderHandler{
		repo:         repo,
		employeeRepo: employeeRepo,
		messages:     messages,
		notifSvc:     notifSvc,
		log:          log,
	}
}

type CreateRushOrderRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Details  string `json:"details"`
	Deadline string `json:"deadline"` // RFC 3339, optional
}

func (h *RushOrderHandler) Create(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	var req CreateRushOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	order := &models.RushOrder{
		Title:       req.Title,
		Details:     req.Details,
		Status:      domain.RushOrderStatusOpen,
		CreatedByID: employeeID,
	}
	if req.Deadline != "" {
		dl, err := time.Parse(time.RFC3339, req.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deadline (use RFC 3339)"})
			return
		}
		order.Deadline = &dl
	}
	if err := h.repo.Create(order); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	// Fan out to every manager and admin. A notification failure does not
	// fail the already-created order; it is logged and the order stands.
	creator, _ := h.employeeRepo.GetByID(employeeID)
	creatorName := ""
	if creator != nil {
		creatorName = creator.Name
	}
	managerIDs, err := h.employeeRepo.ListIDsByRole(domain.RoleManager, domain.RoleAdmin)
	if err == nil {
		err = h.notifSvc.NotifyRushOrderCreated(managerIDs, order, creatorName)
	}
	if err != nil {
		h.log.Warn("rush order fan-out failed", zap.Uint("rush_order_id", order.ID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"rush_order": order})
}

func (h *RushOrderHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rush_orders": list})
}

func (h *RushOrderHandler) Get(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"rush_order": order})
}

type AssignRushOrderRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

func (h *RushOrderHandler) Assign(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	var req AssignRushOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.employeeRepo.GetByID(req.AssigneeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignee not found"})
		return
	}
	if err := h.repo.Assign(order.ID, req.AssigneeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assign failed"})
		return
	}
	if err := h.notifSvc.NotifyRushOrderAssigned(req.AssigneeID, order); err != nil {
		h.log.Warn("assignment notification failed", zap.Uint("rush_order_id", order.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RushOrderHandler) Complete(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.repo.Complete(order.ID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *RushOrderHandler) Cancel(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.repo.Cancel(order.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListMessages returns the discussion thread, oldest first.
func (h *RushOrderHandler) ListMessages(c *gin.Context) {
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	list, err := h.messages.Thread(order.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": list})
}

type PostMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// PostMessage appends to the thread. Empty or whitespace-only text is
// rejected here; the message service trusts its callers on this.
func (h *RushOrderHandler) PostMessage(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	var req PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	text := strings.TrimSpace(req.Message)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message text required"})
		return
	}
	msg, err := h.messages.Append(order.ID, employeeID, text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// MarkMessagesRead bumps the caller's read receipt for this thread.
func (h *RushOrderHandler) MarkMessagesRead(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	if err := h.messages.MarkThreadRead(order.ID, employeeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UnreadCount returns the caller's unread-message count for this thread.
// The count degrades to zero on store trouble; it backs a cosmetic badge.
func (h *RushOrderHandler) UnreadCount(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	order, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": h.messages.UnreadCount(order.ID, employeeID)})
}

func (h *RushOrderHandler) lookup(c *gin.Context) (*models.RushOrder, bool) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return nil, false
	}
	order, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return nil, false
	}
	return order, true
}
