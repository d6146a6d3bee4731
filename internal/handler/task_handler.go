package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"
	"fabra/internal/repository"
	"fabra/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TaskHandler struct {
	repo         *repository.TaskRepository
	employeeRepo *repository.EmployeeRepository
	notifSvc     *service.NotificationService
	log          *zap.Logger
}

func NewTaskHandler(repo *repository.TaskRepository, employeeRepo *repository.EmployeeRepository, notifSvc *service.NotificationService, log *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, employeeRepo: employeeRepo, notifSvc: notifSvc, log: log}
}

type CreateTaskRequest struct {
	ProjectID    *uint  `json:"project_id"`
	PhaseID      *uint  `json:"phase_id"`
	Title        string `json:"title" binding:"required,max=255"`
	Details      string `json:"details"`
	AssigneeID   *uint  `json:"assignee_id"`
	ScheduledFor string `json:"scheduled_for"` // RFC 3339, optional
	DueAt        string `json:"due_at"`        // RFC 3339, optional
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	t := &models.Task{
		ProjectID:  req.ProjectID,
		PhaseID:    req.PhaseID,
		Title:      req.Title,
		Details:    req.Details,
		AssigneeID: req.AssigneeID,
		Status:     domain.TaskStatusPending,
	}
	var ok bool
	if t.ScheduledFor, ok = parseTimestamp(c, req.ScheduledFor); !ok {
		return
	}
	if t.DueAt, ok = parseTimestamp(c, req.DueAt); !ok {
		return
	}
	if err := h.repo.Create(t); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	if t.AssigneeID != nil {
		if err := h.notifSvc.NotifyTaskAssigned(*t.AssigneeID, t); err != nil {
			h.log.Warn("task assignment notification failed", zap.Uint("task_id", t.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusCreated, gin.H{"task": t})
}

func (h *TaskHandler) List(c *gin.Context) {
	projectID, _ := strconv.ParseUint(c.Query("project_id"), 10, 64)
	assigneeID, _ := strconv.ParseUint(c.Query("assignee_id"), 10, 64)
	list, err := h.repo.List(uint(projectID), uint(assigneeID), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

// Today returns the tasks scheduled for the current day, the daily-plan view.
func (h *TaskHandler) Today(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	list, err := h.repo.ListScheduledBetween(from, from.Add(24*time.Hour))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	t, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"task": t})
}

type AssignTaskRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

func (h *TaskHandler) Assign(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	t, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req AssignTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.employeeRepo.GetByID(req.AssigneeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "assignee not found"})
		return
	}
	if err := h.repo.Assign(t.ID, req.AssigneeID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assign failed"})
		return
	}
	if err := h.notifSvc.NotifyTaskAssigned(req.AssigneeID, t); err != nil {
		h.log.Warn("task assignment notification failed", zap.Uint("task_id", t.ID), zap.Error(err))
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS DONE"`
}

func (h *TaskHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.repo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req TaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.SetStatus(uint(id), req.Status, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if err := h.repo.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func parseTimestamp(c *gin.Context, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid timestamp (use RFC 3339)"})
		return nil, false
	}
	return &ts, true
}
