package handler

import (
	"errors"
	"net/http"
	"strconv"
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

type BrokenPartHandler struct {
	repo         *repository.BrokenPartRepository
	employeeRepo *repository.EmployeeRepository
	notifSvc     *service.NotificationService
	log          *zap.Logger
}

func NewBrokenPartHandler(repo *repository.BrokenPartRepository, employeeRepo *repository.EmployeeRepository, notifSvc *service.NotificationService, log *zap.Logger) *BrokenPartHandler {
	return &BrokenPartHandler{repo: repo, employeeRepo: employeeRepo, notifSvc: notifSvc, log: log}
}

type ReportBrokenPartRequest struct {
	PartName    string `json:"part_name" binding:"required,max=255"`
	Machine     string `json:"machine" binding:"max=255"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url,max=512"`
}

func (h *BrokenPartHandler) Report(c *gin.Context) {
	employeeID := middleware.GetEmployeeID(c)
	var req ReportBrokenPartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	report := &models.BrokenPartReport{
		PartName:    req.PartName,
		Machine:     req.Machine,
		Description: req.Description,
		PhotoURL:    req.PhotoURL,
		ReporterID:  employeeID,
		Status:      domain.PartStatusReported,
	}
	if err := h.repo.Create(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	reporter, _ := h.employeeRepo.GetByID(employeeID)
	reporterName := ""
	if reporter != nil {
		reporterName = reporter.Name
	}
	managerIDs, err := h.employeeRepo.ListIDsByRole(domain.RoleManager, domain.RoleAdmin)
	if err == nil {
		err = h.notifSvc.NotifyPartReported(managerIDs, report, reporterName)
	}
	if err != nil {
		h.log.Warn("broken part fan-out failed", zap.Uint("report_id", report.ID), zap.Error(err))
	}
	c.JSON(http.StatusCreated, gin.H{"report": report})
}

func (h *BrokenPartHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reports": list})
}

type PartStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=REPORTED ORDERED RESOLVED"`
}

func (h *BrokenPartHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.repo.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	var req PartStatusRequest
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
