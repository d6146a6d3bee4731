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

type SupplyOrderHandler struct {
	repo         *repository.SupplyOrderRepository
	employeeRepo *repository.EmployeeRepository
	notifSvc     *service.NotificationService
	log          *zap.Logger
}

func NewSupplyOrderHandler(repo *repository.SupplyOrderRepository, employeeRepo *repository.EmployeeRepository, notifSvc *service.NotificationService, log *zap.Logger) *SupplyOrderHandler {
	return &SupplyOrderHandler{repo: repo, employeeRepo: employeeRepo, notifSvc: notifSvc, log: log}
}

type CreateSupplyOrderRequest struct {
	Reference   string `json:"reference" binding:"required,max=64"`
	Supplier    string `json:"supplier" binding:"required,max=255"`
	Description string `json:"description"`
	Carrier     string `json:"carrier" binding:"max=120"`
	Tracking    string `json:"tracking_number" binding:"max=120"`
	ExpectedAt  string `json:"expected_at"` // YYYY-MM-DD, optional
}

func (h *SupplyOrderHandler) Create(c *gin.Context) {
	var req CreateSupplyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	o := &models.SupplyOrder{
		Reference:      req.Reference,
		Supplier:       req.Supplier,
		Description:    req.Description,
		Carrier:        req.Carrier,
		TrackingNumber: req.Tracking,
		Status:         domain.SupplyOrderStatusPlaced,
	}
	var ok bool
	if o.ExpectedAt, ok = parseDate(c, req.ExpectedAt); !ok {
		return
	}
	if err := h.repo.Create(o); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supply_order": o})
}

func (h *SupplyOrderHandler) List(c *gin.Context) {
	list, err := h.repo.List(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"supply_orders": list})
}

func (h *SupplyOrderHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	o, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"supply_order": o})
}

type SupplyOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PLACED SHIPPED IN_TRANSIT DELIVERED DELAYED"`
}

func (h *SupplyOrderHandler) SetStatus(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	o, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req SupplyOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.SetStatus(o.ID, req.Status, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if req.Status == domain.SupplyOrderStatusDelayed {
		managerIDs, err := h.employeeRepo.ListIDsByRole(domain.RoleManager, domain.RoleAdmin)
		if err == nil {
			err = h.notifSvc.NotifySupplyOrderDelayed(managerIDs, o)
		}
		if err != nil {
			h.log.Warn("delay notification failed", zap.Uint("supply_order_id", o.ID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
