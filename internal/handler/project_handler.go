package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fabra/internal/domain"
	"fabra/internal/models"
	"fabra/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	repo *repository.ProjectRepository
}

func NewProjectHandler(repo *repository.ProjectRepository) *ProjectHandler {
	return &ProjectHandler{repo: repo}
}

type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required,max=255"`
	Description string `json:"description"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD, optional
	DueDate     string `json:"due_date"`   // YYYY-MM-DD, optional
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      domain.PhaseStatusPending,
	}
	var ok bool
	if p.StartDate, ok = parseDate(c, req.StartDate); !ok {
		return
	}
	if p.DueDate, ok = parseDate(c, req.DueDate); !ok {
		return
	}
	if err := h.repo.Create(p); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": p})
}

func (h *ProjectHandler) List(c *gin.Context) {
	list, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": list})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	p, err := h.repo.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": p})
}

type AddPhaseRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Sequence int    `json:"sequence" binding:"required,min=1"`
}

func (h *ProjectHandler) AddPhase(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	if _, err := h.repo.GetByID(uint(id)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
		return
	}
	var req AddPhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ph := &models.ProjectPhase{
		ProjectID: uint(id),
		Name:      req.Name,
		Sequence:  req.Sequence,
		Status:    domain.PhaseStatusPending,
	}
	if err := h.repo.AddPhase(ph); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"phase": ph})
}

type PhaseStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS DONE"`
}

func (h *ProjectHandler) SetPhaseStatus(c *gin.Context) {
	phaseID, _ := strconv.ParseUint(c.Param("phase_id"), 10, 64)
	if _, err := h.repo.GetPhase(uint(phaseID)); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "phase not found"})
		return
	}
	var req PhaseStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.repo.SetPhaseStatus(uint(phaseID), req.Status, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// parseDate maps "" to nil and writes the 400 response itself on bad input.
func parseDate(c *gin.Context, s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use YYYY-MM-DD)"})
		return nil, false
	}
	return &d, true
}
