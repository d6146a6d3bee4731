package handler

import (
	"net/http"
	"strconv"

	"fabra/internal/middleware"
	"fabra/internal/repository"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	repo *repository.EmployeeRepository
}

func NewEmployeeHandler(repo *repository.EmployeeRepository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

func (h *EmployeeHandler) Me(c *gin.Context) {
	e, err := h.repo.GetByID(middleware.GetEmployeeID(c))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": e})
}

func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.repo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": list})
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MANAGER WORKER"`
}

// SetRole is admin-only (enforced in the router).
func (h *EmployeeHandler) SetRole(c *gin.Context) {
	id, _ := strconv.ParseUint(c.Param("id"), 10, 64)
	e, err := h.repo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e.Role = req.Role
	if err := h.repo.Update(e); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": e})
}
