package handler

import (
	"net/http"
	"time"

	"fabra/internal/service"

	"github.com/gin-gonic/gin"
)

type PlanningHandler struct {
	svc *service.PlanningService
}

func NewPlanningHandler(svc *service.PlanningService) *PlanningHandler {
	return &PlanningHandler{svc: svc}
}

type DailyPlanRequest struct {
	Date string `json:"date"` // YYYY-MM-DD, defaults to today
}

// GenerateDailyPlan proxies to the external planner and returns its plan as-is.
func (h *PlanningHandler) GenerateDailyPlan(c *gin.Context) {
	var req DailyPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date := time.Now()
	if req.Date != "" {
		d, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format (use YYYY-MM-DD)"})
			return
		}
		date = d
	}
	plan, err := h.svc.GenerateDailyPlan(c.Request.Context(), date)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "plan generation failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}
