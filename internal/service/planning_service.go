package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fabra/config"

	"go.uber.org/zap"
)

// PlanningService calls the external daily-plan generator. The generator
// itself is a separate system; this is just its client.
type PlanningService struct {
	cfg  *config.PlanningConfig
	http *http.Client
	log  *zap.Logger
}

func NewPlanningService(cfg *config.PlanningConfig, log *zap.Logger) *PlanningService {
	return &PlanningService{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  log,
	}
}

type dailyPlanRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

// GenerateDailyPlan asks the planner for the given date's plan and returns the
// response body untouched; the schema belongs to the planner.
func (s *PlanningService) GenerateDailyPlan(ctx context.Context, date time.Time) (json.RawMessage, error) {
	body, _ := json.Marshal(dailyPlanRequest{Date: date.Format("2006-01-02")})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.BaseURL+"/plans/daily", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("planning service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("planning service returned %d", resp.StatusCode)
	}
	var plan json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&plan); err != nil {
		return nil, fmt.Errorf("invalid plan payload: %w", err)
	}
	return plan, nil
}
