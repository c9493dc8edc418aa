package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/logger"
	"github.com/kweston/stridelog/internal/repository"
	"github.com/kweston/stridelog/internal/stats"
)

// RunService handles manual run logging and aggregate statistics.
type RunService struct {
	runs   *repository.RunRepository
	logger *logger.Logger
}

// NewRunService creates a new run service.
func NewRunService(runs *repository.RunRepository, log *logger.Logger) *RunService {
	return &RunService{
		runs:   runs,
		logger: log,
	}
}

// Create validates a manually entered run, derives its pace, and persists it.
func (s *RunService) Create(ctx context.Context, run *domain.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	run.PaceMinPerMile = stats.Pace(run.DistanceMiles, run.DurationMinutes)
	now := time.Now()
	run.CreatedAt = now
	run.UpdatedAt = now
	return s.runs.Create(ctx, run)
}

// Update validates changes to a run, re-derives its pace, and persists it.
func (s *RunService) Update(ctx context.Context, run *domain.Run) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("invalid run: %w", err)
	}
	run.PaceMinPerMile = stats.Pace(run.DistanceMiles, run.DurationMinutes)
	run.UpdatedAt = time.Now()
	return s.runs.Update(ctx, run)
}

// Delete removes a run.
func (s *RunService) Delete(ctx context.Context, userID, id string) error {
	return s.runs.Delete(ctx, userID, id)
}

// Get retrieves one run.
func (s *RunService) Get(ctx context.Context, userID, id string) (*domain.Run, error) {
	return s.runs.GetByID(ctx, userID, id)
}

// List retrieves all runs for a user, most recent first.
func (s *RunService) List(ctx context.Context, userID string) ([]domain.Run, error) {
	return s.runs.ListByUser(ctx, userID)
}

// RunSummary aggregates a user's run history for the stats screen.
type RunSummary struct {
	RunCount      int         `json:"run_count"`
	TotalDistance float64     `json:"total_distance_miles"`
	AveragePace   float64     `json:"average_pace_min_per_mile"`
	LongestRun    *domain.Run `json:"longest_run,omitempty"`
	FastestRun    *domain.Run `json:"fastest_run,omitempty"`
}

// Summary computes aggregate statistics over the user's run history.
func (s *RunService) Summary(ctx context.Context, userID string) (*RunSummary, error) {
	runs, err := s.runs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return &RunSummary{
		RunCount:      len(runs),
		TotalDistance: stats.TotalDistance(runs),
		AveragePace:   stats.AveragePace(runs),
		LongestRun:    stats.LongestRun(runs),
		FastestRun:    stats.FastestRun(runs),
	}, nil
}
