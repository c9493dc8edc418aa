package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/logger"
	"github.com/kweston/stridelog/internal/stats"
)

// GoalStore persists goals. Satisfied by *repository.GoalRepository.
type GoalStore interface {
	Create(ctx context.Context, goal *domain.Goal) error
	Update(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, userID, id string) error
	GetByID(ctx context.Context, userID, id string) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Goal, error)
	ListOpenByUser(ctx context.Context, userID string) ([]domain.Goal, error)
}

// RunLister loads run histories. Satisfied by *repository.RunRepository.
type RunLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Run, error)
}

// EvaluateGoal computes a goal's progress against the run history. Pure:
// no side effects and no persistence; the caller decides whether a flip
// to completed should be saved. The current date is an explicit parameter
// so evaluation is deterministic under test.
func EvaluateGoal(goal *domain.Goal, runs []domain.Run, today time.Time) domain.GoalProgress {
	dateReached := !dateOnly(today).Before(dateOnly(goal.TargetDate))

	// Manual completion is sticky and short-circuits evaluation.
	if goal.Completed {
		return domain.GoalProgress{
			Achieved:    true,
			DateReached: dateReached,
			Completed:   true,
			Status:      domain.GoalStatusCompleted,
			Message:     statusMessage(domain.GoalStatusCompleted),
		}
	}

	progress := domain.GoalProgress{DateReached: dateReached}

	distanceMet := false
	if goal.TargetDistanceMiles != nil {
		total := stats.TotalDistance(runs)
		distanceMet = total >= *goal.TargetDistanceMiles
		pct := total / *goal.TargetDistanceMiles * 100
		progress.DistanceProgress = &pct
	}

	paceMet := false
	if goal.TargetPaceMinPerMile != nil {
		pct := 0.0
		if fastest := stats.FastestRun(runs); fastest != nil && fastest.PaceMinPerMile > 0 {
			paceMet = fastest.PaceMinPerMile <= *goal.TargetPaceMinPerMile
			pct = *goal.TargetPaceMinPerMile / fastest.PaceMinPerMile * 100
		}
		progress.PaceProgress = &pct
	}

	switch {
	case goal.TargetDistanceMiles != nil && goal.TargetPaceMinPerMile != nil:
		// Combined goals are strictly conjunctive.
		progress.Achieved = distanceMet && paceMet
	case goal.TargetDistanceMiles != nil:
		progress.Achieved = distanceMet
	default:
		progress.Achieved = paceMet
	}

	// Hybrid completion: both the numeric target and the target date are
	// required, so a goal the user is still working toward ahead of
	// schedule is not closed early, and an unmet goal is never closed by
	// its date alone.
	progress.Completed = progress.Achieved && progress.DateReached

	switch {
	case progress.Completed:
		progress.Status = domain.GoalStatusCompleted
	case progress.Achieved:
		progress.Status = domain.GoalStatusAchievedWaiting
	case progress.DateReached:
		progress.Status = domain.GoalStatusOverdue
	default:
		progress.Status = domain.GoalStatusInProgress
	}
	progress.Message = statusMessage(progress.Status)

	return progress
}

// EvaluateNewlyCompleted returns the subset of goals whose completion has
// newly flipped to true: exactly the goals the caller should persist as
// completed. Idempotent: once those goals are saved with Completed set,
// a second call returns nothing for them.
func EvaluateNewlyCompleted(goals []domain.Goal, runs []domain.Run, today time.Time) []domain.Goal {
	var completed []domain.Goal
	for _, goal := range goals {
		if goal.Completed {
			continue
		}
		if EvaluateGoal(&goal, runs, today).Completed {
			completed = append(completed, goal)
		}
	}
	return completed
}

func statusMessage(status domain.GoalStatus) string {
	switch status {
	case domain.GoalStatusCompleted:
		return "Goal completed"
	case domain.GoalStatusAchievedWaiting:
		return "Target achieved, waiting for the target date"
	case domain.GoalStatusOverdue:
		return "Target date has passed without the goal being met"
	default:
		return "Goal in progress"
	}
}

// dateOnly truncates a timestamp to its calendar date.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// GoalService handles goal CRUD and the automatic completion sweep.
type GoalService struct {
	goals  GoalStore
	runs   RunLister
	logger *logger.Logger
}

// NewGoalService creates a new goal service.
func NewGoalService(goals GoalStore, runs RunLister, log *logger.Logger) *GoalService {
	return &GoalService{
		goals:  goals,
		runs:   runs,
		logger: log,
	}
}

// log returns a logger from context if available, otherwise returns the default logger
func (s *GoalService) log(ctx context.Context) *logger.Logger {
	if l := logger.FromContext(ctx); l != nil {
		return l
	}
	return s.logger
}

// Create validates and persists a new goal.
func (s *GoalService) Create(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	if goal.ID == "" {
		goal.ID = uuid.New().String()
	}
	now := time.Now()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	return s.goals.Create(ctx, goal)
}

// Update validates and persists changes to an existing goal. A manual
// completion toggle is allowed in either direction here; only the
// automatic path is one-way.
func (s *GoalService) Update(ctx context.Context, goal *domain.Goal) error {
	if err := goal.Validate(); err != nil {
		return fmt.Errorf("invalid goal: %w", err)
	}
	goal.UpdatedAt = time.Now()
	return s.goals.Update(ctx, goal)
}

// Delete removes a goal.
func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.goals.Delete(ctx, userID, id)
}

// Get retrieves one goal.
func (s *GoalService) Get(ctx context.Context, userID, id string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, userID, id)
}

// List retrieves all goals for a user.
func (s *GoalService) List(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goals.ListByUser(ctx, userID)
}

// Progress evaluates one goal against the user's run history.
func (s *GoalService) Progress(ctx context.Context, userID, id string, today time.Time) (*domain.GoalProgress, error) {
	goal, err := s.goals.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	runs, err := s.runs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	progress := EvaluateGoal(goal, runs, today)
	return &progress, nil
}

// SyncCompletion re-evaluates every open goal and persists the ones that
// have newly completed. Called whenever the run history or goal set
// changes. Returns the goals flipped on this pass.
func (s *GoalService) SyncCompletion(ctx context.Context, userID string, today time.Time) ([]domain.Goal, error) {
	goals, err := s.goals.ListOpenByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	runs, err := s.runs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}

	newlyCompleted := EvaluateNewlyCompleted(goals, runs, today)
	flipped := make([]domain.Goal, 0, len(newlyCompleted))
	for _, goal := range newlyCompleted {
		completedAt := time.Now()
		goal.Completed = true
		goal.CompletedAt = &completedAt
		goal.UpdatedAt = completedAt
		if err := s.goals.Update(ctx, &goal); err != nil {
			// Keep sweeping; the next sync will retry this goal.
			s.log(ctx).WithError(err).WithField("goal_id", goal.ID).Error("Failed to mark goal completed")
			continue
		}
		flipped = append(flipped, goal)
	}

	if len(flipped) > 0 {
		logger.With(logger.Fields{logger.FieldCount: len(flipped)}).Info(ctx, "Goals auto-completed")
	}
	return flipped, nil
}
