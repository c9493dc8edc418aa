package domain

import (
	"errors"
	"time"
)

// GoalStatus classifies a goal's progress quadrant: whether the numeric
// target has been met and whether the target date has arrived.
type GoalStatus string

const (
	// GoalStatusCompleted means the goal is done, either manually marked
	// or because the target was achieved and the target date reached.
	GoalStatusCompleted GoalStatus = "completed"

	// GoalStatusAchievedWaiting means the numeric target is met but the
	// target date is still in the future.
	GoalStatusAchievedWaiting GoalStatus = "achieved_waiting"

	// GoalStatusOverdue means the target date has passed without the
	// numeric target being met.
	GoalStatusOverdue GoalStatus = "overdue"

	// GoalStatusInProgress means neither condition holds yet.
	GoalStatusInProgress GoalStatus = "in_progress"
)

// Goal represents a target a user is pursuing: a total distance, a best
// pace, or both, with a deadline.
type Goal struct {
	ID                   string     `gorm:"type:text;primaryKey" json:"id"`
	UserID               string     `gorm:"type:text;not null;index:idx_goals_user" json:"user_id"`
	Name                 string     `gorm:"type:text;not null" json:"name"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	TargetDate           time.Time  `gorm:"not null" json:"target_date"`
	TargetDistanceMiles  *float64   `json:"target_distance_miles,omitempty"`
	TargetPaceMinPerMile *float64   `json:"target_pace_min_per_mile,omitempty"`
	Completed            bool       `gorm:"default:false;index:idx_goals_completed" json:"completed"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Goal.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Goal) TableName() string {
	return "goals"
}

// Validate checks the goal invariants before persistence.
// Parameters: none.
// Returns:
//   - error: non-nil describing the first violated constraint.
func (g *Goal) Validate() error {
	if g.Name == "" {
		return errors.New("goal name is required")
	}
	if g.TargetDistanceMiles == nil && g.TargetPaceMinPerMile == nil {
		return errors.New("goal must set a target distance, a target pace, or both")
	}
	if g.TargetDistanceMiles != nil && *g.TargetDistanceMiles <= 0 {
		return errors.New("target distance must be greater than zero")
	}
	if g.TargetPaceMinPerMile != nil && *g.TargetPaceMinPerMile <= 0 {
		return errors.New("target pace must be greater than zero")
	}
	return nil
}

// GoalProgress is the evaluator's verdict for one goal against the run
// history. It is computed on demand and never persisted.
type GoalProgress struct {
	Achieved         bool       `json:"achieved"`
	DateReached      bool       `json:"date_reached"`
	Completed        bool       `json:"completed"`
	DistanceProgress *float64   `json:"distance_progress,omitempty"`
	PaceProgress     *float64   `json:"pace_progress,omitempty"`
	Status           GoalStatus `json:"status"`
	Message          string     `json:"message"`
}
