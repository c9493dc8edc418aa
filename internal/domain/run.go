package domain

import (
	"errors"
	"time"
)

// Run represents one completed running activity, logged manually or
// produced by the file import pipeline.
type Run struct {
	ID              string    `gorm:"type:text;primaryKey" json:"id"`
	UserID          string    `gorm:"type:text;not null;index:idx_runs_user" json:"user_id"`
	Date            time.Time `gorm:"not null;index:idx_runs_date" json:"date"`
	DistanceMiles   float64   `gorm:"not null" json:"distance_miles"`
	DurationMinutes float64   `gorm:"not null" json:"duration_minutes"`
	PaceMinPerMile  float64   `json:"pace_min_per_mile"`
	Route           string    `gorm:"type:text" json:"route,omitempty"`
	Notes           string    `gorm:"type:text" json:"notes,omitempty"`
	FeelingRating   int       `gorm:"default:3" json:"feeling_rating"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName returns the database table name for Run.
// Parameters: none.
// Returns:
//   - string: table name for GORM mapping.
func (Run) TableName() string {
	return "runs"
}

// Validate checks range constraints on a run before persistence.
// Parameters: none.
// Returns:
//   - error: non-nil describing the first violated constraint.
func (r *Run) Validate() error {
	if r.DistanceMiles <= 0 {
		return errors.New("distance must be greater than zero")
	}
	if r.DurationMinutes <= 0 {
		return errors.New("duration must be greater than zero")
	}
	if r.FeelingRating < 1 || r.FeelingRating > 5 {
		return errors.New("feeling rating must be between 1 and 5")
	}
	return nil
}
