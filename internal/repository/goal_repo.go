package repository

import (
	"context"

	"github.com/kweston/stridelog/internal/domain"
	"gorm.io/gorm"
)

// GoalRepository handles goal data operations.
type GoalRepository struct {
	db *gorm.DB
}

// NewGoalRepository creates a new GoalRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *GoalRepository: repository instance bound to db.
func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Create inserts a new goal record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - goal: goal record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *GoalRepository) Create(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

// Update updates an existing goal record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - goal: goal record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *GoalRepository) Update(ctx context.Context, goal *domain.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

// Delete removes a goal record by ID, scoped to the owning user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the record.
//   - id: goal ID.
// Returns:
//   - error: non-nil if the delete fails.
func (r *GoalRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Goal{}).Error
}

// GetByID retrieves a goal by its ID, scoped to the owning user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the record.
//   - id: goal ID.
// Returns:
//   - *domain.Goal: goal record if found.
//   - error: non-nil if lookup fails.
func (r *GoalRepository) GetByID(ctx context.Context, userID, id string) (*domain.Goal, error) {
	var goal domain.Goal
	if err := r.db.WithContext(ctx).First(&goal, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, err
	}
	return &goal, nil
}

// ListByUser retrieves all goals for a user ordered by target date.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the records.
// Returns:
//   - []domain.Goal: goals for the user, nearest deadline first.
//   - error: non-nil if the query fails.
func (r *GoalRepository) ListByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("target_date ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}

// ListOpenByUser retrieves goals not yet marked completed.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the records.
// Returns:
//   - []domain.Goal: open goals for the user.
//   - error: non-nil if the query fails.
func (r *GoalRepository) ListOpenByUser(ctx context.Context, userID string) ([]domain.Goal, error) {
	var goals []domain.Goal
	if err := r.db.WithContext(ctx).Where("user_id = ? AND completed = ?", userID, false).Order("target_date ASC").Find(&goals).Error; err != nil {
		return nil, err
	}
	return goals, nil
}
