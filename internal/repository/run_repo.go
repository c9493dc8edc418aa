package repository

import (
	"context"

	"github.com/kweston/stridelog/internal/domain"
	"gorm.io/gorm"
)

// RunRepository handles run data operations.
type RunRepository struct {
	db *gorm.DB
}

// NewRunRepository creates a new RunRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *RunRepository: repository instance bound to db.
func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a new run record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - run: run record to persist.
// Returns:
//   - error: non-nil if the insert fails.
func (r *RunRepository) Create(ctx context.Context, run *domain.Run) error {
	return r.db.WithContext(ctx).Create(run).Error
}

// Update updates an existing run record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - run: run record with updated fields.
// Returns:
//   - error: non-nil if the update fails.
func (r *RunRepository) Update(ctx context.Context, run *domain.Run) error {
	return r.db.WithContext(ctx).Save(run).Error
}

// Delete removes a run record by ID, scoped to the owning user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the record.
//   - id: run ID.
// Returns:
//   - error: non-nil if the delete fails.
func (r *RunRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&domain.Run{}).Error
}

// GetByID retrieves a run by its ID, scoped to the owning user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the record.
//   - id: run ID.
// Returns:
//   - *domain.Run: run record if found.
//   - error: non-nil if lookup fails.
func (r *RunRepository) GetByID(ctx context.Context, userID, id string) (*domain.Run, error) {
	var run domain.Run
	if err := r.db.WithContext(ctx).First(&run, "user_id = ? AND id = ?", userID, id).Error; err != nil {
		return nil, err
	}
	return &run, nil
}

// ListByUser retrieves all runs for a user ordered by date descending.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the records.
// Returns:
//   - []domain.Run: runs for the user, most recent first.
//   - error: non-nil if the query fails.
func (r *RunRepository) ListByUser(ctx context.Context, userID string) ([]domain.Run, error) {
	var runs []domain.Run
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC").Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

// CountByUser returns the number of runs recorded for a user.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - userID: owner of the records.
// Returns:
//   - int64: run count.
//   - error: non-nil if the query fails.
func (r *RunRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Run{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
