package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kweston/stridelog/internal/api/middleware"
	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/service"
)

// GoalHandler handles goal CRUD and progress endpoints.
type GoalHandler struct {
	goals *service.GoalService
}

// NewGoalHandler creates a new goal handler.
// Parameters:
//   - goals: goal service instance.
// Returns:
//   - *GoalHandler: initialized handler.
func NewGoalHandler(goals *service.GoalService) *GoalHandler {
	return &GoalHandler{goals: goals}
}

// GoalRequest is the JSON body for creating or updating a goal.
type GoalRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Description          string   `json:"description"`
	TargetDate           string   `json:"target_date" binding:"required"`
	TargetDistanceMiles  *float64 `json:"target_distance_miles"`
	TargetPaceMinPerMile *float64 `json:"target_pace_min_per_mile"`
	Completed            bool     `json:"completed"`
}

func (r *GoalRequest) toGoal(userID string) (*domain.Goal, error) {
	targetDate, err := time.Parse("2006-01-02", r.TargetDate)
	if err != nil {
		return nil, err
	}
	return &domain.Goal{
		UserID:               userID,
		Name:                 r.Name,
		Description:          r.Description,
		TargetDate:           targetDate,
		TargetDistanceMiles:  r.TargetDistanceMiles,
		TargetPaceMinPerMile: r.TargetPaceMinPerMile,
		Completed:            r.Completed,
	}, nil
}

// ListGoals handles GET /api/v1/goals.
func (h *GoalHandler) ListGoals(c *gin.Context) {
	goals, err := h.goals.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list goals: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

// GetGoal handles GET /api/v1/goals/:id.
func (h *GoalHandler) GetGoal(c *gin.Context) {
	goal, err := h.goals.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	c.JSON(http.StatusOK, goal)
}

// CreateGoal handles POST /api/v1/goals.
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := req.toGoal(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target date, expected YYYY-MM-DD"})
		return
	}

	if err := h.goals.Create(c.Request.Context(), goal); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, goal)
}

// UpdateGoal handles PUT /api/v1/goals/:id.
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID := middleware.UserID(c)
	existing, err := h.goals.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}

	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := req.toGoal(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target date, expected YYYY-MM-DD"})
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.CompletedAt = existing.CompletedAt
	if updated.Completed && !existing.Completed {
		now := time.Now()
		updated.CompletedAt = &now
	}

	if err := h.goals.Update(c.Request.Context(), updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteGoal handles DELETE /api/v1/goals/:id.
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	if err := h.goals.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete goal: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// GoalProgress handles GET /api/v1/goals/:id/progress.
func (h *GoalHandler) GoalProgress(c *gin.Context) {
	progress, err := h.goals.Progress(c.Request.Context(), middleware.UserID(c), c.Param("id"), time.Now())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Goal not found"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// SyncGoals handles POST /api/v1/goals/sync: re-evaluates every open goal
// and returns the ones newly marked completed.
func (h *GoalHandler) SyncGoals(c *gin.Context) {
	completed, err := h.goals.SyncCompletion(c.Request.Context(), middleware.UserID(c), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sync goals: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}
