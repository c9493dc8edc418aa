package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kweston/stridelog/internal/api/middleware"
	"github.com/kweston/stridelog/internal/domain"
	"github.com/kweston/stridelog/internal/service"
)

// RunHandler handles run CRUD endpoints.
type RunHandler struct {
	runs  *service.RunService
	goals *service.GoalService
}

// NewRunHandler creates a new run handler.
// Parameters:
//   - runs: run service instance.
//   - goals: goal service used to re-sync completion after run changes.
// Returns:
//   - *RunHandler: initialized handler.
func NewRunHandler(runs *service.RunService, goals *service.GoalService) *RunHandler {
	return &RunHandler{
		runs:  runs,
		goals: goals,
	}
}

// RunRequest is the JSON body for creating or updating a run.
type RunRequest struct {
	Date            string  `json:"date" binding:"required"`
	DistanceMiles   float64 `json:"distance_miles" binding:"required"`
	DurationMinutes float64 `json:"duration_minutes" binding:"required"`
	Route           string  `json:"route"`
	Notes           string  `json:"notes"`
	FeelingRating   int     `json:"feeling_rating"`
}

func (r *RunRequest) toRun(userID string) (*domain.Run, error) {
	date, err := time.Parse("2006-01-02", r.Date)
	if err != nil {
		return nil, err
	}
	rating := r.FeelingRating
	if rating == 0 {
		rating = 3
	}
	return &domain.Run{
		UserID:          userID,
		Date:            date,
		DistanceMiles:   r.DistanceMiles,
		DurationMinutes: r.DurationMinutes,
		Route:           r.Route,
		Notes:           r.Notes,
		FeelingRating:   rating,
	}, nil
}

// ListRuns handles GET /api/v1/runs.
func (h *RunHandler) ListRuns(c *gin.Context) {
	runs, err := h.runs.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list runs: " + err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// GetRun handles GET /api/v1/runs/:id.
func (h *RunHandler) GetRun(c *gin.Context) {
	run, err := h.runs.Get(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Run not found",
		})
		return
	}
	c.JSON(http.StatusOK, run)
}

// CreateRun handles POST /api/v1/runs. A successful create re-syncs goal
// completion, since the new run may push a goal over its target.
func (h *RunHandler) CreateRun(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := middleware.UserID(c)
	run, err := req.toRun(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	if err := h.runs.Create(c.Request.Context(), run); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.syncGoals(c)
	c.JSON(http.StatusCreated, run)
}

// UpdateRun handles PUT /api/v1/runs/:id.
func (h *RunHandler) UpdateRun(c *gin.Context) {
	userID := middleware.UserID(c)
	existing, err := h.runs.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Run not found"})
		return
	}

	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := req.toRun(userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt

	if err := h.runs.Update(c.Request.Context(), updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.syncGoals(c)
	c.JSON(http.StatusOK, updated)
}

// DeleteRun handles DELETE /api/v1/runs/:id.
func (h *RunHandler) DeleteRun(c *gin.Context) {
	if err := h.runs.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete run: " + err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary handles GET /api/v1/runs/summary.
func (h *RunHandler) Summary(c *gin.Context) {
	summary, err := h.runs.Summary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute summary: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// syncGoals re-evaluates goal completion after a run change. A sync
// failure is logged by the service and does not fail the run request.
func (h *RunHandler) syncGoals(c *gin.Context) {
	_, _ = h.goals.SyncCompletion(c.Request.Context(), middleware.UserID(c), time.Now())
}
