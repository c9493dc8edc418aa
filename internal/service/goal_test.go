package service

import (
	"testing"
	"time"

	"github.com/kweston/stridelog/internal/domain"
)

var (
	today      = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	pastDate   = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	futureDate = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func ptr(v float64) *float64 { return &v }

func testRun(distance, duration float64) domain.Run {
	return domain.Run{
		DistanceMiles:   distance,
		DurationMinutes: duration,
		PaceMinPerMile:  duration / distance,
	}
}

func TestEvaluateGoalDistanceQuadrants(t *testing.T) {
	runs := []domain.Run{testRun(10, 90), testRun(15, 120)} // 25 miles total

	tests := []struct {
		name          string
		goal          domain.Goal
		wantAchieved  bool
		wantDate      bool
		wantCompleted bool
		wantStatus    domain.GoalStatus
	}{
		{
			name:          "achieved before target date does not complete",
			goal:          domain.Goal{TargetDistanceMiles: ptr(20), TargetDate: futureDate},
			wantAchieved:  true,
			wantDate:      false,
			wantCompleted: false,
			wantStatus:    domain.GoalStatusAchievedWaiting,
		},
		{
			name:          "achieved with target date passed completes",
			goal:          domain.Goal{TargetDistanceMiles: ptr(20), TargetDate: pastDate},
			wantAchieved:  true,
			wantDate:      true,
			wantCompleted: true,
			wantStatus:    domain.GoalStatusCompleted,
		},
		{
			name:          "target date today completes",
			goal:          domain.Goal{TargetDistanceMiles: ptr(20), TargetDate: time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)},
			wantAchieved:  true,
			wantDate:      true,
			wantCompleted: true,
			wantStatus:    domain.GoalStatusCompleted,
		},
		{
			name:          "not achieved with date passed is overdue",
			goal:          domain.Goal{TargetDistanceMiles: ptr(50), TargetDate: pastDate},
			wantAchieved:  false,
			wantDate:      true,
			wantCompleted: false,
			wantStatus:    domain.GoalStatusOverdue,
		},
		{
			name:          "neither condition is in progress",
			goal:          domain.Goal{TargetDistanceMiles: ptr(50), TargetDate: futureDate},
			wantAchieved:  false,
			wantDate:      false,
			wantCompleted: false,
			wantStatus:    domain.GoalStatusInProgress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateGoal(&tt.goal, runs, today)
			if got.Achieved != tt.wantAchieved {
				t.Errorf("Achieved = %v, want %v", got.Achieved, tt.wantAchieved)
			}
			if got.DateReached != tt.wantDate {
				t.Errorf("DateReached = %v, want %v", got.DateReached, tt.wantDate)
			}
			if got.Completed != tt.wantCompleted {
				t.Errorf("Completed = %v, want %v", got.Completed, tt.wantCompleted)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
		})
	}
}

func TestEvaluateGoalDistanceProgress(t *testing.T) {
	runs := []domain.Run{testRun(10, 90), testRun(15, 120)}
	goal := domain.Goal{TargetDistanceMiles: ptr(20), TargetDate: futureDate}

	got := EvaluateGoal(&goal, runs, today)
	if got.DistanceProgress == nil {
		t.Fatal("expected distance progress")
	}
	// 25 of 20 miles: 125%, uncapped
	if *got.DistanceProgress != 125 {
		t.Errorf("DistanceProgress = %v, want 125", *got.DistanceProgress)
	}
}

func TestEvaluateGoalPaceOnly(t *testing.T) {
	runs := []domain.Run{testRun(3, 24)} // pace 8.0

	achieved := domain.Goal{TargetPaceMinPerMile: ptr(8.5), TargetDate: futureDate}
	if got := EvaluateGoal(&achieved, runs, today); !got.Achieved {
		t.Error("pace 8.0 should achieve a target of 8.5")
	}

	missed := domain.Goal{TargetPaceMinPerMile: ptr(7.5), TargetDate: futureDate}
	if got := EvaluateGoal(&missed, runs, today); got.Achieved {
		t.Error("pace 8.0 should not achieve a target of 7.5")
	}

	// No qualifying run means not achieved and zero progress
	noRuns := EvaluateGoal(&achieved, nil, today)
	if noRuns.Achieved {
		t.Error("no runs should not achieve a pace goal")
	}
	if noRuns.PaceProgress == nil || *noRuns.PaceProgress != 0 {
		t.Errorf("PaceProgress = %v, want 0", noRuns.PaceProgress)
	}
}

func TestEvaluateGoalCombinedIsConjunctive(t *testing.T) {
	// Distance target met (25 miles), pace target missed (best 9.0 vs 8.0)
	runs := []domain.Run{testRun(10, 90), testRun(15, 135)}
	goal := domain.Goal{
		TargetDistanceMiles:  ptr(20),
		TargetPaceMinPerMile: ptr(8),
		TargetDate:           pastDate,
	}

	got := EvaluateGoal(&goal, runs, today)
	if got.Achieved {
		t.Error("combined goal must require both sub-conditions")
	}
	if got.Completed {
		t.Error("unachieved goal must not complete")
	}
	if got.Status != domain.GoalStatusOverdue {
		t.Errorf("Status = %q, want overdue", got.Status)
	}
}

func TestEvaluateGoalManualCompletionIsSticky(t *testing.T) {
	goal := domain.Goal{
		TargetDistanceMiles: ptr(100),
		TargetDate:          futureDate,
		Completed:           true,
	}

	got := EvaluateGoal(&goal, nil, today)
	if !got.Completed || !got.Achieved {
		t.Errorf("completed goal should stay completed, got %+v", got)
	}
	if got.Status != domain.GoalStatusCompleted {
		t.Errorf("Status = %q, want completed", got.Status)
	}
}

func TestEvaluateNewlyCompletedIsIdempotent(t *testing.T) {
	runs := []domain.Run{testRun(25, 220)}
	goals := []domain.Goal{
		{ID: "a", TargetDistanceMiles: ptr(20), TargetDate: pastDate},
		{ID: "b", TargetDistanceMiles: ptr(50), TargetDate: pastDate},
	}

	first := EvaluateNewlyCompleted(goals, runs, today)
	if len(first) != 1 || first[0].ID != "a" {
		t.Fatalf("first pass = %+v, want goal a only", first)
	}

	// Persisting flips the completed flag; the second pass returns nothing.
	for i := range goals {
		for _, done := range first {
			if goals[i].ID == done.ID {
				goals[i].Completed = true
			}
		}
	}

	second := EvaluateNewlyCompleted(goals, runs, today)
	if len(second) != 0 {
		t.Errorf("second pass = %+v, want empty", second)
	}
}
