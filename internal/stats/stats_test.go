package stats

import (
	"math"
	"testing"

	"github.com/kweston/stridelog/internal/domain"
)

func run(distance, duration float64) domain.Run {
	return domain.Run{
		DistanceMiles:   distance,
		DurationMinutes: duration,
		PaceMinPerMile:  Pace(distance, duration),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPace(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		duration float64
		want     float64
	}{
		{name: "typical run", distance: 3.0, duration: 24.0, want: 8.0},
		{name: "fractional distance", distance: 3.1, duration: 27.9, want: 9.0},
		{name: "zero distance is undefined pace", distance: 0, duration: 30, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pace(tt.distance, tt.duration)
			if !almostEqual(got, tt.want) {
				t.Errorf("Pace(%v, %v) = %v, want %v", tt.distance, tt.duration, got, tt.want)
			}
		})
	}
}

func TestTotalDistance(t *testing.T) {
	if got := TotalDistance(nil); got != 0 {
		t.Errorf("TotalDistance(nil) = %v, want 0", got)
	}

	runs := []domain.Run{run(3.1, 28), run(5.005, 45), run(2.0, 18)}
	want := 10.11 // rounded to 2 decimal places

	if got := TotalDistance(runs); got != want {
		t.Errorf("TotalDistance = %v, want %v", got, want)
	}

	// Order independent
	reversed := []domain.Run{runs[2], runs[1], runs[0]}
	if got := TotalDistance(reversed); got != want {
		t.Errorf("TotalDistance (reversed) = %v, want %v", got, want)
	}
}

func TestAveragePace(t *testing.T) {
	if got := AveragePace(nil); got != 0 {
		t.Errorf("AveragePace(nil) = %v, want 0", got)
	}

	// 10 miles in 85 minutes across the set
	runs := []domain.Run{run(4, 32), run(6, 53)}
	if got := AveragePace(runs); !almostEqual(got, 8.5) {
		t.Errorf("AveragePace = %v, want 8.5", got)
	}
}

func TestLongestRun(t *testing.T) {
	if got := LongestRun(nil); got != nil {
		t.Errorf("LongestRun(nil) = %v, want nil", got)
	}

	runs := []domain.Run{run(3, 24), run(10, 95), run(5, 40)}
	got := LongestRun(runs)
	if got == nil || got.DistanceMiles != 10 {
		t.Errorf("LongestRun = %+v, want the 10 mile run", got)
	}
}

func TestFastestRunIgnoresSubMileRuns(t *testing.T) {
	// The half-mile run has the better pace but is excluded.
	runs := []domain.Run{run(0.5, 2.5), run(3.0, 24)}

	got := FastestRun(runs)
	if got == nil || got.DistanceMiles != 3.0 {
		t.Errorf("FastestRun = %+v, want the 3 mile run", got)
	}
}

func TestFastestRunNoQualifyingRuns(t *testing.T) {
	runs := []domain.Run{run(0.5, 2.5), run(0.9, 8)}
	if got := FastestRun(runs); got != nil {
		t.Errorf("FastestRun = %+v, want nil", got)
	}
}
