// Package stats provides pure numeric utilities over run histories.
package stats

import (
	"math"

	"github.com/kweston/stridelog/internal/domain"
)

// Pace computes minutes per mile. Returns 0 when distance is 0; callers
// must treat 0 as "undefined pace", not a real pace.
func Pace(distanceMiles, durationMinutes float64) float64 {
	if distanceMiles == 0 {
		return 0
	}
	return durationMinutes / distanceMiles
}

// TotalDistance sums run distances, rounded to 2 decimal places.
func TotalDistance(runs []domain.Run) float64 {
	var total float64
	for _, run := range runs {
		total += run.DistanceMiles
	}
	return math.Round(total*100) / 100
}

// AveragePace computes the overall pace across all runs: total duration
// over total distance. Returns 0 for an empty set or zero total distance.
func AveragePace(runs []domain.Run) float64 {
	var totalDistance, totalDuration float64
	for _, run := range runs {
		totalDistance += run.DistanceMiles
		totalDuration += run.DurationMinutes
	}
	if totalDistance == 0 {
		return 0
	}
	return totalDuration / totalDistance
}

// LongestRun returns the run with the greatest distance, or nil for an
// empty set.
func LongestRun(runs []domain.Run) *domain.Run {
	var longest *domain.Run
	for i := range runs {
		if longest == nil || runs[i].DistanceMiles > longest.DistanceMiles {
			longest = &runs[i]
		}
	}
	return longest
}

// minPaceDistanceMiles excludes sub-mile runs from pace rankings; their
// pace numbers are too noisy to compare.
const minPaceDistanceMiles = 1.0

// FastestRun returns the run with the lowest pace among runs of at least
// one mile, or nil if no run qualifies.
func FastestRun(runs []domain.Run) *domain.Run {
	var fastest *domain.Run
	for i := range runs {
		if runs[i].DistanceMiles < minPaceDistanceMiles {
			continue
		}
		if fastest == nil || runs[i].PaceMinPerMile < fastest.PaceMinPerMile {
			fastest = &runs[i]
		}
	}
	return fastest
}
