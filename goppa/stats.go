package goppa

import (
	"fmt"

	"github.com/montanaflynn/stats"
)

// RetryStats records the number of permutation-resample attempts taken by
// successive ComputeSystematicForm calls, for diagnosing whether the
// observed retry rate is consistent with the expected geometric
// distribution.
type RetryStats struct {
	attempts []float64
}

// NewRetryStats returns an empty RetryStats collector.
func NewRetryStats() *RetryStats {
	return &RetryStats{}
}

// Record adds one observation: the number of permutations sampled before a
// systematic-form construction succeeded.
func (r *RetryStats) Record(attempts int) {
	r.attempts = append(r.attempts, float64(attempts))
}

// Count returns the number of recorded observations.
func (r *RetryStats) Count() int { return len(r.attempts) }

// Mean returns the mean attempt count across all recorded observations.
func (r *RetryStats) Mean() (float64, error) {
	m, err := stats.Mean(stats.Float64Data(r.attempts))
	if err != nil {
		return 0, fmt.Errorf("goppa.RetryStats.Mean: %w", err)
	}
	return m, nil
}

// StdDev returns the sample standard deviation of the recorded attempt
// counts.
func (r *RetryStats) StdDev() (float64, error) {
	sd, err := stats.StandardDeviationSample(stats.Float64Data(r.attempts))
	if err != nil {
		return 0, fmt.Errorf("goppa.RetryStats.StdDev: %w", err)
	}
	return sd, nil
}

