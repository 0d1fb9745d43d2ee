package rating

import (
	"errors"
	"math"
	"testing"

	"github.com/yourusername/netrater/internal/models"
)

func resultFromValues(attempt int, offense, defense []float64, homeAdvantage float64) *AttemptResult {
	state := NewRatingState(len(offense))
	copy(state.Offense, offense)
	copy(state.Defense, defense)
	for i := range state.Overall {
		state.Overall[i] = offense[i] + defense[i]
	}
	state.HomeAdvantage = homeAdvantage
	return &AttemptResult{Attempt: attempt, State: state, BestError: 1, Iterations: 1}
}

// TestAggregateSingleAttempt tests that a one-attempt aggregation is the
// attempt itself with zero spread
func TestAggregateSingleAttempt(t *testing.T) {
	res := resultFromValues(0, []float64{2, -2}, []float64{1, -1}, 3.5)
	agg, err := Aggregate([]*AttemptResult{res}, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if agg.Attempts != 1 || agg.Rejected != 0 {
		t.Errorf("attempts = %d, rejected = %d, want 1 and 0", agg.Attempts, agg.Rejected)
	}
	for i := range res.State.Offense {
		if agg.Offense[i] != res.State.Offense[i] {
			t.Errorf("offense[%d] = %v, want %v", i, agg.Offense[i], res.State.Offense[i])
		}
		if agg.Overall[i] != res.State.Overall[i] {
			t.Errorf("overall[%d] = %v, want %v", i, agg.Overall[i], res.State.Overall[i])
		}
		if agg.OffenseStDev[i] != 0 || agg.OverallStDev[i] != 0 {
			t.Errorf("team %d: spread should be zero for a single attempt", i)
		}
	}
	if agg.HomeAdvantage != 3.5 || agg.HomeAdvantageStDev != 0 {
		t.Errorf("home advantage = %v ± %v, want 3.5 ± 0", agg.HomeAdvantage, agg.HomeAdvantageStDev)
	}
}

// TestAggregateMedian tests the element-wise median over three attempts
func TestAggregateMedian(t *testing.T) {
	results := []*AttemptResult{
		resultFromValues(0, []float64{1, -1}, []float64{0, 0}, 2),
		resultFromValues(1, []float64{3, -3}, []float64{0, 0}, 4),
		resultFromValues(2, []float64{100, -100}, []float64{0, 0}, 6),
	}
	agg, err := Aggregate(results, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	// The median shrugs off the outlier attempt.
	if agg.Offense[0] != 3 || agg.Offense[1] != -3 {
		t.Errorf("offense medians = %v, want [3 -3]", agg.Offense)
	}
	if agg.HomeAdvantage != 4 {
		t.Errorf("home advantage median = %v, want 4", agg.HomeAdvantage)
	}
	if len(agg.OffenseLists) != 3 || len(agg.HomeAdvantageList) != 3 {
		t.Errorf("per-attempt lists should keep all 3 attempts")
	}
}

// TestAggregateEvenAttempts tests that even attempt counts average the two
// central values
func TestAggregateEvenAttempts(t *testing.T) {
	results := []*AttemptResult{
		resultFromValues(0, []float64{1}, []float64{0}, 1),
		resultFromValues(1, []float64{2}, []float64{0}, 2),
		resultFromValues(2, []float64{4}, []float64{0}, 4),
		resultFromValues(3, []float64{8}, []float64{0}, 8),
	}
	agg, err := Aggregate(results, 1)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if agg.Offense[0] != 3 {
		t.Errorf("offense median = %v, want 3", agg.Offense[0])
	}
	if agg.HomeAdvantage != 3 {
		t.Errorf("home advantage median = %v, want 3", agg.HomeAdvantage)
	}
}

// TestAggregateRejectsInvalid tests that a corrupted attempt is dropped
// without poisoning the valid ones
func TestAggregateRejectsInvalid(t *testing.T) {
	good := resultFromValues(0, []float64{2, -2}, []float64{1, -1}, 3)

	nan := resultFromValues(1, []float64{math.NaN(), 0}, []float64{0, 0}, 3)
	short := resultFromValues(2, []float64{1}, []float64{0}, 3)
	infHA := resultFromValues(3, []float64{0, 0}, []float64{0, 0}, math.Inf(1))

	agg, err := Aggregate([]*AttemptResult{good, nan, short, nil, infHA}, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if agg.Attempts != 1 || agg.Rejected != 4 {
		t.Errorf("attempts = %d, rejected = %d, want 1 and 4", agg.Attempts, agg.Rejected)
	}
	if agg.Offense[0] != 2 || agg.HomeAdvantage != 3 {
		t.Errorf("aggregation poisoned by rejected attempts: offense[0]=%v ha=%v", agg.Offense[0], agg.HomeAdvantage)
	}
}

func TestAggregateAllRejected(t *testing.T) {
	nan := resultFromValues(0, []float64{math.NaN()}, []float64{0}, 0)
	_, err := Aggregate([]*AttemptResult{nan, nil}, 1)
	if !errors.Is(err, models.ErrNoValidAttempts) {
		t.Errorf("err = %v, want ErrNoValidAttempts", err)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 5},
		{"odd", []float64{3, 1, 2}, 2},
		{"even", []float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}
