package rating

import (
	"fmt"
	"math"
	"sort"

	"github.com/yourusername/netrater/internal/models"
)

// Aggregated is the robust combination of the independent attempt results:
// the element-wise median of every attempt's best state, the across-attempt
// standard deviation as the uncertainty estimate, and the full per-attempt
// value lists retained for downstream ensemble sampling.
type Aggregated struct {
	Offense []float64
	Defense []float64
	Overall []float64

	OffenseStDev []float64
	DefenseStDev []float64
	OverallStDev []float64

	HomeAdvantage      float64
	HomeAdvantageStDev float64
	HomeAdvantageList  []float64

	// Lists index by attempt first, then network team.
	OffenseLists [][]float64
	DefenseLists [][]float64
	OverallLists [][]float64

	Attempts int
	Rejected int
}

// Aggregate validates each attempt result independently and combines the
// survivors. A result with the wrong rating length or a non-finite value is
// rejected without affecting the others; aggregation fails only when no
// valid result remains.
func Aggregate(results []*AttemptResult, teamCount int) (*Aggregated, error) {
	agg := &Aggregated{}
	for _, res := range results {
		if res == nil || !validResult(res, teamCount) {
			agg.Rejected++
			continue
		}
		agg.OffenseLists = append(agg.OffenseLists, res.State.Offense)
		agg.DefenseLists = append(agg.DefenseLists, res.State.Defense)
		agg.OverallLists = append(agg.OverallLists, res.State.Overall)
		agg.HomeAdvantageList = append(agg.HomeAdvantageList, res.State.HomeAdvantage)
	}
	agg.Attempts = len(agg.HomeAdvantageList)
	if agg.Attempts == 0 {
		return nil, fmt.Errorf("all %d attempt(s) rejected: %w", len(results), models.ErrNoValidAttempts)
	}

	agg.Offense, agg.OffenseStDev = aggregateColumns(agg.OffenseLists, teamCount)
	agg.Defense, agg.DefenseStDev = aggregateColumns(agg.DefenseLists, teamCount)
	agg.Overall, agg.OverallStDev = aggregateColumns(agg.OverallLists, teamCount)
	agg.HomeAdvantage = median(agg.HomeAdvantageList)
	_, agg.HomeAdvantageStDev = meanStd(agg.HomeAdvantageList)
	return agg, nil
}

func validResult(res *AttemptResult, teamCount int) bool {
	s := res.State
	if s == nil || len(s.Offense) != teamCount || len(s.Defense) != teamCount || len(s.Overall) != teamCount {
		return false
	}
	if !finite(res.BestError) || !finite(s.HomeAdvantage) {
		return false
	}
	for i := 0; i < teamCount; i++ {
		if !finite(s.Offense[i]) || !finite(s.Defense[i]) || !finite(s.Overall[i]) {
			return false
		}
	}
	return true
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// aggregateColumns computes the per-team median and population standard
// deviation across attempts.
func aggregateColumns(lists [][]float64, teamCount int) ([]float64, []float64) {
	medians := make([]float64, teamCount)
	stdevs := make([]float64, teamCount)
	column := make([]float64, len(lists))
	for team := 0; team < teamCount; team++ {
		for attempt := range lists {
			column[attempt] = lists[attempt][team]
		}
		medians[team] = median(column)
		_, stdevs[team] = meanStd(column)
	}
	return medians, stdevs
}

// median returns the middle value of the sample, averaging the two central
// values for even sample sizes.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64{}, values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
