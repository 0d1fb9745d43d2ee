package rating

import (
	"fmt"
	"math"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/models"
)

// LeagueStats holds the scoring statistics of the primary-network games.
// They anchor the score predictions, set the scale of the error metric,
// and tune the size of the random rating adjustments.
type LeagueStats struct {
	// ScoreMean and ScoreStDev describe the pooled home and away scores.
	ScoreMean  float64
	ScoreStDev float64

	// MarginStDev is the population standard deviation of the symmetrized
	// margin sample (every margin paired with its negation), so the
	// implied margin distribution is centered at zero.
	MarginStDev float64

	// AdjustmentScale divides the per-iteration rating updates. Derived
	// from the margin variability and optionally capped, so high-variance
	// sports take proportionally smaller steps.
	AdjustmentScale float64

	// NumberOfGames counts the primary-network games behind these stats.
	NumberOfGames int

	// AbsMargins, Scores and TotalScores are the raw observed samples,
	// passed through to the report for downstream residual analysis.
	// Scores lists every home score followed by every away score.
	AbsMargins  []int
	Scores      []int
	TotalScores []int
}

// ComputeLeagueStats derives the league scoring statistics from the
// primary-network games. A margin sample with zero variance is fatal: both
// the error metric and the adjustment scale divide by it.
func ComputeLeagueStats(store *gamestore.Store, rc config.RatingConfig) (*LeagueStats, error) {
	var homeScores, awayScores, margins []float64
	stats := &LeagueStats{}
	for i := range store.Played {
		game := &store.Played[i]
		if !game.InNetwork {
			continue
		}
		homeScores = append(homeScores, float64(game.HomeScore))
		awayScores = append(awayScores, float64(game.AwayScore))
		margin := game.Margin()
		margins = append(margins, float64(margin))
		if margin < 0 {
			margin = -margin
		}
		stats.AbsMargins = append(stats.AbsMargins, margin)
		stats.TotalScores = append(stats.TotalScores, game.TotalScore())
	}
	if len(margins) == 0 {
		return nil, models.ErrNoGames
	}
	stats.NumberOfGames = len(margins)

	scores := append(append([]float64{}, homeScores...), awayScores...)
	stats.ScoreMean, stats.ScoreStDev = meanStd(scores)
	for _, s := range scores {
		stats.Scores = append(stats.Scores, int(s))
	}

	symmetrized := make([]float64, 0, 2*len(margins))
	symmetrized = append(symmetrized, margins...)
	for _, m := range margins {
		symmetrized = append(symmetrized, -m)
	}
	_, stats.MarginStDev = meanStd(symmetrized)
	if stats.MarginStDev == 0 {
		return nil, fmt.Errorf("margin sample over %d games: %w", stats.NumberOfGames, models.ErrDegenerateVariance)
	}

	stats.AdjustmentScale = rc.ScaleBaseline * rc.ScaleFactor / stats.MarginStDev
	if rc.ScaleCap > 0 {
		stats.AdjustmentScale = math.Min(stats.AdjustmentScale, rc.ScaleCap)
	}
	return stats, nil
}

// meanStd returns the mean and population standard deviation of values.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	m := mean(values)
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return m, math.Sqrt(variance)
}
