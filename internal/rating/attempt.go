package rating

import (
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/network"
)

// AttemptResult is the best state found by one independent search attempt.
type AttemptResult struct {
	Attempt    int
	State      *RatingState
	BestError  float64
	Iterations int
}

// attemptGame caches the per-game values that never change across
// iterations: network indices, the final weight, and the actual scores.
type attemptGame struct {
	home    int
	away    int
	weight  float64
	neutral bool

	homeScore float64
	awayScore float64
	margin    float64
}

// Attempt is one independent randomized search over the rating space. Each
// attempt owns its pseudo-random stream, seeded by the attempt index, and
// shares nothing mutable with other attempts.
type Attempt struct {
	games []attemptGame
	teams int

	scoreMean   float64
	marginStDev float64
	scale       float64

	resetInterval int
	stopThreshold int

	// per-game CDF of the observed margin and scores, fixed across
	// iterations.
	actualMarginCDF []float64
	actualHomeCDF   []float64
	actualAwayCDF   []float64

	// per-team accumulated weight and the league-wide non-neutral weight,
	// fixed across iterations.
	teamWeight       []float64
	notNeutralWeight float64

	marginDist distuv.Normal
	scoreDist  distuv.Normal

	// trace, when non-nil, observes each iteration after the best/reset
	// bookkeeping. Tests use it to inspect the search trajectory.
	trace func(iteration int, bestError float64, reset bool, cur, best *RatingState)
}

// NewAttempt precomputes the immutable per-game caches shared by every
// iteration of one attempt. The store, network and stats are read-only.
func NewAttempt(store *gamestore.Store, net *network.Network, stats *LeagueStats, rc ratingParams) *Attempt {
	a := &Attempt{
		teams:         net.Size(),
		scoreMean:     stats.ScoreMean,
		marginStDev:   stats.MarginStDev,
		scale:         stats.AdjustmentScale,
		resetInterval: rc.resetInterval,
		stopThreshold: rc.stopThreshold,
		marginDist:    distuv.Normal{Mu: 0, Sigma: stats.MarginStDev},
		scoreDist:     distuv.Normal{Mu: stats.ScoreMean, Sigma: stats.MarginStDev},
		teamWeight:    make([]float64, net.Size()),
	}

	for i := range store.Played {
		game := &store.Played[i]
		if !game.InNetwork {
			continue
		}
		g := attemptGame{
			home:      net.NetworkIndex(game.HomeIndex),
			away:      net.NetworkIndex(game.AwayIndex),
			weight:    game.Weight,
			neutral:   game.Neutral,
			homeScore: float64(game.HomeScore),
			awayScore: float64(game.AwayScore),
			margin:    float64(game.Margin()),
		}
		a.games = append(a.games, g)

		a.teamWeight[g.home] += g.weight
		a.teamWeight[g.away] += g.weight
		if !g.neutral {
			a.notNeutralWeight += g.weight
		}
		a.actualMarginCDF = append(a.actualMarginCDF, a.marginDist.CDF(g.margin))
		a.actualHomeCDF = append(a.actualHomeCDF, a.scoreDist.CDF(g.homeScore))
		a.actualAwayCDF = append(a.actualAwayCDF, a.scoreDist.CDF(g.awayScore))
	}
	return a
}

// ratingParams carries the search knobs into an attempt.
type ratingParams struct {
	resetInterval int
	stopThreshold int
}

// PredictScores returns the predicted home and away scores for a matchup
// under a rating state. Scores floor at zero.
func PredictScores(state *RatingState, home, away int, neutral bool, scoreMean float64) (float64, float64) {
	advantage := 0.0
	if !neutral {
		advantage = state.HomeAdvantage / 2
	}
	predHome := state.Offense[home] + advantage - state.Defense[away] + scoreMean
	predAway := state.Offense[away] - advantage - state.Defense[home] + scoreMean
	if predHome < 0 {
		predHome = 0
	}
	if predAway < 0 {
		predAway = 0
	}
	return predHome, predAway
}

// Run executes the randomized local search and returns the best state
// found. The search stops after stopThreshold consecutive iterations
// without improving the best error; the current state is periodically
// snapped back to the best state to contain stochastic drift.
func (a *Attempt) Run(attempt int) *AttemptResult {
	rng := rand.New(rand.NewSource(int64(attempt)))

	cur := NewRatingState(a.teams)
	best := NewRatingState(a.teams)
	bestError := 0.0
	first := true
	sinceImprovement := 0
	iterations := 0

	offResidual := make([]float64, a.teams)
	defResidual := make([]float64, a.teams)

	for {
		iterations++
		for i := range offResidual {
			offResidual[i] = 0
			defResidual[i] = 0
		}
		marginResidual := 0.0
		totalError := 0.0

		for i := range a.games {
			g := &a.games[i]
			predHome, predAway := PredictScores(cur, g.home, g.away, g.neutral, a.scoreMean)
			predMargin := predHome - predAway

			homeError := g.homeScore - predHome
			awayError := g.awayScore - predAway
			offResidual[g.home] += homeError * g.weight
			defResidual[g.home] -= awayError * g.weight
			offResidual[g.away] += awayError * g.weight
			defResidual[g.away] -= homeError * g.weight
			if !g.neutral {
				marginResidual += (g.margin - predMargin) * g.weight
			}

			totalError += g.weight * abs(a.actualMarginCDF[i]-a.marginDist.CDF(predMargin))
			totalError += g.weight * abs(a.actualHomeCDF[i]-a.scoreDist.CDF(predHome))
			totalError += g.weight * abs(a.actualAwayCDF[i]-a.scoreDist.CDF(predAway))
		}

		reset := false
		if first || totalError < bestError {
			best.CopyFrom(cur)
			bestError = totalError
			sinceImprovement = 0
		} else {
			sinceImprovement++
			if sinceImprovement%a.resetInterval == 0 {
				cur.CopyFrom(best)
				reset = true
			}
		}

		if a.trace != nil {
			a.trace(iterations, bestError, reset, cur, best)
		}

		if sinceImprovement >= a.stopThreshold {
			break
		}

		for i := 0; i < a.teams; i++ {
			if a.teamWeight[i] == 0 {
				continue
			}
			cur.Offense[i] += a.draw(rng, offResidual[i]/a.teamWeight[i])
			cur.Defense[i] += a.draw(rng, defResidual[i]/a.teamWeight[i])
		}
		if a.notNeutralWeight > 0 {
			cur.HomeAdvantage += a.draw(rng, marginResidual/a.notNeutralWeight)
		}
		cur.Recenter()
		first = false
	}

	return &AttemptResult{
		Attempt:    attempt,
		State:      best,
		BestError:  bestError,
		Iterations: iterations,
	}
}

// draw samples the stochastic rating adjustment: a Gaussian step whose mean
// is the normalized residual scaled down by the adjustment scale.
func (a *Attempt) draw(rng *rand.Rand, residual float64) float64 {
	return rng.NormFloat64()/a.scale + residual/a.scale
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// GameCount returns the number of primary-network games driving the search.
func (a *Attempt) GameCount() int {
	return len(a.games)
}
