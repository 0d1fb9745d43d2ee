// Package calibration fits the error-distribution model to the residuals of
// the aggregated ratings and solves for the symmetric tie-margin bound.
package calibration

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/logger"
	"github.com/yourusername/netrater/internal/models"
	"github.com/yourusername/netrater/internal/network"
	"github.com/yourusername/netrater/internal/rating"
)

// normalDFThreshold is the fitted degrees of freedom above which the
// Student-t is statistically indistinguishable from a normal, letting
// downstream consumers use the cheaper normal CDF.
const normalDFThreshold = 50

// ErrorModel describes the fitted error distribution of one residual
// sample: a zero-centered Student-t with the scale fixed at the sample
// standard deviation, reduced to a normal when the tails are thin enough.
type ErrorModel struct {
	Normal bool
	DF     float64
	StDev  float64
}

// Result holds the calibrated error models for the three residual samples
// and the tie bound solved from the margin model.
type Result struct {
	Margin     ErrorModel
	Score      ErrorModel
	TotalScore ErrorModel

	TieBound                float64
	RequestedTieProbability float64
	AchievedTieProbability  float64
}

// Calibrate recomputes residuals under the aggregated ratings over the
// calibration-eligible games (primary-network games whose policy weight is
// positive), fits each residual sample, and searches for the tie bound.
func Calibrate(store *gamestore.Store, net *network.Network, agg *rating.Aggregated, stats *rating.LeagueStats, cfg *config.Config, log *logrus.Logger) (*Result, error) {
	if log == nil {
		log = logrus.New()
	}
	run := logger.NewRunLogger(log)

	var marginResiduals, scoreResiduals, totalResiduals, predictedMargins []float64
	for i := range store.Played {
		game := &store.Played[i]
		if !game.InNetwork || game.PolicyWeight <= 0 {
			continue
		}
		home := net.NetworkIndex(game.HomeIndex)
		away := net.NetworkIndex(game.AwayIndex)

		advantage := agg.HomeAdvantage
		if game.Neutral {
			advantage = 0
		}
		predMargin := agg.Overall[home] + advantage - agg.Overall[away]
		predictedMargins = append(predictedMargins, predMargin)
		marginResiduals = append(marginResiduals, predMargin-float64(game.Margin()))

		ratingState := &rating.RatingState{
			Offense:       agg.Offense,
			Defense:       agg.Defense,
			Overall:       agg.Overall,
			HomeAdvantage: agg.HomeAdvantage,
		}
		predHome, predAway := rating.PredictScores(ratingState, home, away, game.Neutral, stats.ScoreMean)
		scoreResiduals = append(scoreResiduals, predHome-float64(game.HomeScore))
		scoreResiduals = append(scoreResiduals, predAway-float64(game.AwayScore))
		totalResiduals = append(totalResiduals, (predHome+predAway)-float64(game.TotalScore()))
	}
	if len(marginResiduals) == 0 {
		return nil, models.ErrNoEligibleGames
	}

	res := &Result{RequestedTieProbability: cfg.Tie.TargetProbability}
	var err error
	if res.Margin, err = fitErrorModel(marginResiduals); err != nil {
		return nil, fmt.Errorf("margin residuals: %w", err)
	}
	run.LogCalibration("margin", res.Margin.StDev, res.Margin.DF, res.Margin.Normal)
	if res.Score, err = fitErrorModel(scoreResiduals); err != nil {
		return nil, fmt.Errorf("score residuals: %w", err)
	}
	run.LogCalibration("score", res.Score.StDev, res.Score.DF, res.Score.Normal)
	if res.TotalScore, err = fitErrorModel(totalResiduals); err != nil {
		return nil, fmt.Errorf("total score residuals: %w", err)
	}
	run.LogCalibration("total_score", res.TotalScore.StDev, res.TotalScore.DF, res.TotalScore.Normal)

	calibrator := NewTieCalibrator(predictedMargins, res.Margin)
	res.TieBound, res.AchievedTieProbability = calibrator.Search(cfg.Tie.TargetProbability, cfg.Tie.SearchStep)
	run.LogTieBound(res.TieBound, res.RequestedTieProbability, res.AchievedTieProbability)
	return res, nil
}

// fitErrorModel fits a zero-centered Student-t to the residual sample with
// the scale pinned at the sample standard deviation, solving only for the
// degrees of freedom.
func fitErrorModel(residuals []float64) (ErrorModel, error) {
	stdev := populationStdDev(residuals)
	if stdev == 0 {
		return ErrorModel{}, fmt.Errorf("%d residuals: %w", len(residuals), models.ErrDegenerateVariance)
	}
	df := fitStudentsTDF(residuals, stdev)
	return ErrorModel{
		Normal: df > normalDFThreshold,
		DF:     df,
		StDev:  stdev,
	}, nil
}

func populationStdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := 0.0
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
