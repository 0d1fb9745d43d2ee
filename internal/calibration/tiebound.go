package calibration

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// TieCalibrator solves for the symmetric margin bound at which the fitted
// margin-error distribution, centered at each eligible game's predicted
// margin, predicts ties at the externally observed rate.
type TieCalibrator struct {
	predictedMargins []float64
	model            ErrorModel
}

// NewTieCalibrator creates a calibrator over the eligible games' predicted
// margins and the fitted margin error model.
func NewTieCalibrator(predictedMargins []float64, model ErrorModel) *TieCalibrator {
	return &TieCalibrator{predictedMargins: predictedMargins, model: model}
}

// Probability returns the aggregate predicted tie probability for a
// candidate bound: the probability mass inside [-bound, +bound] averaged
// across all eligible games.
func (c *TieCalibrator) Probability(bound float64) float64 {
	if len(c.predictedMargins) == 0 {
		return 0
	}
	sum := 0.0
	for _, predicted := range c.predictedMargins {
		sum += c.mass(predicted, bound)
	}
	return sum / float64(len(c.predictedMargins))
}

func (c *TieCalibrator) mass(center, bound float64) float64 {
	if c.model.Normal {
		dist := distuv.Normal{Mu: center, Sigma: c.model.StDev}
		return dist.CDF(bound) - dist.CDF(-bound)
	}
	dist := distuv.StudentsT{Mu: center, Sigma: c.model.StDev, Nu: c.model.DF}
	return dist.CDF(bound) - dist.CDF(-bound)
}

// Search walks the bound upward in fixed steps until the aggregate
// predicted tie probability reaches the target, then linearly interpolates
// between the last two candidates for the exact crossing. It returns the
// interpolated bound and the aggregate probability at the stopping step.
func (c *TieCalibrator) Search(target, step float64) (float64, float64) {
	if target <= 0 || step <= 0 || len(c.predictedMargins) == 0 {
		return 0, 0
	}

	prevBound, prevProb := 0.0, 0.0
	bound, prob := 0.0, 0.0
	for {
		prevBound, prevProb = bound, prob
		bound += step
		prob = c.Probability(bound)
		if prob >= target {
			break
		}
	}
	if prob == prevProb {
		return prevBound, prob
	}
	interpolated := prevBound + (target-prevProb)/(prob-prevProb)*step
	return interpolated, prob
}
