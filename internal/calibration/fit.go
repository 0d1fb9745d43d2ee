package calibration

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// Degrees-of-freedom search bounds. The likelihood of a thin-tailed sample
// keeps rising with nu, so the search saturates near the upper bound and
// the normal-approximation branch takes over well before that.
const (
	dfSearchMin = 0.5
	dfSearchMax = 1e6
	dfSearchTol = 1e-9
)

// fitStudentsTDF solves for the maximum-likelihood degrees of freedom of a
// Student-t with location 0 and the given fixed scale. The likelihood is
// unimodal in nu, so a golden-section search over log-nu suffices.
func fitStudentsTDF(sample []float64, sigma float64) float64 {
	negLogLikelihood := func(logNu float64) float64 {
		dist := distuv.StudentsT{Mu: 0, Sigma: sigma, Nu: math.Exp(logNu)}
		total := 0.0
		for _, x := range sample {
			total -= dist.LogProb(x)
		}
		return total
	}
	logNu := goldenSection(negLogLikelihood, math.Log(dfSearchMin), math.Log(dfSearchMax), dfSearchTol)
	return math.Exp(logNu)
}

// goldenSection minimizes f over [a, b] to within tol and returns the
// midpoint of the final bracket.
func goldenSection(f func(float64) float64, a, b, tol float64) float64 {
	const invPhi = 0.6180339887498949

	x1 := b - invPhi*(b-a)
	x2 := a + invPhi*(b-a)
	f1 := f(x1)
	f2 := f(x2)
	for b-a > tol {
		if f1 < f2 {
			b = x2
			x2 = x1
			f2 = f1
			x1 = b - invPhi*(b-a)
			f1 = f(x1)
		} else {
			a = x1
			x1 = x2
			f1 = f2
			x2 = a + invPhi*(b-a)
			f2 = f(x2)
		}
	}
	return (a + b) / 2
}
