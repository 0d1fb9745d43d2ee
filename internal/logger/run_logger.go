// Package logger provides rating-pipeline-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// RunLogger provides dedicated logging for rating pipeline runs.
type RunLogger struct {
	*logrus.Entry
}

// NewRunLogger creates a new pipeline run logger.
func NewRunLogger(baseLogger *logrus.Logger) *RunLogger {
	return &RunLogger{
		Entry: baseLogger.WithField("component", "pipeline"),
	}
}

// LogGamesLoaded logs the outcome of the game loading stage.
func (rl *RunLogger) LogGamesLoaded(path string, played, unplayed, skipped int, preseasonTracked bool) {
	rl.WithFields(logrus.Fields{
		"path":              path,
		"played_games":      played,
		"unplayed_games":    unplayed,
		"skipped_records":   skipped,
		"preseason_tracked": preseasonTracked,
	}).Info("Game records loaded")
}

// LogNetworkBuilt logs the connectivity analysis outcome.
func (rl *RunLogger) LogNetworkBuilt(totalTeams, networkTeams, components, excluded int) {
	rl.WithFields(logrus.Fields{
		"total_teams":    totalTeams,
		"network_teams":  networkTeams,
		"components":     components,
		"excluded_teams": excluded,
	}).Info("Connectivity network built")
}

// LogAttemptFinished logs completion of one rating attempt.
func (rl *RunLogger) LogAttemptFinished(attempt int, iterations int, bestError, homeAdvantage float64, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"attempt":        attempt,
		"iterations":     iterations,
		"best_error":     bestError,
		"home_advantage": homeAdvantage,
		"duration_ms":    durationMs,
	}).Info("Rating attempt finished")
}

// LogAggregation logs the attempt aggregation outcome.
func (rl *RunLogger) LogAggregation(attempts, rejected int, homeAdvantage float64) {
	rl.WithFields(logrus.Fields{
		"attempts":       attempts,
		"rejected":       rejected,
		"home_advantage": homeAdvantage,
	}).Info("Attempts aggregated")
}

// LogCalibration logs the fitted error model for one residual sample.
func (rl *RunLogger) LogCalibration(sample string, stdev, df float64, normal bool) {
	rl.WithFields(logrus.Fields{
		"sample": sample,
		"stdev":  stdev,
		"df":     df,
		"normal": normal,
	}).Info("Error model calibrated")
}

// LogTieBound logs the calibrated tie bound.
func (rl *RunLogger) LogTieBound(bound, requested, achieved float64) {
	rl.WithFields(logrus.Fields{
		"tie_bound":             bound,
		"requested_probability": requested,
		"achieved_probability":  achieved,
	}).Info("Tie bound calibrated")
}

// LogReportWritten logs where the final report landed.
func (rl *RunLogger) LogReportWritten(path string, teams int, runID string) {
	rl.WithFields(logrus.Fields{
		"path":   path,
		"teams":  teams,
		"run_id": runID,
	}).Info("Rating report written")
}
