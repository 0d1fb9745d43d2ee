// Package metrics provides the centralized Prometheus metrics registry for
// the rating pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	AttemptsCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "netrater",
		Name:      "attempts_completed_total",
		Help:      "Total number of rating attempts completed",
	})
	PipelineRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "netrater",
		Name:      "pipeline_runs_total",
		Help:      "Total number of rating pipeline runs by status",
	}, []string{"status"})
)

// Gauge metrics
var (
	GamesLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "netrater",
		Name:      "games_loaded",
		Help:      "Number of played games that passed the inclusion filters",
	})
	NetworkTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "netrater",
		Name:      "network_teams",
		Help:      "Number of teams in the primary connected network",
	})
	ExcludedTeams = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "netrater",
		Name:      "excluded_teams",
		Help:      "Number of teams outside the primary network",
	})
	AttemptBestError = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "netrater",
		Name:      "attempt_best_error",
		Help:      "Best error of the most recently completed attempt",
	})
	TieBound = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "netrater",
		Name:      "tie_bound",
		Help:      "Calibrated symmetric tie-margin bound",
	})
)

// Histogram metrics
var (
	AttemptDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "netrater",
		Name:      "attempt_duration_seconds",
		Help:      "Wall-clock duration of one rating attempt in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 300, 600},
	})
	AttemptIterations = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "netrater",
		Name:      "attempt_iterations",
		Help:      "Search iterations per rating attempt",
		Buckets:   []float64{1000, 2000, 5000, 10000, 20000, 50000, 100000},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		// Register counter metrics
		registry.MustRegister(AttemptsCompletedTotal)
		registry.MustRegister(PipelineRunsTotal)

		// Register gauge metrics
		registry.MustRegister(GamesLoaded)
		registry.MustRegister(NetworkTeams)
		registry.MustRegister(ExcludedTeams)
		registry.MustRegister(AttemptBestError)
		registry.MustRegister(TieBound)

		// Register histogram metrics
		registry.MustRegister(AttemptDuration)
		registry.MustRegister(AttemptIterations)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordAttempt records a completed rating attempt.
func RecordAttempt(durationSeconds float64, iterations int, bestError float64) {
	AttemptsCompletedTotal.Inc()
	AttemptDuration.Observe(durationSeconds)
	AttemptIterations.Observe(float64(iterations))
	AttemptBestError.Set(bestError)
}

// RecordPipelineRun records a pipeline run event.
// status should be one of: "success", "failure"
func RecordPipelineRun(status string) {
	PipelineRunsTotal.WithLabelValues(status).Inc()
}

// UpdateGamesLoaded updates the loaded-games gauge.
func UpdateGamesLoaded(count int) {
	GamesLoaded.Set(float64(count))
}

// UpdateNetwork updates the network size gauges.
func UpdateNetwork(networkTeams, excludedTeams int) {
	NetworkTeams.Set(float64(networkTeams))
	ExcludedTeams.Set(float64(excludedTeams))
}

// UpdateTieBound updates the calibrated tie bound gauge.
func UpdateTieBound(bound float64) {
	TieBound.Set(bound)
}
