package rating

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/logger"
	"github.com/yourusername/netrater/internal/metrics"
	"github.com/yourusername/netrater/internal/network"
)

// Engine dispatches the configured number of independent search attempts
// across a bounded worker pool and joins them before aggregation. The
// store, network and league stats are shared read-only; each attempt owns
// its state and pseudo-random stream.
type Engine struct {
	cfg    *config.Config
	stats  *LeagueStats
	shared *Attempt
	logger *logrus.Logger
	run    *logger.RunLogger
}

// NewEngine precomputes the immutable per-game caches once; every attempt
// iterates over the same cache.
func NewEngine(cfg *config.Config, store *gamestore.Store, net *network.Network, stats *LeagueStats, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.New()
	}
	shared := NewAttempt(store, net, stats, ratingParams{
		resetInterval: cfg.Rating.ResetInterval,
		stopThreshold: cfg.Rating.StopThreshold,
	})
	return &Engine{
		cfg:    cfg,
		stats:  stats,
		shared: shared,
		logger: log,
		run:    logger.NewRunLogger(log),
	}
}

// Run executes all configured attempts and returns their results indexed by
// attempt number. The context cancels attempts that have not started;
// running attempts always terminate on their own via the stop threshold.
func (e *Engine) Run(ctx context.Context) ([]*AttemptResult, error) {
	attempts := e.cfg.Rating.Attempts
	workers := e.cfg.EffectiveWorkers()
	if workers > attempts {
		workers = attempts
	}
	e.logger.WithFields(logrus.Fields{
		"attempts":         attempts,
		"workers":          workers,
		"games":            e.shared.GameCount(),
		"adjustment_scale": e.stats.AdjustmentScale,
	}).Info("Starting rating attempts")

	results := make([]*AttemptResult, attempts)
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for attempt := range jobs {
				start := time.Now()
				res := e.shared.Run(attempt)
				results[attempt] = res
				elapsed := time.Since(start)
				metrics.RecordAttempt(elapsed.Seconds(), res.Iterations, res.BestError)
				e.run.LogAttemptFinished(attempt, res.Iterations, res.BestError, res.State.HomeAdvantage, float64(elapsed.Milliseconds()))
			}
		}()
	}

	dispatched := 0
dispatch:
	for attempt := 0; attempt < attempts; attempt++ {
		select {
		case jobs <- attempt:
			dispatched++
		case <-ctx.Done():
			break dispatch
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		e.logger.WithField("dispatched", dispatched).Warn("Rating run cancelled before all attempts were dispatched")
		return nil, err
	}
	return results, nil
}
