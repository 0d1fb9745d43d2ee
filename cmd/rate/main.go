package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/netrater/internal/calibration"
	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/logger"
	"github.com/yourusername/netrater/internal/metrics"
	"github.com/yourusername/netrater/internal/monitor"
	"github.com/yourusername/netrater/internal/network"
	"github.com/yourusername/netrater/internal/rating"
	"github.com/yourusername/netrater/internal/report"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	gamesPath  string
	outputPath string
	logLevel   string
	season     int
	attempts   int
	workers    int

	appLogger *logrus.Logger
	cfg       *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&gamesPath, "games", "", "Path to the game feed JSON (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputPath, "output", "o", "", "Path for the rating report JSON (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().IntVar(&season, "season", 0, "Season to rate (overrides config)")
	rootCmd.PersistentFlags().IntVar(&attempts, "attempts", 0, "Number of independent rating attempts (overrides config)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "Parallel workers for rating attempts (overrides config)")
}

var rootCmd = &cobra.Command{
	Use:   "rate",
	Short: "Compute team ratings from a game feed",
	Long:  `Runs the rating pipeline: loads the game feed, builds the connectivity network, fits team ratings through randomized search attempts, calibrates the error model, and writes the rating report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd.Context())
	},
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if gamesPath != "" {
		loaded.Input.GamesPath = gamesPath
	}
	if outputPath != "" {
		loaded.Output.Path = outputPath
	}
	if logLevel != "" {
		loaded.App.LogLevel = logLevel
	}
	if season > 0 {
		loaded.Input.Season = season
	}
	if attempts > 0 {
		loaded.Rating.Attempts = attempts
	}
	if workers > 0 {
		loaded.Rating.Workers = workers
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	cfg = loaded
	return nil
}

func runPipeline(ctx context.Context) error {
	run := logger.NewRunLogger(appLogger)
	appLogger.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"built":   BuildDate,
		"season":  cfg.Input.Season,
	}).Info("Starting rating pipeline")

	metrics.InitRegistry()
	var monitorServer *monitor.Server
	if cfg.Metrics.Enabled {
		monitorServer = monitor.NewServer(monitor.Config{
			ServiceName: cfg.App.Name,
			Version:     Version,
			Port:        cfg.Metrics.Port,
			MetricsPath: cfg.Metrics.Path,
			Logger:      appLogger,
		})
		if err := monitorServer.Start(ctx); err != nil {
			return fmt.Errorf("failed to start monitoring server: %w", err)
		}
		defer monitorServer.Shutdown()
	}

	loader, err := gamestore.NewLoader(cfg, appLogger)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	store, err := loader.Load(cfg.Input.GamesPath)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	run.LogGamesLoaded(cfg.Input.GamesPath, len(store.Played), len(store.Unplayed), store.Skipped, store.PreseasonTracked)
	metrics.UpdateGamesLoaded(len(store.Played))
	if monitorServer != nil {
		monitorServer.SetReady(true)
	}

	net, err := network.Build(store, appLogger)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	run.LogNetworkBuilt(store.TeamCount(), net.Size(), len(net.Components), len(net.Excluded))
	metrics.UpdateNetwork(net.Size(), len(net.Excluded))

	rating.ApplyWeights(store, net, cfg)
	stats, err := rating.ComputeLeagueStats(store, cfg.Rating)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}

	engine := rating.NewEngine(cfg, store, net, stats, appLogger)
	results, err := engine.Run(ctx)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	agg, err := rating.Aggregate(results, net.Size())
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	run.LogAggregation(agg.Attempts, agg.Rejected, agg.HomeAdvantage)

	cal, err := calibration.Calibrate(store, net, agg, stats, cfg, appLogger)
	if err != nil {
		metrics.RecordPipelineRun("failure")
		return err
	}
	metrics.UpdateTieBound(cal.TieBound)

	rep := report.NewAssembler(store, net, stats, agg, cal, cfg).Assemble()
	if err := report.WriteJSON(rep, cfg.Output.Path); err != nil {
		metrics.RecordPipelineRun("failure")
		return fmt.Errorf("failed to write report: %w", err)
	}
	run.LogReportWritten(cfg.Output.Path, len(rep.TeamRatings), rep.RunID)
	metrics.RecordPipelineRun("success")
	return nil
}
