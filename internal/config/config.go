// Package config provides configuration management for the netrater application.
package config

import (
	"runtime"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	Input   InputConfig   `mapstructure:"input" validate:"required"`
	Rating  RatingConfig  `mapstructure:"rating" validate:"required"`
	Tie     TieConfig     `mapstructure:"tie" validate:"required"`
	Output  OutputConfig  `mapstructure:"output" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// InputConfig represents the game feed and season window configuration
type InputConfig struct {
	GamesPath      string `mapstructure:"games_path" validate:"required"`
	Season         int    `mapstructure:"season" validate:"required,gt=0"`
	EarliestSeason int    `mapstructure:"earliest_season" validate:"required,gt=0"`
	TeamMatchMode  string `mapstructure:"team_match_mode" validate:"required,matchmode"`
	FinalDate      string `mapstructure:"final_date" validate:"required,datetime=2006-01-02"`
}

// RatingConfig represents the randomized search configuration. The three
// season policy weights are clamped to [0,1] at load time rather than
// rejected.
type RatingConfig struct {
	Attempts             int     `mapstructure:"attempts" validate:"required,gt=0"`
	Workers              int     `mapstructure:"workers" validate:"gte=0"`
	PreseasonWeight      float64 `mapstructure:"preseason_weight"`
	PriorSeasonWeight    float64 `mapstructure:"prior_season_weight"`
	PriorPreseasonWeight float64 `mapstructure:"prior_preseason_weight"`
	ResetInterval        int     `mapstructure:"reset_interval" validate:"required,gt=0"`
	StopThreshold        int     `mapstructure:"stop_threshold" validate:"required,gt=0"`
	ScaleBaseline        float64 `mapstructure:"scale_baseline" validate:"required,gt=0"`
	ScaleFactor          float64 `mapstructure:"scale_factor" validate:"required,gt=0"`
	ScaleCap             float64 `mapstructure:"scale_cap"`
}

// TieConfig represents the tie-bound calibration configuration
type TieConfig struct {
	TargetProbability float64 `mapstructure:"target_probability" validate:"gte=0,lt=1"`
	SearchStep        float64 `mapstructure:"search_step" validate:"gte=0"`
}

// OutputConfig represents the report output configuration
type OutputConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// MatchByID checks if teams are matched by external ID rather than name
func (c *Config) MatchByID() bool {
	return c.Input.TeamMatchMode == "id"
}

// ParsedFinalDate returns the final inclusion date as a time.Time
func (c *Config) ParsedFinalDate() (time.Time, error) {
	return time.Parse("2006-01-02", c.Input.FinalDate)
}

// EffectiveWorkers returns the configured worker count, defaulting to the
// number of CPUs when unset
func (c *Config) EffectiveWorkers() int {
	if c.Rating.Workers > 0 {
		return c.Rating.Workers
	}
	return runtime.NumCPU()
}

// clampWeights bounds the season policy weights to [0,1]
func (c *Config) clampWeights() {
	c.Rating.PreseasonWeight = clamp01(c.Rating.PreseasonWeight)
	c.Rating.PriorSeasonWeight = clamp01(c.Rating.PriorSeasonWeight)
	c.Rating.PriorPreseasonWeight = clamp01(c.Rating.PriorPreseasonWeight)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
