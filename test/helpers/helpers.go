// Package helpers provides shared fixtures for the end-to-end tests: game
// feed builders, a fully populated run configuration, and report readers.
package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/report"
)

// Record is one raw feed entry under construction. Tests mutate entries
// directly to model missing or malformed fields.
type Record map[string]interface{}

// Feed is a game feed keyed by game ID, ready to marshal.
type Feed map[string]Record

// CompletedGame builds a finished regular-season game record.
func CompletedGame(home, away string, homeScore, awayScore, season int, date string) Record {
	rec := baseGame(home, away, season, date)
	rec["IsCompleted"] = true
	rec["HomeScore"] = homeScore
	rec["AwayScore"] = awayScore
	return rec
}

// ScheduledGame builds an upcoming game record with no scores.
func ScheduledGame(home, away string, season int, date string) Record {
	rec := baseGame(home, away, season, date)
	rec["IsCompleted"] = false
	return rec
}

func baseGame(home, away string, season int, date string) Record {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(fmt.Sprintf("bad fixture date %q: %v", date, err))
	}
	return Record{
		"HomeName":      home,
		"AwayName":      away,
		"HomeID":        home,
		"AwayID":        away,
		"IsNeutralSite": false,
		"IsPreseason":   false,
		"Season":        season,
		"Year":          day.Year(),
		"Month":         int(day.Month()),
		"Day":           day.Day(),
	}
}

// WriteFeed persists the feed as a JSON file under dir and returns its path.
func WriteFeed(t *testing.T, dir string, feed Feed) string {
	t.Helper()

	data, err := json.MarshalIndent(feed, "", "  ")
	require.NoError(t, err, "failed to marshal game feed")

	path := filepath.Join(dir, "games.json")
	require.NoError(t, os.WriteFile(path, data, 0o644), "failed to write game feed")
	return path
}

// TestConfig returns a complete run configuration pointed at the given feed
// and output paths, with a small attempt count so runs stay fast.
func TestConfig(gamesPath, outputPath string) *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "netrater",
			Environment: "development",
			LogLevel:    "error",
		},
		Input: config.InputConfig{
			GamesPath:      gamesPath,
			Season:         2024,
			EarliestSeason: 2022,
			TeamMatchMode:  "name",
			FinalDate:      "2024-12-31",
		},
		Rating: config.RatingConfig{
			Attempts:             3,
			Workers:              2,
			PreseasonWeight:      0.25,
			PriorSeasonWeight:    0.5,
			PriorPreseasonWeight: 0.1,
			ResetInterval:        50,
			StopThreshold:        200,
			ScaleBaseline:        20,
			ScaleFactor:          27,
			ScaleCap:             100,
		},
		Tie:    config.TieConfig{TargetProbability: 0.02, SearchStep: 0.5},
		Output: config.OutputConfig{Path: outputPath},
		Metrics: config.MetricsConfig{
			Enabled: false,
			Port:    9090,
			Path:    "/metrics",
		},
	}
}

// QuietLogger returns a logger that swallows all output.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// ReadReport loads and decodes a persisted rating report.
func ReadReport(t *testing.T, path string) *report.Report {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read report at %s", path)

	rep := &report.Report{}
	require.NoError(t, json.Unmarshal(data, rep), "failed to decode report")
	return rep
}

// ReadReportKeys loads the report as a raw key map for schema checks.
func ReadReportKeys(t *testing.T, path string) map[string]json.RawMessage {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "failed to read report at %s", path)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw), "failed to decode report")
	return raw
}

// SkipIfShort skips the test in short mode.
func SkipIfShort(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test in short mode")
	}
}
