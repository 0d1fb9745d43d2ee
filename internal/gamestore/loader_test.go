package gamestore

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/models"
)

func testConfig(mode string) *config.Config {
	return &config.Config{
		Input: config.InputConfig{
			GamesPath:      "games.json",
			Season:         2024,
			EarliestSeason: 2023,
			TeamMatchMode:  mode,
			FinalDate:      "2024-12-01",
		},
	}
}

func testLoader(t *testing.T, mode string) *Loader {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	loader, err := NewLoader(testConfig(mode), logger)
	if err != nil {
		t.Fatalf("Failed to create loader: %v", err)
	}
	return loader
}

func writeFeed(t *testing.T, feed string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "games.json")
	if err := os.WriteFile(path, []byte(feed), 0o644); err != nil {
		t.Fatalf("Failed to write feed: %v", err)
	}
	return path
}

// TestLoadPlayedFilter tests that records missing required fields are kept
// out of the played set without failing the load
func TestLoadPlayedFilter(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g02": {"IsCompleted": true, "HomeScore": null, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14},
		"g03": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": null, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14},
		"g04": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": null, "Year": 2024, "Month": 9, "Day": 14},
		"g05": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 12, "Day": 15},
		"g06": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2022, "Year": 2022, "Month": 9, "Day": 14},
		"g07": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14, "IsPostponed": true},
		"g08": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": null}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(store.Played) != 1 {
		t.Fatalf("Expected 1 played game, got %d", len(store.Played))
	}
	if store.Played[0].GameID != "g01" {
		t.Errorf("Expected g01 to survive the filter, got %s", store.Played[0].GameID)
	}
	if store.Played[0].HomeScore != 21 || store.Played[0].AwayScore != 14 {
		t.Errorf("Unexpected scores: %d-%d", store.Played[0].HomeScore, store.Played[0].AwayScore)
	}
}

// TestLoadUnplayedFilter tests the future-game selection rules
func TestLoadUnplayedFilter(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g02": {"IsCompleted": false, "HomeName": "A", "AwayName": "B", "IsNeutralSite": true, "Season": 2024, "Year": 2024, "Month": 12, "Day": 28},
		"g03": {"IsCompleted": false, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2023, "Year": 2023, "Month": 11, "Day": 5},
		"g04": {"IsCompleted": false, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2025, "Year": 2025, "Month": 9, "Day": 6},
		"g05": {"IsCompleted": false, "HomeName": "A", "AwayName": "B", "IsNeutralSite": null, "Season": 2024, "Year": 2024, "Month": 12, "Day": 28}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(store.Unplayed) != 2 {
		t.Fatalf("Expected 2 unplayed games, got %d", len(store.Unplayed))
	}
	if store.Unplayed[0].GameID != "g02" || store.Unplayed[1].GameID != "g04" {
		t.Errorf("Unexpected unplayed games: %s, %s", store.Unplayed[0].GameID, store.Unplayed[1].GameID)
	}

	// The g02 date is past the final rating date, which only cuts off
	// played games.
	if store.Unplayed[0].Date.Month() != 12 {
		t.Errorf("Expected December date to pass the future filter, got %v", store.Unplayed[0].Date)
	}
}

// TestTeamDerivationNameMode tests that name-mode teams come from played
// games only, sorted by name
func TestTeamDerivationNameMode(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "Zebras", "AwayName": "Antelopes", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g02": {"IsCompleted": true, "HomeScore": 7, "AwayScore": 3, "HomeName": "Meerkats", "AwayName": "Zebras", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14},
		"g03": {"IsCompleted": false, "HomeName": "Zebras", "AwayName": "Newcomers", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 11, "Day": 30}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"Antelopes", "Meerkats", "Zebras"}
	if len(store.Teams) != len(want) {
		t.Fatalf("Expected %d teams, got %d", len(want), len(store.Teams))
	}
	for i, name := range want {
		if store.Teams[i].Name != name {
			t.Errorf("Team %d: expected %s, got %s", i, name, store.Teams[i].Name)
		}
		if store.Teams[i].AllIndex != i {
			t.Errorf("Team %s: expected index %d, got %d", name, i, store.Teams[i].AllIndex)
		}
	}

	// Newcomers has no completed games, so the scheduled game carries an
	// unresolved away side.
	if len(store.Unplayed) != 1 {
		t.Fatalf("Expected 1 unplayed game, got %d", len(store.Unplayed))
	}
	if store.Unplayed[0].AwayIndex != -1 {
		t.Errorf("Expected unresolved away index, got %d", store.Unplayed[0].AwayIndex)
	}
	if store.Unplayed[0].AwayKey != "Newcomers" {
		t.Errorf("Expected away key Newcomers, got %s", store.Unplayed[0].AwayKey)
	}
}

// TestTeamDerivationIDMode tests ID-mode naming and that scheduled-only
// teams still enter the team list
func TestTeamDerivationIDMode(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 20, "AwayScore": 10, "HomeID": 1, "AwayID": 2, "HomeName": "Old State", "AwayName": "Rivers", "IsNeutralSite": false, "Season": 2023, "Year": 2023, "Month": 9, "Day": 9},
		"g02": {"IsCompleted": true, "HomeScore": 17, "AwayScore": 13, "HomeID": 1, "AwayID": 2, "HomeName": "New State", "AwayName": "Rivers", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g03": {"IsCompleted": false, "HomeID": 3, "AwayID": 1, "HomeName": "Lakers", "AwayName": "New State", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 11, "Day": 30}
	}`
	store, err := testLoader(t, "id").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Lakers never played but is scheduled, so it becomes a team. Names
	// resolve from the most recent season first, so ID 1 is New State.
	want := map[string]string{"1": "New State", "2": "Rivers", "3": "Lakers"}
	if len(store.Teams) != len(want) {
		t.Fatalf("Expected %d teams, got %d", len(want), len(store.Teams))
	}
	for _, team := range store.Teams {
		if want[team.ID] != team.Name {
			t.Errorf("Team %s: expected name %s, got %s", team.ID, want[team.ID], team.Name)
		}
	}

	// Sorted by name: Lakers, New State, Rivers.
	if store.Teams[0].Name != "Lakers" || store.Teams[1].Name != "New State" || store.Teams[2].Name != "Rivers" {
		t.Errorf("Teams not sorted by name: %v, %v, %v", store.Teams[0].Name, store.Teams[1].Name, store.Teams[2].Name)
	}

	idx, ok := store.TeamIndex("3")
	if !ok || idx != 0 {
		t.Errorf("Expected Lakers at index 0, got %d (ok=%v)", idx, ok)
	}
}

// TestLoadFlexibleFields tests tolerance for numbers wrapped in strings
// and numeric team IDs
func TestLoadFlexibleFields(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": "28", "AwayScore": 7, "HomeID": 42, "AwayID": "43", "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": "2024", "Year": "2024", "Month": "9", "Day": "7"}
	}`
	store, err := testLoader(t, "id").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(store.Played) != 1 {
		t.Fatalf("Expected 1 played game, got %d", len(store.Played))
	}
	game := store.Played[0]
	if game.HomeScore != 28 {
		t.Errorf("Expected home score 28, got %d", game.HomeScore)
	}
	if game.Season != 2024 {
		t.Errorf("Expected season 2024, got %d", game.Season)
	}
	if _, ok := store.TeamIndex("42"); !ok {
		t.Error("Expected numeric HomeID to normalize to key 42")
	}
	if _, ok := store.TeamIndex("43"); !ok {
		t.Error("Expected string AwayID to normalize to key 43")
	}
}

// TestPreseasonTracking tests that preseason filtering only activates when
// the feed carries the flag
func TestPreseasonTracking(t *testing.T) {
	plain := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, plain))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if store.PreseasonTracked {
		t.Error("Expected preseason tracking off for a feed without the flag")
	}

	flagged := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7, "IsPreseason": false},
		"g02": {"IsCompleted": true, "HomeScore": 3, "AwayScore": 0, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 8, "Day": 24, "IsPreseason": true},
		"g03": {"IsCompleted": true, "HomeScore": 9, "AwayScore": 6, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14}
	}`
	store, err = testLoader(t, "name").Load(writeFeed(t, flagged))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !store.PreseasonTracked {
		t.Error("Expected preseason tracking on")
	}
	// g03 has no preseason flag while the feed tracks it, so it drops out.
	if len(store.Played) != 2 {
		t.Fatalf("Expected 2 played games, got %d", len(store.Played))
	}
	if !store.Played[1].Preseason {
		t.Error("Expected g02 to be flagged preseason")
	}
}

// TestLoadSkipsBadRecords tests that undecodable records are counted, not
// fatal
func TestLoadSkipsBadRecords(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 21, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g02": {"IsCompleted": true, "HomeScore": {"points": 10}, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14},
		"g03": {"IsCompleted": true, "HomeScore": 10, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": "twenty24", "Month": 9, "Day": 14}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if store.Skipped != 2 {
		t.Errorf("Expected 2 skipped records, got %d", store.Skipped)
	}
	if len(store.Played) != 1 {
		t.Errorf("Expected 1 played game, got %d", len(store.Played))
	}
}

// TestAffiliations tests division and conference assignment from
// target-season games
func TestAffiliations(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": true, "HomeScore": 20, "AwayScore": 10, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2023, "Year": 2023, "Month": 9, "Day": 9, "HomeConference": "Stale East", "AwayConference": "Stale West"},
		"g02": {"IsCompleted": true, "HomeScore": 17, "AwayScore": 13, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7, "HomeConference": "East", "HomeDivision": null, "AwayConference": "West"},
		"g03": {"IsCompleted": true, "HomeScore": 14, "AwayScore": 10, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 21, "HomeConference": "Other", "HomeDivision": "North"}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	idx, _ := store.TeamIndex("A")
	teamA := store.Teams[idx]
	if teamA.Conference == nil || *teamA.Conference != "East" {
		t.Errorf("Expected conference East from the first current-season game, got %v", teamA.Conference)
	}
	// Division was null in g02, so the later game fills it.
	if teamA.Division == nil || *teamA.Division != "North" {
		t.Errorf("Expected division North, got %v", teamA.Division)
	}

	idx, _ = store.TeamIndex("B")
	teamB := store.Teams[idx]
	if teamB.Conference == nil || *teamB.Conference != "West" {
		t.Errorf("Expected conference West, got %v", teamB.Conference)
	}
	if teamB.Division != nil {
		t.Errorf("Expected no division for B, got %v", *teamB.Division)
	}
}

// TestLoadNoPlayableGames tests the hard error when filtering removes
// everything
func TestLoadNoPlayableGames(t *testing.T) {
	feed := `{
		"g01": {"IsCompleted": false, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 12, "Day": 28},
		"g02": {"IsCompleted": true, "HomeScore": null, "AwayScore": 14, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14}
	}`
	_, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err == nil {
		t.Fatal("Expected an error for a feed with no playable games")
	}
	if !errors.Is(err, models.ErrNoGames) {
		t.Errorf("Expected ErrNoGames, got: %v", err)
	}
}

// TestLoadMissingFile tests the error path for an absent feed
func TestLoadMissingFile(t *testing.T) {
	_, err := testLoader(t, "name").Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("Expected an error for a missing feed file")
	}
}

// TestLoadGameOrder tests that games come out in lexicographic game-ID
// order regardless of feed order
func TestLoadGameOrder(t *testing.T) {
	feed := `{
		"g30": {"IsCompleted": true, "HomeScore": 1, "AwayScore": 0, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 21},
		"g10": {"IsCompleted": true, "HomeScore": 2, "AwayScore": 0, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 7},
		"g20": {"IsCompleted": true, "HomeScore": 3, "AwayScore": 0, "HomeName": "A", "AwayName": "B", "IsNeutralSite": false, "Season": 2024, "Year": 2024, "Month": 9, "Day": 14}
	}`
	store, err := testLoader(t, "name").Load(writeFeed(t, feed))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"g10", "g20", "g30"}
	for i, id := range want {
		if store.Played[i].GameID != id {
			t.Errorf("Game %d: expected %s, got %s", i, id, store.Played[i].GameID)
		}
	}
}
