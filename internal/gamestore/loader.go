package gamestore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/models"
)

// Loader reads a JSON game feed keyed by game ID, applies the inclusion
// filters for the configured season window, and derives the team list.
type Loader struct {
	season         int
	earliestSeason int
	matchByID      bool
	finalDate      time.Time
	logger         *logrus.Logger
}

// keyedRecord pairs a decoded record with its feed ID so the filtered
// slices keep lexicographic game-ID order.
type keyedRecord struct {
	id  string
	rec *models.GameRecord
}

// NewLoader creates a Loader from the run configuration.
func NewLoader(cfg *config.Config, logger *logrus.Logger) (*Loader, error) {
	finalDate, err := cfg.ParsedFinalDate()
	if err != nil {
		return nil, fmt.Errorf("invalid final date %q: %w", cfg.Input.FinalDate, err)
	}
	return &Loader{
		season:         cfg.Input.Season,
		earliestSeason: cfg.Input.EarliestSeason,
		matchByID:      cfg.MatchByID(),
		finalDate:      finalDate,
		logger:         logger,
	}, nil
}

// Load reads the feed at path and returns the filtered Store. Records that
// fail to decode are counted and skipped rather than failing the run; an
// empty played-game set after filtering is fatal.
func (l *Loader) Load(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game feed %s: %w", path, err)
	}
	var feed map[string]json.RawMessage
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse game feed %s: %w", path, err)
	}

	ids := make([]string, 0, len(feed))
	for id := range feed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	decoded := make([]keyedRecord, 0, len(ids))
	skipped := 0
	for _, id := range ids {
		rec := &models.GameRecord{}
		if err := json.Unmarshal(feed[id], rec); err != nil {
			skipped++
			l.logger.WithFields(logrus.Fields{
				"game_id": id,
				"error":   err.Error(),
			}).Warn("Skipping game record that failed to decode")
			continue
		}
		decoded = append(decoded, keyedRecord{id: id, rec: rec})
	}

	trackPreseason := false
	for _, g := range decoded {
		if g.rec.IsPreseason != nil {
			trackPreseason = true
			break
		}
	}

	var played, unplayed []keyedRecord
	for _, g := range decoded {
		if l.playedEligible(g.rec, trackPreseason) {
			played = append(played, g)
		} else if l.unplayedEligible(g.rec, trackPreseason) {
			unplayed = append(unplayed, g)
		}
	}
	if len(played) == 0 {
		return nil, fmt.Errorf("no playable games in %s after filtering %d records: %w", path, len(decoded), models.ErrNoGames)
	}

	teams, index := l.deriveTeams(played, unplayed)
	l.fillAffiliations(teams, index, played, unplayed)

	store := &Store{
		Teams:            teams,
		Played:           l.resolvePlayed(played, index),
		Unplayed:         l.resolveUnplayed(unplayed, index),
		PreseasonTracked: trackPreseason,
		Skipped:          skipped,
		matchByID:        l.matchByID,
		index:            index,
	}
	return store, nil
}

// playedEligible applies the completed-game inclusion filter: the game is
// finished, fully scored and dated, inside the season window, and not past
// the final rating date.
func (l *Loader) playedEligible(rec *models.GameRecord, trackPreseason bool) bool {
	if !rec.Completed() || rec.HomeScore == nil || rec.AwayScore == nil {
		return false
	}
	if rec.IsNeutralSite == nil || rec.Season == nil {
		return false
	}
	date, ok := rec.Date()
	if !ok || date.After(l.finalDate) {
		return false
	}
	season := rec.Season.Int()
	if season < l.earliestSeason || season > l.season {
		return false
	}
	if trackPreseason && rec.IsPreseason == nil {
		return false
	}
	if rec.Postponed() {
		return false
	}
	if l.matchByID && (rec.HomeID == nil || rec.AwayID == nil) {
		return false
	}
	return true
}

// unplayedEligible applies the future-game filter: explicitly not
// completed, dated, and in the target season or later. Future games have
// no final-date cutoff.
func (l *Loader) unplayedEligible(rec *models.GameRecord, trackPreseason bool) bool {
	if rec.Completed() {
		return false
	}
	if rec.IsNeutralSite == nil || rec.Season == nil {
		return false
	}
	if _, ok := rec.Date(); !ok {
		return false
	}
	if rec.Season.Int() < l.season {
		return false
	}
	if trackPreseason && rec.IsPreseason == nil {
		return false
	}
	if rec.Postponed() {
		return false
	}
	if l.matchByID && (rec.HomeID == nil || rec.AwayID == nil) {
		return false
	}
	return true
}

func (l *Loader) homeKey(rec *models.GameRecord) string {
	if l.matchByID {
		return rec.HomeID.String()
	}
	return rec.HomeName
}

func (l *Loader) awayKey(rec *models.GameRecord) string {
	if l.matchByID {
		return rec.AwayID.String()
	}
	return rec.AwayName
}

// deriveTeams builds the team list. In ID mode the display name attached
// to an ID is the first one seen scanning seasons from the target season
// backwards, played games before unplayed, so current-season naming wins
// over historical naming. In name mode only played games contribute teams.
// Either way the final list is sorted by display name so downstream
// indices are mode-independent.
func (l *Loader) deriveTeams(played, unplayed []keyedRecord) ([]models.Team, map[string]int) {
	names := make(map[string]string)
	order := make([]string, 0, 2*len(played))
	link := func(key, name string) {
		if _, ok := names[key]; !ok {
			names[key] = name
			order = append(order, key)
		}
	}

	if l.matchByID {
		for season := l.season; season >= l.earliestSeason; season-- {
			for _, g := range played {
				if g.rec.Season.Int() != season {
					continue
				}
				link(l.homeKey(g.rec), g.rec.HomeName)
				link(l.awayKey(g.rec), g.rec.AwayName)
			}
			for _, g := range unplayed {
				if g.rec.Season.Int() != season {
					continue
				}
				link(l.homeKey(g.rec), g.rec.HomeName)
				link(l.awayKey(g.rec), g.rec.AwayName)
			}
		}
	} else {
		for _, g := range played {
			link(g.rec.HomeName, g.rec.HomeName)
			link(g.rec.AwayName, g.rec.AwayName)
		}
	}

	keys := make([]string, len(order))
	copy(keys, order)
	sort.SliceStable(keys, func(i, j int) bool { return names[keys[i]] < names[keys[j]] })

	teams := make([]models.Team, len(keys))
	index := make(map[string]int, len(keys))
	for i, key := range keys {
		teams[i] = models.Team{
			ID:           key,
			Name:         names[key],
			AllIndex:     i,
			NetworkIndex: -1,
		}
		index[key] = i
	}
	return teams, index
}

// fillAffiliations assigns division and conference from target-season
// games, played games first. The first non-null value per team wins,
// allowing for realignment across past seasons.
func (l *Loader) fillAffiliations(teams []models.Team, index map[string]int, played, unplayed []keyedRecord) {
	fill := func(key string, division, conference *string) {
		i, ok := index[key]
		if !ok {
			return
		}
		if teams[i].Division == nil && division != nil {
			teams[i].Division = division
		}
		if teams[i].Conference == nil && conference != nil {
			teams[i].Conference = conference
		}
	}
	for _, g := range played {
		if g.rec.Season.Int() != l.season {
			continue
		}
		fill(l.homeKey(g.rec), g.rec.HomeDivision, g.rec.HomeConference)
		fill(l.awayKey(g.rec), g.rec.AwayDivision, g.rec.AwayConference)
	}
	for _, g := range unplayed {
		if g.rec.Season.Int() != l.season {
			continue
		}
		fill(l.homeKey(g.rec), g.rec.HomeDivision, g.rec.HomeConference)
		fill(l.awayKey(g.rec), g.rec.AwayDivision, g.rec.AwayConference)
	}
}

func (l *Loader) resolvePlayed(played []keyedRecord, index map[string]int) []models.Game {
	games := make([]models.Game, 0, len(played))
	for _, g := range played {
		date, _ := g.rec.Date()
		games = append(games, models.Game{
			GameID:    g.id,
			HomeIndex: index[l.homeKey(g.rec)],
			AwayIndex: index[l.awayKey(g.rec)],
			HomeScore: g.rec.HomeScore.Int(),
			AwayScore: g.rec.AwayScore.Int(),
			Season:    g.rec.Season.Int(),
			Date:      date,
			Neutral:   g.rec.Neutral(),
			Preseason: g.rec.Preseason(),
			Record:    g.rec,
		})
	}
	return games
}

// resolveUnplayed maps future games onto the derived team list. A
// participant with no index entry (for example a name-mode team with no
// completed games) carries index -1 and is matched by key downstream.
func (l *Loader) resolveUnplayed(unplayed []keyedRecord, index map[string]int) []models.UnplayedGame {
	games := make([]models.UnplayedGame, 0, len(unplayed))
	for _, g := range unplayed {
		date, _ := g.rec.Date()
		homeKey := l.homeKey(g.rec)
		awayKey := l.awayKey(g.rec)
		homeIndex, ok := index[homeKey]
		if !ok {
			homeIndex = -1
		}
		awayIndex, ok := index[awayKey]
		if !ok {
			awayIndex = -1
		}
		games = append(games, models.UnplayedGame{
			GameID:    g.id,
			HomeKey:   homeKey,
			AwayKey:   awayKey,
			HomeIndex: homeIndex,
			AwayIndex: awayIndex,
			Season:    g.rec.Season.Int(),
			Date:      date,
			Preseason: g.rec.Preseason(),
			Record:    g.rec,
		})
	}
	return games
}
