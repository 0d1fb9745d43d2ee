package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/netrater/internal/calibration"
	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/models"
	"github.com/yourusername/netrater/internal/network"
	"github.com/yourusername/netrater/internal/rating"
)

const dateLayout = "2006-01-02"

// Assembler packages the pipeline outputs into the persisted report.
type Assembler struct {
	store *gamestore.Store
	net   *network.Network
	stats *rating.LeagueStats
	agg   *rating.Aggregated
	cal   *calibration.Result
	cfg   *config.Config
}

// NewAssembler wires the pipeline outputs into an assembler.
func NewAssembler(store *gamestore.Store, net *network.Network, stats *rating.LeagueStats, agg *rating.Aggregated, cal *calibration.Result, cfg *config.Config) *Assembler {
	return &Assembler{store: store, net: net, stats: stats, agg: agg, cal: cal, cfg: cfg}
}

// Assemble builds the full report: run metadata, error models, league
// statistics, the aggregated ratings, and the enriched schedules.
func (a *Assembler) Assemble() *Report {
	rep := &Report{
		RunID:       uuid.New().String(),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),

		TieCDFBound:             a.cal.TieBound,
		IsPredictionErrorNormal: a.cal.Margin.Normal,
		PredictionErrorStDev:    a.cal.Margin.StDev,
		PredictionErrorDF:       a.cal.Margin.DF,
		IsScoreErrorNormal:      a.cal.Score.Normal,
		ScoreErrorStDev:         a.cal.Score.StDev,
		ScoreErrorDF:            a.cal.Score.DF,
		IsTotalScoreErrorNormal: a.cal.TotalScore.Normal,
		TotalScoreErrorStDev:    a.cal.TotalScore.StDev,
		TotalScoreErrorDF:       a.cal.TotalScore.DF,

		NumberOfGames:           a.stats.NumberOfGames,
		Season:                  a.cfg.Input.Season,
		EarliestSeasonUsed:      a.cfg.Input.EarliestSeason,
		PreseasonWeight:         a.cfg.Rating.PreseasonWeight,
		PriorPreseasonWeight:    a.cfg.Rating.PriorPreseasonWeight,
		PriorSeasonWeight:       a.cfg.Rating.PriorSeasonWeight,
		NumberOfRatingAttempts:  a.cfg.Rating.Attempts,
		FinalRatingDate:         a.cfg.Input.FinalDate,
		RequestedTieProbability: a.cfg.Tie.TargetProbability,

		HomeAdvantage:      a.agg.HomeAdvantage,
		HomeAdvantageStDev: a.agg.HomeAdvantageStDev,
		HomeAdvantageList:  a.agg.HomeAdvantageList,

		ScoreMean:  a.stats.ScoreMean,
		ScoreStDev: a.stats.ScoreStDev,

		ActualMarginList:     a.stats.AbsMargins,
		ActualScoreList:      a.stats.Scores,
		ActualTotalScoreList: a.stats.TotalScores,

		PastSchedule:   []PastGame{},
		FutureSchedule: []FutureGame{},
		TeamRatings:    make(map[string]*TeamRating),
	}

	for _, team := range a.rankedTeams() {
		entry := a.teamEntry(team.team, team.rank)
		a.appendSchedules(entry, team.team)
		rep.TeamRatings[team.team.ID] = entry
		rep.PastSchedule = append(rep.PastSchedule, a.homePastGames(team.team, entry)...)
		rep.FutureSchedule = append(rep.FutureSchedule, a.homeFutureGames(team.team, entry)...)
	}
	return rep
}

type rankedTeam struct {
	team *models.Team
	rank int
}

// rankedTeams orders the rated teams by descending overall rating. Equal
// ratings keep network order.
func (a *Assembler) rankedTeams() []rankedTeam {
	teams := make([]rankedTeam, 0, a.net.Size())
	for _, allIndex := range a.net.Primary {
		teams = append(teams, rankedTeam{team: &a.store.Teams[allIndex]})
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return a.agg.Overall[teams[i].team.NetworkIndex] > a.agg.Overall[teams[j].team.NetworkIndex]
	})
	for i := range teams {
		teams[i].rank = i + 1
	}
	return teams
}

func (a *Assembler) teamEntry(team *models.Team, rank int) *TeamRating {
	idx := team.NetworkIndex
	return &TeamRating{
		Rank: rank,
		Name: team.Name,

		Rating:        a.agg.Overall[idx],
		OffenseRating: a.agg.Offense[idx],
		DefenseRating: a.agg.Defense[idx],

		RatingStDev:        a.agg.OverallStDev[idx],
		OffenseRatingStDev: a.agg.OffenseStDev[idx],
		DefenseRatingStDev: a.agg.DefenseStDev[idx],

		RatingList:        column(a.agg.OverallLists, idx),
		OffenseRatingList: column(a.agg.OffenseLists, idx),
		DefenseRatingList: column(a.agg.DefenseLists, idx),

		Division:   team.Division,
		Conference: team.Conference,

		PastSchedule:   []TeamPastGame{},
		FutureSchedule: []TeamFutureGame{},
	}
}

func column(lists [][]float64, idx int) []float64 {
	values := make([]float64, len(lists))
	for i := range lists {
		values[i] = lists[i][idx]
	}
	return values
}

// pastEligible reports whether a completed game belongs in the schedule
// output: both teams rated and a positive policy weight.
func (a *Assembler) pastEligible(game *models.Game) bool {
	return game.InNetwork && game.PolicyWeight > 0
}

// futureEligible reports whether a scheduled game belongs in the schedule
// output. Preseason games drop out when preseason play carries no weight.
func (a *Assembler) futureEligible(game *models.UnplayedGame) bool {
	if a.store.PreseasonTracked && game.Preseason && a.cfg.Rating.PreseasonWeight == 0 {
		return false
	}
	return true
}

// appendSchedules fills the team's own view of its past and future games.
func (a *Assembler) appendSchedules(entry *TeamRating, team *models.Team) {
	for i := range a.store.Played {
		game := &a.store.Played[i]
		if !a.pastEligible(game) {
			continue
		}
		if game.HomeIndex != team.AllIndex && game.AwayIndex != team.AllIndex {
			continue
		}
		entry.PastSchedule = append(entry.PastSchedule, a.teamPastGame(entry, team, game))
	}
	for i := range a.store.Unplayed {
		game := &a.store.Unplayed[i]
		if !a.futureEligible(game) {
			continue
		}
		if game.HomeKey != team.ID && game.AwayKey != team.ID {
			continue
		}
		entry.FutureSchedule = append(entry.FutureSchedule, a.teamFutureGame(entry, team, game))
	}
}

func (a *Assembler) teamPastGame(entry *TeamRating, team *models.Team, game *models.Game) TeamPastGame {
	rec := game.Record
	isHome := game.HomeIndex == team.AllIndex

	oppAllIndex := game.AwayIndex
	if !isHome {
		oppAllIndex = game.HomeIndex
	}
	opp := &a.store.Teams[oppAllIndex]
	oppIdx := opp.NetworkIndex

	out := TeamPastGame{
		Season:                game.Season,
		Team:                  team.ID,
		TeamName:              team.Name,
		TeamRating:            entry.Rating,
		TeamOffenseRating:     entry.OffenseRating,
		TeamDefenseRating:     entry.DefenseRating,
		Opponent:              opp.ID,
		OpponentName:          opp.Name,
		OpponentRating:        a.agg.Overall[oppIdx],
		OpponentOffenseRating: a.agg.Offense[oppIdx],
		OpponentDefenseRating: a.agg.Defense[oppIdx],
		IsPreseason:           game.Preseason,
		IsNeutralSite:         game.Neutral,
		IsHomeGame:            isHome && !game.Neutral,
		IsAwayGame:            !isHome && !game.Neutral,
		Date:                  game.Date.Format(dateLayout),
		IsConferenceGame:      rec.IsConferenceGame,
		Week:                  weekPtr(rec),
		WeekString:            rec.WeekString,
	}
	if isHome {
		out.TeamScore = game.HomeScore
		out.OpponentScore = game.AwayScore
		out.TeamConference = rec.HomeConference
		out.TeamDivision = rec.HomeDivision
		out.OpponentConference = rec.AwayConference
		out.OpponentDivision = rec.AwayDivision
	} else {
		out.TeamScore = game.AwayScore
		out.OpponentScore = game.HomeScore
		out.TeamConference = rec.AwayConference
		out.TeamDivision = rec.AwayDivision
		out.OpponentConference = rec.HomeConference
		out.OpponentDivision = rec.HomeDivision
	}
	return out
}

func (a *Assembler) teamFutureGame(entry *TeamRating, team *models.Team, game *models.UnplayedGame) TeamFutureGame {
	rec := game.Record
	isHome := game.HomeKey == team.ID

	oppKey := game.AwayKey
	oppName := rec.AwayName
	oppAllIndex := game.AwayIndex
	if !isHome {
		oppKey = game.HomeKey
		oppName = rec.HomeName
		oppAllIndex = game.HomeIndex
	}

	out := TeamFutureGame{
		Season:            game.Season,
		Team:              team.ID,
		TeamName:          team.Name,
		TeamRating:        entry.Rating,
		TeamOffenseRating: entry.OffenseRating,
		TeamDefenseRating: entry.DefenseRating,
		Opponent:          oppKey,
		OpponentName:      oppName,
		IsPreseason:       game.Preseason,
		IsNeutralSite:     rec.Neutral(),
		IsHomeGame:        isHome && !rec.Neutral(),
		IsAwayGame:        !isHome && !rec.Neutral(),
		Date:              game.Date.Format(dateLayout),
		IsConferenceGame:  rec.IsConferenceGame,
		Week:              weekPtr(rec),
		WeekString:        rec.WeekString,
	}
	if oppAllIndex >= 0 {
		if oppIdx := a.store.Teams[oppAllIndex].NetworkIndex; oppIdx >= 0 {
			out.OpponentRating = floatPtr(a.agg.Overall[oppIdx])
			out.OpponentOffenseRating = floatPtr(a.agg.Offense[oppIdx])
			out.OpponentDefenseRating = floatPtr(a.agg.Defense[oppIdx])
		}
	}
	if isHome {
		out.TeamConference = rec.HomeConference
		out.TeamDivision = rec.HomeDivision
		out.OpponentConference = rec.AwayConference
		out.OpponentDivision = rec.AwayDivision
	} else {
		out.TeamConference = rec.AwayConference
		out.TeamDivision = rec.AwayDivision
		out.OpponentConference = rec.HomeConference
		out.OpponentDivision = rec.HomeDivision
	}
	return out
}

// homePastGames builds the team's home games for the top-level schedule,
// which lists every game once from the home side.
func (a *Assembler) homePastGames(team *models.Team, entry *TeamRating) []PastGame {
	var games []PastGame
	for i := range a.store.Played {
		game := &a.store.Played[i]
		if !a.pastEligible(game) || game.HomeIndex != team.AllIndex {
			continue
		}
		rec := game.Record
		opp := &a.store.Teams[game.AwayIndex]
		oppIdx := opp.NetworkIndex
		games = append(games, PastGame{
			Season:            game.Season,
			HomeID:            team.ID,
			HomeName:          team.Name,
			HomeRating:        entry.Rating,
			HomeOffenseRating: entry.OffenseRating,
			HomeDefenseRating: entry.DefenseRating,
			AwayID:            opp.ID,
			AwayName:          opp.Name,
			AwayRating:        a.agg.Overall[oppIdx],
			AwayOffenseRating: a.agg.Offense[oppIdx],
			AwayDefenseRating: a.agg.Defense[oppIdx],
			IsPreseason:       game.Preseason,
			IsNeutralSite:     game.Neutral,
			HomeScore:         game.HomeScore,
			AwayScore:         game.AwayScore,
			Date:              game.Date.Format(dateLayout),
			IsConferenceGame:  rec.IsConferenceGame,
			HomeConference:    rec.HomeConference,
			HomeDivision:      rec.HomeDivision,
			AwayConference:    rec.AwayConference,
			AwayDivision:      rec.AwayDivision,
			Week:              weekPtr(rec),
			WeekString:        rec.WeekString,
		})
	}
	return games
}

func (a *Assembler) homeFutureGames(team *models.Team, entry *TeamRating) []FutureGame {
	var games []FutureGame
	for i := range a.store.Unplayed {
		game := &a.store.Unplayed[i]
		if !a.futureEligible(game) || game.HomeKey != team.ID {
			continue
		}
		rec := game.Record
		out := FutureGame{
			Season:            game.Season,
			HomeID:            team.ID,
			HomeName:          team.Name,
			HomeRating:        entry.Rating,
			HomeOffenseRating: entry.OffenseRating,
			HomeDefenseRating: entry.DefenseRating,
			AwayID:            game.AwayKey,
			AwayName:          rec.AwayName,
			IsPreseason:       game.Preseason,
			IsNeutralSite:     rec.Neutral(),
			Date:              game.Date.Format(dateLayout),
			IsConferenceGame:  rec.IsConferenceGame,
			HomeConference:    rec.HomeConference,
			HomeDivision:      rec.HomeDivision,
			AwayConference:    rec.AwayConference,
			AwayDivision:      rec.AwayDivision,
			Week:              weekPtr(rec),
			WeekString:        rec.WeekString,
		}
		if game.AwayIndex >= 0 {
			if oppIdx := a.store.Teams[game.AwayIndex].NetworkIndex; oppIdx >= 0 {
				out.AwayRating = floatPtr(a.agg.Overall[oppIdx])
				out.AwayOffenseRating = floatPtr(a.agg.Offense[oppIdx])
				out.AwayDefenseRating = floatPtr(a.agg.Defense[oppIdx])
			}
		}
		games = append(games, out)
	}
	return games
}

func weekPtr(rec *models.GameRecord) *int {
	if rec.Week == nil {
		return nil
	}
	week := rec.Week.Int()
	return &week
}

func floatPtr(v float64) *float64 {
	return &v
}
