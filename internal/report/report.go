// Package report assembles and persists the rating report, the sole output
// contract consumed by the downstream simulator and formatters.
package report

// Report is the persisted output of one rating run. Key names are fixed:
// downstream consumers read this structure and nothing else.
type Report struct {
	RunID       string `json:"RunID"`
	GeneratedAt string `json:"GeneratedAt"`

	TieCDFBound             float64 `json:"TieCDFBound"`
	IsPredictionErrorNormal bool    `json:"IsPredictionErrorNormal"`
	PredictionErrorStDev    float64 `json:"PredictionErrorStDev"`
	PredictionErrorDF       float64 `json:"PredictionErrorDF"`
	IsScoreErrorNormal      bool    `json:"IsScoreErrorNormal"`
	ScoreErrorStDev         float64 `json:"ScoreErrorStDev"`
	ScoreErrorDF            float64 `json:"ScoreErrorDF"`
	IsTotalScoreErrorNormal bool    `json:"IsTotalScoreErrorNormal"`
	TotalScoreErrorStDev    float64 `json:"TotalScoreErrorStDev"`
	TotalScoreErrorDF       float64 `json:"TotalScoreErrorDF"`

	NumberOfGames           int     `json:"NumberOfGames"`
	Season                  int     `json:"Season"`
	EarliestSeasonUsed      int     `json:"EarliestSeasonUsed"`
	PreseasonWeight         float64 `json:"PreseasonWeight"`
	PriorPreseasonWeight    float64 `json:"PriorPreseasonWeight"`
	PriorSeasonWeight       float64 `json:"PriorSeasonWeight"`
	NumberOfRatingAttempts  int     `json:"NumberOfRatingAttempts"`
	FinalRatingDate         string  `json:"FinalRatingDate"`
	RequestedTieProbability float64 `json:"RequestedTieProbability"`

	HomeAdvantage      float64   `json:"HomeAdvantage"`
	HomeAdvantageStDev float64   `json:"HomeAdvantageStDev"`
	HomeAdvantageList  []float64 `json:"HomeAdvantageList"`

	ScoreMean  float64 `json:"ScoreMean"`
	ScoreStDev float64 `json:"ScoreStDev"`

	ActualMarginList     []int `json:"ActualMarginList"`
	ActualScoreList      []int `json:"ActualScoreList"`
	ActualTotalScoreList []int `json:"ActualTotalScoreList"`

	PastSchedule   []PastGame             `json:"PastSchedule"`
	FutureSchedule []FutureGame           `json:"FutureSchedule"`
	TeamRatings    map[string]*TeamRating `json:"TeamRatings"`
}

// TeamRating is one rated team's record: rank, point estimates with
// uncertainty, the full per-attempt lists, affiliations, and the team's own
// view of its schedule.
type TeamRating struct {
	Rank int    `json:"Rank"`
	Name string `json:"Name"`

	Rating        float64 `json:"Rating"`
	OffenseRating float64 `json:"OffenseRating"`
	DefenseRating float64 `json:"DefenseRating"`

	RatingStDev        float64 `json:"RatingStDev"`
	OffenseRatingStDev float64 `json:"OffenseRatingStDev"`
	DefenseRatingStDev float64 `json:"DefenseRatingStDev"`

	RatingList        []float64 `json:"RatingList"`
	OffenseRatingList []float64 `json:"OffenseRatingList"`
	DefenseRatingList []float64 `json:"DefenseRatingList"`

	Division   *string `json:"Division"`
	Conference *string `json:"Conference"`

	PastSchedule   []TeamPastGame   `json:"PastSchedule"`
	FutureSchedule []TeamFutureGame `json:"FutureSchedule"`
}

// PastGame is a completed game in the top-level schedule, keyed from the
// home team's perspective and enriched with both teams' ratings.
type PastGame struct {
	Season            int      `json:"Season"`
	HomeID            string   `json:"HomeID"`
	HomeName          string   `json:"HomeName"`
	HomeRating        float64  `json:"HomeRating"`
	HomeOffenseRating float64  `json:"HomeOffenseRating"`
	HomeDefenseRating float64  `json:"HomeDefenseRating"`
	AwayID            string   `json:"AwayID"`
	AwayName          string   `json:"AwayName"`
	AwayRating        float64  `json:"AwayRating"`
	AwayOffenseRating float64  `json:"AwayOffenseRating"`
	AwayDefenseRating float64  `json:"AwayDefenseRating"`
	IsPreseason       bool     `json:"IsPreseason"`
	IsNeutralSite     bool     `json:"IsNeutralSite"`
	HomeScore         int      `json:"HomeScore"`
	AwayScore         int      `json:"AwayScore"`
	Date              string   `json:"Date"`
	IsConferenceGame  *bool    `json:"IsConferenceGame"`
	HomeConference    *string  `json:"HomeConference"`
	HomeDivision      *string  `json:"HomeDivision"`
	AwayConference    *string  `json:"AwayConference"`
	AwayDivision      *string  `json:"AwayDivision"`
	Week              *int     `json:"Week"`
	WeekString        *string  `json:"WeekString"`
}

// FutureGame is a scheduled game in the top-level schedule. The away team's
// ratings are nil when the opponent is not in the rated network.
type FutureGame struct {
	Season            int      `json:"Season"`
	HomeID            string   `json:"HomeID"`
	HomeName          string   `json:"HomeName"`
	HomeRating        float64  `json:"HomeRating"`
	HomeOffenseRating float64  `json:"HomeOffenseRating"`
	HomeDefenseRating float64  `json:"HomeDefenseRating"`
	AwayID            string   `json:"AwayID"`
	AwayName          string   `json:"AwayName"`
	AwayRating        *float64 `json:"AwayRating"`
	AwayOffenseRating *float64 `json:"AwayOffenseRating"`
	AwayDefenseRating *float64 `json:"AwayDefenseRating"`
	IsPreseason       bool     `json:"IsPreseason"`
	IsNeutralSite     bool     `json:"IsNeutralSite"`
	Date              string   `json:"Date"`
	IsConferenceGame  *bool    `json:"IsConferenceGame"`
	HomeConference    *string  `json:"HomeConference"`
	HomeDivision      *string  `json:"HomeDivision"`
	AwayConference    *string  `json:"AwayConference"`
	AwayDivision      *string  `json:"AwayDivision"`
	Week              *int     `json:"Week"`
	WeekString        *string  `json:"WeekString"`
}

// TeamPastGame is a completed game from one team's perspective.
type TeamPastGame struct {
	Season                int     `json:"Season"`
	Team                  string  `json:"Team"`
	TeamName              string  `json:"TeamName"`
	TeamRating            float64 `json:"TeamRating"`
	TeamOffenseRating     float64 `json:"TeamOffenseRating"`
	TeamDefenseRating     float64 `json:"TeamDefenseRating"`
	Opponent              string  `json:"Opponent"`
	OpponentName          string  `json:"OpponentName"`
	OpponentRating        float64 `json:"OpponentRating"`
	OpponentOffenseRating float64 `json:"OpponentOffenseRating"`
	OpponentDefenseRating float64 `json:"OpponentDefenseRating"`
	IsPreseason           bool    `json:"IsPreseason"`
	IsNeutralSite         bool    `json:"IsNeutralSite"`
	IsHomeGame            bool    `json:"IsHomeGame"`
	IsAwayGame            bool    `json:"IsAwayGame"`
	TeamScore             int     `json:"TeamScore"`
	OpponentScore         int     `json:"OpponentScore"`
	Date                  string  `json:"Date"`
	IsConferenceGame      *bool   `json:"IsConferenceGame"`
	TeamConference        *string `json:"TeamConference"`
	TeamDivision          *string `json:"TeamDivision"`
	OpponentConference    *string `json:"OpponentConference"`
	OpponentDivision      *string `json:"OpponentDivision"`
	Week                  *int    `json:"Week"`
	WeekString            *string `json:"WeekString"`
}

// TeamFutureGame is a scheduled game from one team's perspective. Opponent
// ratings are nil when the opponent is not in the rated network.
type TeamFutureGame struct {
	Season                int      `json:"Season"`
	Team                  string   `json:"Team"`
	TeamName              string   `json:"TeamName"`
	TeamRating            float64  `json:"TeamRating"`
	TeamOffenseRating     float64  `json:"TeamOffenseRating"`
	TeamDefenseRating     float64  `json:"TeamDefenseRating"`
	Opponent              string   `json:"Opponent"`
	OpponentName          string   `json:"OpponentName"`
	OpponentRating        *float64 `json:"OpponentRating"`
	OpponentOffenseRating *float64 `json:"OpponentOffenseRating"`
	OpponentDefenseRating *float64 `json:"OpponentDefenseRating"`
	IsPreseason           bool     `json:"IsPreseason"`
	IsNeutralSite         bool     `json:"IsNeutralSite"`
	IsHomeGame            bool     `json:"IsHomeGame"`
	IsAwayGame            bool     `json:"IsAwayGame"`
	Date                  string   `json:"Date"`
	IsConferenceGame      *bool    `json:"IsConferenceGame"`
	TeamConference        *string  `json:"TeamConference"`
	TeamDivision          *string  `json:"TeamDivision"`
	OpponentConference    *string  `json:"OpponentConference"`
	OpponentDivision      *string  `json:"OpponentDivision"`
	Week                  *int     `json:"Week"`
	WeekString            *string  `json:"WeekString"`
}
