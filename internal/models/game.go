package models

import (
	"time"
)

// GameRecord is one raw game entry from the input feed. Pointer fields
// distinguish absent values from zero values; records missing required
// fields are excluded during loading rather than failing the whole feed.
type GameRecord struct {
	IsCompleted      *bool    `json:"IsCompleted"`
	HomeScore        *FlexInt `json:"HomeScore"`
	AwayScore        *FlexInt `json:"AwayScore"`
	HomeID           *FlexID  `json:"HomeID"`
	AwayID           *FlexID  `json:"AwayID"`
	HomeName         string   `json:"HomeName"`
	AwayName         string   `json:"AwayName"`
	IsNeutralSite    *bool    `json:"IsNeutralSite"`
	Season           *FlexInt `json:"Season"`
	Year             *FlexInt `json:"Year"`
	Month            *FlexInt `json:"Month"`
	Day              *FlexInt `json:"Day"`
	IsPreseason      *bool    `json:"IsPreseason"`
	IsPostseason     *bool    `json:"IsPostseason"`
	IsPostponed      *bool    `json:"IsPostponed"`
	IsConferenceGame *bool    `json:"IsConferenceGame"`
	HomeConference   *string  `json:"HomeConference"`
	AwayConference   *string  `json:"AwayConference"`
	HomeDivision     *string  `json:"HomeDivision"`
	AwayDivision     *string  `json:"AwayDivision"`
	Week             *FlexInt `json:"Week"`
	WeekString       *string  `json:"WeekString"`
}

// Completed reports whether the record is flagged as a finished game.
func (r *GameRecord) Completed() bool {
	return r.IsCompleted != nil && *r.IsCompleted
}

// Preseason reports whether the record is flagged as a preseason game.
func (r *GameRecord) Preseason() bool {
	return r.IsPreseason != nil && *r.IsPreseason
}

// Postponed reports whether the record is flagged as postponed.
func (r *GameRecord) Postponed() bool {
	return r.IsPostponed != nil && *r.IsPostponed
}

// Neutral reports whether the game was played at a neutral site.
func (r *GameRecord) Neutral() bool {
	return r.IsNeutralSite != nil && *r.IsNeutralSite
}

// Date returns the scheduled date assembled from the Year, Month and Day
// fields. ok is false when any of the three is missing.
func (r *GameRecord) Date() (time.Time, bool) {
	if r.Year == nil || r.Month == nil || r.Day == nil {
		return time.Time{}, false
	}
	return time.Date(r.Year.Int(), time.Month(r.Month.Int()), r.Day.Int(), 0, 0, 0, 0, time.UTC), true
}

// Game is a played game resolved against the derived team list.
type Game struct {
	GameID    string
	HomeIndex int
	AwayIndex int
	HomeScore int
	AwayScore int
	Season    int
	Date      time.Time
	Neutral   bool
	Preseason bool

	// InNetwork is true when both participants belong to the primary
	// network; only such games drive the optimizer.
	InNetwork bool

	// PolicyWeight is the season/recency weight; Weight folds in the
	// structural centrality correction.
	PolicyWeight float64
	Weight       float64

	Record *GameRecord
}

// Margin returns the home-minus-away score difference.
func (g *Game) Margin() int {
	return g.HomeScore - g.AwayScore
}

// TotalScore returns the combined score of both teams.
func (g *Game) TotalScore() int {
	return g.HomeScore + g.AwayScore
}

// UnplayedGame is a scheduled but uncompleted game carried through to the
// future-schedule output. HomeKey and AwayKey hold the team keys for the
// active matching mode; the index fields are -1 when the participant never
// appears in the derived team list.
type UnplayedGame struct {
	GameID    string
	HomeKey   string
	AwayKey   string
	HomeIndex int
	AwayIndex int
	Season    int
	Date      time.Time
	Preseason bool
	Record    *GameRecord
}
