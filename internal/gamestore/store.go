package gamestore

import (
	"github.com/yourusername/netrater/internal/models"
)

// Store holds the filtered game data and the derived team list for one
// rating run. It is built once by the Loader and treated as read-only by
// every later stage.
type Store struct {
	// Teams is the derived team list, sorted by display name. A team's
	// position in this slice is its all-team index.
	Teams []models.Team

	// Played holds the completed games that passed the inclusion filters,
	// in lexicographic game-ID order.
	Played []models.Game

	// Unplayed holds the scheduled games that passed the future-game
	// filters, in lexicographic game-ID order.
	Unplayed []models.UnplayedGame

	// PreseasonTracked reports whether the feed carries preseason flags.
	// When false every game is treated as a regular-season game.
	PreseasonTracked bool

	// Skipped counts records dropped because they could not be decoded.
	Skipped int

	matchByID bool
	index     map[string]int
}

// TeamIndex returns the all-team index for a team key (external ID in ID
// mode, display name in name mode).
func (s *Store) TeamIndex(key string) (int, bool) {
	i, ok := s.index[key]
	return i, ok
}

// MatchByID reports whether teams are keyed by external ID rather than name.
func (s *Store) MatchByID() bool {
	return s.matchByID
}

// TeamCount returns the number of derived teams.
func (s *Store) TeamCount() int {
	return len(s.Teams)
}
