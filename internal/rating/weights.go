// Package rating implements the randomized rating search: game weighting,
// league scoring statistics, independent search attempts, and their
// aggregation into a robust point estimate.
package rating

import (
	"math"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/models"
	"github.com/yourusername/netrater/internal/network"
)

// centralityLogFloor keeps the structural correction finite when a matchup
// carries every shortest path (centrality 1 makes ln(1/c) zero).
const centralityLogFloor = 1e-9

// PolicyWeight returns the season/recency weight of a game relative to the
// target season: 1 for the target season, the configured preseason and
// prior-season weights for their variants, and 0 for future seasons.
func PolicyWeight(game *models.Game, season int, rc config.RatingConfig) float64 {
	switch {
	case game.Season == season:
		if game.Preseason {
			return rc.PreseasonWeight
		}
		return 1.0
	case game.Season < season:
		if game.Preseason {
			return rc.PriorPreseasonWeight
		}
		return rc.PriorSeasonWeight
	default:
		return 0.0
	}
}

// ApplyWeights computes every played game's policy and final weight in
// place. The final weight divides the policy weight by ln(1/centrality) of
// the matchup, so games bridging loosely connected scheduling clusters gain
// influence over routine intra-cluster games.
func ApplyWeights(store *gamestore.Store, net *network.Network, cfg *config.Config) {
	for i := range store.Played {
		game := &store.Played[i]
		game.PolicyWeight = PolicyWeight(game, cfg.Input.Season, cfg.Rating)
		game.Weight = structuralWeight(game.PolicyWeight, net.PairCentrality(game.HomeIndex, game.AwayIndex))
	}
}

func structuralWeight(policy, centrality float64) float64 {
	if centrality <= 0 {
		return 0
	}
	denom := math.Log(1 / centrality)
	if denom < centralityLogFloor {
		denom = centralityLogFloor
	}
	return policy / denom
}
