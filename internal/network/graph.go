package network

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/models"
)

// Pair is an unordered pair of all-team indices, normalized so A <= B.
type Pair struct {
	A, B int
}

// MakePair normalizes two all-team indices into an unordered Pair.
func MakePair(u, v int) Pair {
	if u > v {
		return Pair{A: v, B: u}
	}
	return Pair{A: u, B: v}
}

// Network is the connectivity structure over the derived team list: the
// connected components of the played-game multigraph, the primary (largest)
// component whose members are the rated teams, and edge betweenness
// centrality per team pair.
type Network struct {
	// Components holds each connected component as sorted all-team
	// indices, in discovery order (ascending lowest member).
	Components [][]int

	// Primary holds the sorted all-team indices of the largest component.
	// Equal-size ties keep the earliest-discovered component.
	Primary []int

	// Excluded holds the teams outside the primary component, in component
	// discovery order. They are diagnostic output and are never rated.
	Excluded []models.Team

	centrality   map[Pair]float64
	networkIndex []int
}

// Build derives the game network from the store's played games. Every team
// in the store is a node, including teams with no completed games; each
// played game adds one edge, so repeated matchups become parallel edges.
// Build assigns Team.NetworkIndex and Game.InNetwork on the store in place.
func Build(store *gamestore.Store, logger *logrus.Logger) (*Network, error) {
	n := store.TeamCount()
	if n == 0 {
		return nil, models.ErrNoGames
	}
	adj, multiplicity := buildAdjacency(n, store.Played)

	comps := connectedComponents(n, adj)
	primary := 0
	for i := range comps {
		if len(comps[i]) > len(comps[primary]) {
			primary = i
		}
	}

	net := &Network{
		Components:   comps,
		Primary:      comps[primary],
		networkIndex: make([]int, n),
	}
	if len(net.Primary) < 2 {
		return nil, fmt.Errorf("largest connected component has %d team(s): %w", len(net.Primary), models.ErrEmptyNetwork)
	}

	for i := range net.networkIndex {
		net.networkIndex[i] = -1
	}
	for pos, allIndex := range net.Primary {
		net.networkIndex[allIndex] = pos
		store.Teams[allIndex].NetworkIndex = pos
	}

	for i, comp := range comps {
		if i == primary {
			continue
		}
		for _, allIndex := range comp {
			team := store.Teams[allIndex]
			net.Excluded = append(net.Excluded, team)
			logger.WithFields(logrus.Fields{
				"team":    team.Name,
				"team_id": team.ID,
			}).Warn("Team is not connected to the primary network")
		}
	}
	if len(net.Excluded) > 0 {
		logger.WithFields(logrus.Fields{
			"network_teams":  len(net.Primary),
			"excluded_teams": len(net.Excluded),
		}).Info("Proceeding with the largest connected network")
	}

	for i := range store.Played {
		game := &store.Played[i]
		game.InNetwork = net.networkIndex[game.HomeIndex] >= 0 && net.networkIndex[game.AwayIndex] >= 0
	}

	net.centrality = edgeBetweenness(n, adj)
	for pair, count := range multiplicity {
		if count > 1 {
			net.centrality[pair] /= float64(count)
		}
	}
	return net, nil
}

// NetworkIndex maps an all-team index to the team's position among the
// rated teams, or -1 when the team is outside the primary network.
func (n *Network) NetworkIndex(allIndex int) int {
	return n.networkIndex[allIndex]
}

// Size returns the number of rated teams.
func (n *Network) Size() int {
	return len(n.Primary)
}

// PairCentrality returns the edge betweenness centrality for the unordered
// pair of all-team indices. The pair's value is split evenly across
// repeated matchups, so each additional meeting between the same two teams
// lowers the per-game centrality.
func (n *Network) PairCentrality(u, v int) float64 {
	return n.centrality[MakePair(u, v)]
}

func buildAdjacency(n int, games []models.Game) ([][]int, map[Pair]int) {
	multiplicity := make(map[Pair]int)
	neighborSets := make([]map[int]struct{}, n)
	for i := range neighborSets {
		neighborSets[i] = make(map[int]struct{})
	}
	for i := range games {
		u, v := games[i].HomeIndex, games[i].AwayIndex
		multiplicity[MakePair(u, v)]++
		if u == v {
			continue
		}
		neighborSets[u][v] = struct{}{}
		neighborSets[v][u] = struct{}{}
	}
	adj := make([][]int, n)
	for i, set := range neighborSets {
		adj[i] = make([]int, 0, len(set))
		for w := range set {
			adj[i] = append(adj[i], w)
		}
		sort.Ints(adj[i])
	}
	return adj, multiplicity
}

func connectedComponents(n int, adj [][]int) [][]int {
	seen := make([]bool, n)
	var comps [][]int
	for s := 0; s < n; s++ {
		if seen[s] {
			continue
		}
		comp := []int{s}
		seen[s] = true
		queue := []int{s}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, w := range adj[v] {
				if !seen[w] {
					seen[w] = true
					comp = append(comp, w)
					queue = append(queue, w)
				}
			}
		}
		sort.Ints(comp)
		comps = append(comps, comp)
	}
	return comps
}
