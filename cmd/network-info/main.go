package main

import (
	"fmt"
	"log"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/netrater/internal/config"
	"github.com/yourusername/netrater/internal/gamestore"
	"github.com/yourusername/netrater/internal/logger"
	"github.com/yourusername/netrater/internal/network"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	gamesPath  string
	topPairs   int

	appLogger *logrus.Logger
	cfg       *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.PersistentFlags().StringVar(&gamesPath, "games", "", "Path to the game feed JSON (overrides config)")
	rootCmd.PersistentFlags().IntVar(&topPairs, "top", 10, "Number of highest-betweenness matchups to display")
}

var rootCmd = &cobra.Command{
	Use:   "network-info",
	Short: "Inspect the game connectivity network",
	Long:  `Loads the game feed and prints connectivity diagnostics: component sizes, teams excluded from the primary network, and the structurally most important matchups by edge betweenness. No ratings are computed.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadWithDefaults(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if gamesPath != "" {
			loaded.Input.GamesPath = gamesPath
		}
		if err := config.Validate(loaded); err != nil {
			return err
		}
		cfg = loaded
		appLogger = logger.NewLogger(cfg.App.LogLevel, cfg.App.Environment)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return displayNetwork()
	},
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func displayNetwork() error {
	loader, err := gamestore.NewLoader(cfg, appLogger)
	if err != nil {
		return err
	}
	store, err := loader.Load(cfg.Input.GamesPath)
	if err != nil {
		return err
	}

	net, err := network.Build(store, appLogger)
	if err != nil {
		return err
	}

	fmt.Println("=== Game Connectivity Network ===")
	fmt.Printf("Teams: %d\n", store.TeamCount())
	fmt.Printf("Played games: %d\n", len(store.Played))
	fmt.Printf("Components: %d\n", len(net.Components))
	for i, comp := range net.Components {
		fmt.Printf("  Component %d: %d team(s)\n", i+1, len(comp))
	}
	fmt.Printf("Primary network: %d team(s)\n", net.Size())

	if len(net.Excluded) > 0 {
		fmt.Printf("\nExcluded teams (%d):\n", len(net.Excluded))
		for _, team := range net.Excluded {
			fmt.Printf("  %s: %s\n", team.Name, team.ID)
		}
	}

	fmt.Printf("\nTop matchups by edge betweenness:\n")
	for i, pc := range topCentralityPairs(store, net, topPairs) {
		fmt.Printf("  %d. %s vs %s: %.6f\n", i+1, pc.home, pc.away, pc.centrality)
	}
	return nil
}

type pairCentrality struct {
	home       string
	away       string
	centrality float64
}

func topCentralityPairs(store *gamestore.Store, net *network.Network, limit int) []pairCentrality {
	seen := make(map[network.Pair]bool)
	var pairs []pairCentrality
	for i := range store.Played {
		game := &store.Played[i]
		key := network.MakePair(game.HomeIndex, game.AwayIndex)
		if seen[key] {
			continue
		}
		seen[key] = true
		pairs = append(pairs, pairCentrality{
			home:       store.Teams[key.A].Name,
			away:       store.Teams[key.B].Name,
			centrality: net.PairCentrality(key.A, key.B),
		})
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].centrality > pairs[j].centrality })
	if len(pairs) > limit {
		pairs = pairs[:limit]
	}
	return pairs
}
