package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/minigame/race"
	"github.com/vovakirdan/cyberjump/internal/storage"
)

var (
	flagHistory string
	flagStats   bool
	flagClear   bool
	flagLimit   int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the scoreboard",
	Long: `Display the top scores of solo matches. Ties on score are broken by
the fastest boss race.

Examples:
  cyberjump scores
  cyberjump scores --name neo
  cyberjump scores --history solo
  cyberjump scores --history all --limit 50
  cyberjump scores --stats
  cyberjump scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagHistory, "history", "", "Show match history of a mode (solo, coop, pvp or all)")
	scoresCmd.Flags().BoolVar(&flagStats, "stats", false, "Show per-mode statistics")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every scoreboard entry")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().StringVar(&flagName, "name", "", "Also show the best score of this pseudo")
}

func runScores(_ *cobra.Command, _ []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(game.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearScores(); err != nil {
			return err
		}
		fmt.Println("Scoreboard cleared.")
		return nil
	case flagStats:
		return printStats(store)
	case flagHistory != "":
		return printHistory(store, flagHistory)
	}
	return printTop(store)
}

func printTop(store *storage.Store) error {
	scores, err := store.TopScores(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Cyber Jump")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Finish a 'cyberjump play solo' match to set the first high score!")
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-10s  %s\n", "Rank", "Pseudo", "Score", "Boss time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-10s  %s\n", "----", "------", "-----", "---------", "----")

	for i, entry := range scores {
		boss := "-"
		if entry.HasBossTime() {
			boss = race.FormatTime(entry.BossTime)
		}
		fmt.Printf("  %-4d  %-16s  %-6d  %-10s  %s\n",
			i+1, entry.Pseudo, entry.Score, boss, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if flagName != "" {
		best, err := store.BestScore(flagName)
		if err == nil {
			fmt.Println()
			fmt.Printf("Best of %s: %d\n", flagName, best)
		}
	}
	return nil
}

func printHistory(store *storage.Store, mode string) error {
	filter := mode
	if mode == "all" {
		filter = ""
	} else if _, err := match.ParseGameMode(mode); err != nil {
		return err
	}

	matches, err := store.RecentMatches(filter, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving history: %w", err)
	}
	if len(matches) == 0 {
		fmt.Println("No matches played yet.")
		return nil
	}

	fmt.Printf("  %-16s  %-5s  %-6s  %-8s  %-11s  %-11s  %s\n", "Date", "Mode", "Rounds", "Winner", "Score", "Wins", "Player")
	fmt.Printf("  %-16s  %-5s  %-6s  %-8s  %-11s  %-11s  %s\n", "----", "----", "------", "------", "-----", "----", "------")
	for _, r := range matches {
		fmt.Printf("  %-16s  %-5s  %-6d  %-8s  %-11s  %-11s  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Rounds, r.Winner,
			fmt.Sprintf("%d/%d/%d", r.Score1, r.Score2, r.BotScore),
			fmt.Sprintf("%d/%d/%d", r.Wins1, r.Wins2, r.BotWins),
			r.Pseudo)
	}
	fmt.Println()
	fmt.Println("Score and wins read player1/player2/bot.")
	return nil
}

func printStats(store *storage.Store) error {
	stats, err := store.AllModeStats()
	if err != nil {
		return fmt.Errorf("retrieving stats: %w", err)
	}
	if len(stats) == 0 {
		fmt.Println("No matches played yet.")
		return nil
	}

	modes := make([]string, 0, len(stats))
	for mode := range stats {
		modes = append(modes, mode)
	}
	sort.Strings(modes)

	fmt.Printf("  %-5s  %-7s  %-7s  %-7s  %-5s  %-9s  %s\n", "Mode", "Matches", "P1 won", "Bot won", "Lost", "Avg score", "Last played")
	fmt.Printf("  %-5s  %-7s  %-7s  %-7s  %-5s  %-9s  %s\n", "----", "-------", "------", "-------", "----", "---------", "-----------")
	for _, mode := range modes {
		s := stats[mode]
		fmt.Printf("  %-5s  %-7d  %-7d  %-7d  %-5d  %-9.1f  %s\n",
			s.Mode, s.Matches, s.Player1Won, s.BotWon, s.Lost, s.AvgScore, s.LastPlayed.Format("2006-01-02 15:04"))
	}
	return nil
}

