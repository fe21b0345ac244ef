package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved progress",
	Long: `Solo matches are saved after every round and continue where they
stopped the next time you play. These commands inspect or discard that
saved state.

Examples:
  cyberjump progress show
  cyberjump progress reset`,
}

var progressShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show saved progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressShow,
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard saved progress",
	Args:  cobra.NoArgs,
	RunE:  runProgressReset,
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressResetCmd)
}

func openProgress() (*progress.Store, error) {
	game, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return progress.NewStore(game.Storage.ProgressPath, nil)
}

func runProgressShow(_ *cobra.Command, _ []string) error {
	store, err := openProgress()
	if err != nil {
		return err
	}

	fmt.Printf("Progress file: %s\n", store.Path())
	fmt.Println()

	found := false
	for _, mode := range match.Modes {
		if !progress.Persisted(mode) {
			continue
		}
		rec, ok := store.Load(mode)
		if !ok {
			continue
		}
		found = true

		status := fmt.Sprintf("round %d of %d", rec.CurrentRound, rec.NumRounds)
		if rec.MatchComplete {
			status = "match complete"
		}
		fmt.Printf("  %-20s  %s  (player %d - bot %d rounds won)\n",
			mode.Title(), status, rec.Player1Wins, rec.BotWins)
	}

	if !found {
		fmt.Println("No saved progress.")
	}
	return nil
}

func runProgressReset(_ *cobra.Command, _ []string) error {
	store, err := openProgress()
	if err != nil {
		return err
	}

	for _, mode := range match.Modes {
		if !progress.Persisted(mode) {
			continue
		}
		if err := store.Reset(mode); err != nil {
			return err
		}
	}
	fmt.Println("Saved progress discarded.")
	return nil
}
