// cyberjump is a competitive Cyber Jump campaign played in the terminal.
//
// Usage:
//
//	cyberjump play [mode]          - Play a match (menu when no mode is given)
//	cyberjump modes                - List game modes and round activities
//	cyberjump scores               - Show the scoreboard
//	cyberjump progress show|reset  - Inspect or discard saved progress
//	cyberjump serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible matches
//	--db <path>        - Set database path (default: ~/.cyberjump/scores.db)
//	--progress <path>  - Set progress file (default: ~/.cyberjump/progress.json)
//	--config <path>    - Use a custom campaign YAML
package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/cyberjump/internal/config"

	// Import providers to register them
	_ "github.com/vovakirdan/cyberjump/internal/minigame/combat"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/lava"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/race"
	_ "github.com/vovakirdan/cyberjump/internal/minigame/tictactoe"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagProgress string
	flagConfig   string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cyberjump",
	Short: "Cyber Jump - a competitive race campaign in your terminal",
	Long: `Cyber Jump is a round-based campaign: every round opens with a race,
the race hands out coins and items, and a mini-game decides who takes
the round. The final round is a boss race against the clock.

Available commands:
  play      - Play a match (interactive menu without a mode)
  modes     - Show game modes and round activities
  scores    - View the scoreboard and match history
  progress  - Show or reset saved progress
  serve     - Start SSH server for remote play

Examples:
  cyberjump play
  cyberjump play solo --rounds 10 --difficulty hard
  cyberjump scores --history solo
  cyberjump serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagProgress, "progress", "", "Path to progress file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom campaign config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write match logs to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the campaign config and applies the path flags.
func loadConfig() (config.CyberJumpConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagProgress != "" {
		cfg.Storage.ProgressPath = flagProgress
	}
	return cfg, nil
}

// newLogger returns a logger writing to w with the given prefix.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// matchLogger returns the logger of full-screen play. The terminal belongs
// to the UI, so logs go to --log-file or nowhere.
func matchLogger() (*log.Logger, func(), error) {
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}
	path, err := config.ExpandPath(flagLogFile)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return newLogger(f, "cyberjump"), func() { f.Close() }, nil
}

// newRand returns the RNG of one match.
func newRand() *rand.Rand {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec // gameplay randomness
}
