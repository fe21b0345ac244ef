package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/cyberjump/internal/config"
	"github.com/vovakirdan/cyberjump/internal/core"
	"github.com/vovakirdan/cyberjump/internal/match"
	"github.com/vovakirdan/cyberjump/internal/platform/tui"
	"github.com/vovakirdan/cyberjump/internal/progress"
	"github.com/vovakirdan/cyberjump/internal/session"
	"github.com/vovakirdan/cyberjump/internal/storage"
)

var (
	flagRounds     int
	flagNew        bool
	flagDifficulty string
	flagName       string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Play a Cyber Jump match. Without a mode an interactive menu lets you
pick the mode, the match length and the bot difficulty.

Modes:
  solo  - Player vs Bot (progress is saved after every round)
  coop  - Two Players vs Bot
  pvp   - Player vs Player

Controls:
  Player 1: arrows, Space (jump), M (attack), Enter (place)
  Player 2: W/A/S/D, E (jump), F (attack), R (place)
  Esc/B    - Back to menu
  Q/Ctrl+C - Quit

Examples:
  cyberjump play
  cyberjump play solo --name neo
  cyberjump play solo --new --rounds 10
  cyberjump play coop --difficulty hard`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagRounds, "rounds", 0, "Match length: 5 or 10 (default from config)")
	playCmd.Flags().BoolVar(&flagNew, "new", false, "Discard saved progress and start over")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "medium", "Bot difficulty: easy, medium, hard")
	playCmd.Flags().StringVar(&flagName, "name", "", "Scoreboard pseudo (default: $USER)")
}

// localPlay holds what one local play session shares between matches.
type localPlay struct {
	game     config.CyberJumpConfig
	runtime  core.RuntimeConfig
	progress *progress.Store
	store    *storage.Store
	logger   *log.Logger
}

func (p *localPlay) newSession(opts session.Options) (*session.Session, error) {
	deps := session.Deps{
		Game:     p.game,
		Runtime:  p.runtime,
		Progress: p.progress,
		Logger:   p.logger,
		Rand:     newRand(),
	}
	if p.store != nil {
		deps.Results = p.store
	}
	return session.New(deps, opts)
}

func runPlay(_ *cobra.Command, args []string) error {
	game, err := loadConfig()
	if err != nil {
		return err
	}
	difficulty, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}
	rounds := flagRounds
	if rounds == 0 {
		rounds = game.Campaign.DefaultRounds
	}
	if rounds != match.ShortMatch && rounds != match.LongMatch {
		return fmt.Errorf("--rounds must be %d or %d", match.ShortMatch, match.LongMatch)
	}

	logger, closeLog, err := matchLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	progressStore, err := progress.NewStore(game.Storage.ProgressPath, logger)
	if err != nil {
		return err
	}

	// Open score storage
	store, err := storage.Open(game.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - matches still work
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	p := &localPlay{
		game: game,
		runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		progress: progressStore,
		store:    store,
		logger:   logger,
	}

	pseudo := flagName
	if pseudo == "" {
		pseudo = os.Getenv("USER")
	}
	defaults := tui.MenuSelection{
		Mode:       match.ModeSoloVsBot,
		Rounds:     rounds,
		Difficulty: difficulty,
		Fresh:      flagNew,
	}

	if len(args) == 1 {
		mode, err := match.ParseGameMode(args[0])
		if err != nil {
			return fmt.Errorf("%w (run 'cyberjump modes')", err)
		}
		defaults.Mode = mode
		_, err = p.play(defaults, pseudo)
		return err
	}
	return p.menuLoop(defaults, pseudo)
}

// play runs one match in its own program.
func (p *localPlay) play(sel tui.MenuSelection, pseudo string) (quit bool, err error) {
	sess, err := p.newSession(session.Options{
		Mode:       sel.Mode,
		Rounds:     sel.Rounds,
		Difficulty: sel.Difficulty,
		Pseudo:     pseudo,
		Fresh:      sel.Fresh,
	})
	if err != nil {
		return false, err
	}
	return tui.RunMatch(sess, p.runtime)
}

// menuLoop shows the menu until the player quits.
func (p *localPlay) menuLoop(defaults tui.MenuSelection, pseudo string) error {
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(p.runtime, defaults)
		if err != nil {
			return err
		}

		// Update config with any size changes
		p.runtime = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(p.store, p.runtime.ScreenW, p.runtime.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue // Back to menu
			}
			return nil // User quit from scoreboard
		}

		defaults = menuResult.Selection
		quit, err := p.play(defaults, pseudo)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running match: %v\n", err)
		}
		if quit {
			return nil
		}
		// A continued match is the default next time.
		defaults.Fresh = false

		// Loop back to menu
	}
}
