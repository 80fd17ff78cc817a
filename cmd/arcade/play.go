package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/sky-arcade/internal/config"
	"github.com/vovakirdan/sky-arcade/internal/core"
	"github.com/vovakirdan/sky-arcade/internal/games/higher"
	"github.com/vovakirdan/sky-arcade/internal/games/matchpepe"
	"github.com/vovakirdan/sky-arcade/internal/platform/tui"
	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Left/Right, A/D  - Steer (Higher), move cursor (Matchpepe)
  Up/Down, W/S     - Move cursor; Down also lets go of a held direction
  Space/Enter      - Start, select a tile
  Mouse            - Hold a screen half to steer, click a tile to select
  P/Esc            - Pause
  R                - Restart
  Ctrl+S           - Save a screenshot
  ?                - Show or hide key help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Matchpepe: 15s rounds (Higher plays normally)
  normal - The standard game
  hard   - Matchpepe: 6s rounds (Higher plays normally)
  fixed  - No progression: Higher stays at its starting speed,
           Matchpepe rounds never get shorter

Examples:
  arcade play higher
  arcade play higher --difficulty fixed
  arcade play matchpepe --difficulty easy
  arcade play higher --config ./my-higher.yaml
  arcade play higher --hold-window 200ms`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// configureGame passes --config and --difficulty to the game package and
// checks them up front, so a typo is reported instead of silently replaced
// by the defaults.
func configureGame(gameID string) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}

	switch gameID {
	case higher.GameID:
		if flagConfig != "" {
			if _, err := config.LoadHigher(flagConfig); err != nil {
				return err
			}
		}
		higher.SetConfigPath(flagConfig)
		higher.SetDifficultyPreset(flagDifficulty)
	case matchpepe.GameID:
		if flagConfig != "" {
			if _, err := config.LoadMatch(flagConfig); err != nil {
				return err
			}
		}
		matchpepe.SetConfigPath(flagConfig)
		matchpepe.SetDifficultyPreset(flagDifficulty)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	if err := configureGame(gameID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := terminalConfig()

	// Create game instance
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		log.Warn("playing without score storage", "db", flagDBPath, "err", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg, tui.Options{HoldWindow: flagHoldWindow})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
