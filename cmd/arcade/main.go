// arcade is a TUI arcade platform for playing games in the terminal.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: $ARCADE_DB or ~/.arcade/scores.db)
//	--log-level <level>    - debug, info, warn or error (default: $ARCADE_LOG_LEVEL or info)
//	--log-file <path>      - Append logs to a file
//	--hold-window <dur>    - How long a direction key stays held after its last press
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-arcade/internal/config"
	// Import games to register them
	_ "github.com/vovakirdan/sky-arcade/internal/games/higher"
	_ "github.com/vovakirdan/sky-arcade/internal/games/matchpepe"
	"github.com/vovakirdan/sky-arcade/internal/platform/tui"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
	flagLogFile    string
	flagHoldWindow time.Duration
)

func main() {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "TUI Arcade - Play casual games in your terminal",
	Long: `TUI Arcade is a terminal-based gaming platform that lets you play
casual games directly in your terminal, locally or over SSH.

Games:
  higher     - Steer left and right to dodge the falling arrows
  matchpepe  - Match every tile to the anchor tile before time runs out

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores

Examples:
  arcade list
  arcade play higher
  arcade menu
  arcade serve --ssh :2222
  arcade scores higher`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogger(cmd)
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.GetEnv("ARCADE_DB", "~/.arcade/scores.db"), "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", config.GetEnv("ARCADE_LOG_LEVEL", "info"), "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file (interactive commands log nowhere otherwise)")
	rootCmd.PersistentFlags().DurationVar(&flagHoldWindow, "hold-window", tui.DefaultHoldWindow, "How long a direction key stays held after its last press")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
