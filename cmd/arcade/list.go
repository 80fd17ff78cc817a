package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/sky-arcade/internal/registry"
	"github.com/vovakirdan/sky-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long:  `Shows a list of all games registered in the arcade.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	best := loadBestScores()

	// Print header
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Title", "Best")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "-----", "----")

	// Print games
	for _, g := range games {
		b := "-"
		if s, ok := best[g.ID]; ok && s > 0 {
			b = humanize.Comma(int64(s))
		}
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, g.ID, g.Title, b)
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}

// loadBestScores reads the persisted best of every played game.
// A missing database just means no best scores.
func loadBestScores() map[string]int {
	best := make(map[string]int)
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Debug("list: no scores database", "db", flagDBPath, "err", err)
		return best
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		log.Warn("list: cannot read game stats", "err", err)
		return best
	}
	for id, s := range stats {
		best[id] = s.BestScore
	}
	return best
}
