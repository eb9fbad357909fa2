package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/graph-chase/internal/maze"
	"github.com/vovakirdan/graph-chase/internal/platform/tui"
	"github.com/vovakirdan/graph-chase/internal/storage"
)

var (
	flagHistory bool
	flagLimit   int
	flagBrowse  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [map]",
	Short: "Show finished games",
	Long: `Display the best finished games for a map, or the most recent games
across all maps with --history. Use --browse for an interactive scoreboard.

Examples:
  chase scores
  chase scores tiny
  chase scores --history --limit 5
  chase scores --browse`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show recent games across all maps")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
}

func runScores(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	mapName := cfg.Map
	if len(args) == 1 {
		mapName = args[0]
	}

	// Open score storage
	store, err := storage.Open(cfg.State.DBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagBrowse {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fail("--browse needs a terminal")
		}
		width, height := 80, 24 // Defaults
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, scoreMaps(mapName), mapName, width, height); err != nil {
			fail("%v", err)
		}
		return
	}

	if flagHistory {
		printHistory(store)
		return
	}
	printTopScores(store, mapName)
}

// scoreMaps lists the built-in maps plus the selected one when it is a file.
func scoreMaps(selected string) []string {
	names := maze.Names()
	for _, n := range names {
		if n == selected {
			return names
		}
	}
	return append(names, selected)
}

func printTopScores(store *storage.Store, mapName string) {
	scores, err := store.TopScores(mapName, flagLimit)
	if err != nil {
		fail("retrieving scores: %v", err)
	}

	fmt.Printf("Finished games - %s\n", mapName)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No finished games yet.")
		fmt.Println()
		fmt.Println("Keep running 'chase tick'; scores are recorded when a game ends.")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "Rank", "Score", "Ticks", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %s\n", "----", "-----", "-----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-6d  %s\n", i+1, entry.Score, entry.Tick, dateStr)
	}

	fmt.Println()
	if highScore, err := store.HighScore(mapName); err == nil {
		fmt.Printf("Best: %d\n", highScore)
	}
}

func printHistory(store *storage.Store) {
	entries, err := store.History(flagLimit)
	if err != nil {
		fail("retrieving history: %v", err)
	}

	if len(entries) == 0 {
		fmt.Println("No finished games yet.")
		return
	}

	fmt.Println("Recent games")
	fmt.Println()
	fmt.Printf("  %-16s  %-12s  %-8s  %s\n", "Date", "Map", "Score", "Ticks")
	fmt.Printf("  %-16s  %-12s  %-8s  %s\n", "----", "---", "-----", "-----")
	for _, e := range entries {
		fmt.Printf("  %-16s  %-12s  %-8d  %d\n", e.CreatedAt.Format("2006-01-02 15:04"), e.MapName, e.Score, e.Tick)
	}
}
