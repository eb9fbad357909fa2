package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	flagAt    string
	flagQuiet bool
)

var tickCmd = &cobra.Command{
	Use:   "tick",
	Short: "Advance the simulation one tick and write the commit script",
	Long: `Load the map and the persisted state, advance one tick, save the state,
and write the screen dump and the commit script.

The rightmost graph column is the week containing the reference instant,
which defaults to now.

Examples:
  chase tick
  chase tick --at 2024-05-15T09:00:00Z
  chase tick --seed 42 --quiet`,
	Args: cobra.NoArgs,
	Run:  runTick,
}

func init() {
	tickCmd.Flags().StringVar(&flagAt, "at", "", "Reference instant (RFC3339, default now)")
	tickCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Do not print the screen")
}

func runTick(cmd *cobra.Command, args []string) {
	now := time.Now()
	if flagAt != "" {
		at, err := time.Parse(time.RFC3339, flagAt)
		if err != nil {
			fail("invalid --at value %q: %v", flagAt, err)
		}
		now = at
	}

	cfg := loadConfig()
	logger := newLogger()
	s := openStores(cfg, logger)
	defer s.Close()

	report, err := newRunner(cfg, logger, s).Tick(now)
	if err != nil {
		fail("%v", err)
	}

	if report.GameOver {
		fmt.Printf("Game over! Final score: %d. A new game has started.\n", report.FinalScore)
	}
	if !flagQuiet {
		fmt.Println(report.Screen)
		fmt.Println()
	}
	fmt.Printf("Tick %d  score %d  lives %d\n", report.State.Tick, report.State.Score, report.State.Lives)
	fmt.Printf("%d events, %d commits -> %s\n", report.Events, report.Commits, report.ScriptPath)
}
