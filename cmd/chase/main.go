// chase runs a maze-chase simulation and paints each frame onto a
// contribution-style activity graph through dated empty commits.
//
// Usage:
//
//	chase tick               - Advance one tick, write screen.txt and commit.sh
//	chase preview            - Show the current frame as an activity graph
//	chase watch              - Watch the simulation run live
//	chase state show|reset   - Inspect or discard the persisted state
//	chase scores [map]       - Show finished games
//	chase maps               - List built-in maps
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.chase/config.yaml or ./configs/chase.yaml)
//	--seed <value>   - RNG seed for reproducible runs
//	--verbose        - Debug logging
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "chase",
	Short: "Graph Chase - a maze chase drawn on your activity graph",
	Long: `Graph Chase advances a small maze-chase simulation once per invocation
and turns the resulting frame into a script of dated empty commits. Pushed to
a repository, the commits draw the frame on the contribution graph.

Available commands:
  tick     - Advance one tick and write the commit script
  preview  - Show the current frame without advancing
  watch    - Watch the simulation run live
  state    - Inspect or reset the persisted state
  scores   - Show finished games
  maps     - List built-in maps

Examples:
  chase tick && bash commit.sh
  chase preview
  chase watch --fps 8
  chase scores classic`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = config value, then time-based)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(tickCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(stateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(mapsCmd)
}
