package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/graph-chase/internal/maze"
)

var mapsCmd = &cobra.Command{
	Use:   "maps",
	Short: "List built-in maps",
	Long: `Shows the maps compiled into chase. Any other map can be used by
setting "map" in the config to a file path.`,
	Args: cobra.NoArgs,
	Run:  runMaps,
}

func runMaps(cmd *cobra.Command, args []string) {
	names := maze.Names()

	if len(names) == 0 {
		fmt.Println("No maps available.")
		return
	}

	fmt.Println("Built-in maps:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, n := range names {
		if len(n) > maxNameLen {
			maxNameLen = len(n)
		}
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxNameLen, "Name", "Size", "Dots", "Chasers")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxNameLen, "----", "----", "----", "-------")

	for _, n := range names {
		l, err := maze.Builtin(n)
		if err != nil {
			fail("%v", err)
		}
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %-5d  %d\n", maxNameLen, n, size, l.Count(maze.Dot), l.Count(maze.ChaserSpawn))
	}

	fmt.Println()
	fmt.Printf("Map files may be %s.\n", strings.Join(maze.FormatExtensions(), ", "))
}
