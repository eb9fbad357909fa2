package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/graph-chase/internal/platform/tui"
	"github.com/vovakirdan/graph-chase/internal/render"
)

var (
	flagPlain   bool
	flagChasers bool
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show the current frame as an activity graph",
	Long: `Render the persisted state the way the contribution graph will show it,
without advancing the simulation. Output is plain text when stdout is not a
terminal.

Examples:
  chase preview
  chase preview --chasers
  chase preview --plain > frame.txt`,
	Args: cobra.NoArgs,
	Run:  runPreview,
}

func init() {
	previewCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the plain screen dump")
	previewCmd.Flags().BoolVar(&flagChasers, "chasers", false, "Draw chasers on the graph")
}

func runPreview(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	s := openStores(cfg, logger)
	defer s.Close()

	layout, state, err := newRunner(cfg, logger, s).Current()
	if err != nil {
		fail("%v", err)
	}

	opts := render.Options{Chasers: cfg.Render.ShowChasers || flagChasers}
	frame := render.Frame(layout, state, opts)

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Println(render.ASCII(frame))
		return
	}

	fmt.Println(tui.RenderGraph(frame))
	fmt.Println()
	fmt.Println(tui.Legend())
	fmt.Printf("tick %d  score %d  lives %d\n", state.Tick, state.Score, state.Lives)
}
