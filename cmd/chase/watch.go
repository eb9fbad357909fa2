package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/engine"
	"github.com/vovakirdan/graph-chase/internal/maze"
	"github.com/vovakirdan/graph-chase/internal/platform/tui"
)

var (
	flagFPS       int
	flagFromState bool
	flagPaused    bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the simulation run live",
	Long: `Run the simulation in the terminal, drawn as an activity graph.
Nothing is persisted; the saved state only seeds the view with --from-state.

Controls:
  Space/P  - Pause
  S        - Step (while paused)
  R        - New game
  C        - Toggle chasers
  +/-      - Speed
  ?        - Help
  Q/Esc    - Quit

Examples:
  chase watch
  chase watch --fps 10 --seed 7
  chase watch --from-state --paused`,
	Args: cobra.NoArgs,
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&flagFPS, "fps", 0, "Steps per second (default from config)")
	watchCmd.Flags().BoolVar(&flagFromState, "from-state", false, "Start from the persisted state")
	watchCmd.Flags().BoolVar(&flagPaused, "paused", false, "Start paused")
}

func runWatch(cmd *cobra.Command, args []string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fail("watch needs a terminal")
	}

	cfg := loadConfig()
	logger := newLogger()

	layout, err := maze.Load(cfg.Map)
	if err != nil {
		fail("%v", err)
	}
	rules, err := engine.RulesFromConfig(cfg.Rules)
	if err != nil {
		fail("%v", err)
	}
	eng := engine.New(rules, core.NewRand(cfg.Seed))

	state := eng.Initialize(layout)
	if flagFromState {
		s := openStores(cfg, logger)
		_, current, err := newRunner(cfg, logger, s).Current()
		s.Close()
		if err != nil {
			fail("%v", err)
		}
		state = current
	}

	fps := cfg.Watch.FPS
	if flagFPS > 0 {
		fps = flagFPS
	}

	err = tui.Run(eng, layout, state, tui.WatchConfig{
		MapName:     cfg.Map,
		FPS:         fps,
		ShowChasers: cfg.Render.ShowChasers,
		Paused:      flagPaused,
	})
	if err != nil {
		fail("%v", err)
	}
}
