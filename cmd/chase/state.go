package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var flagYAML bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or reset the persisted state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the persisted state",
	Long: `Print the state the next tick will start from. A missing or corrupt
state shows the new game that would replace it.`,
	Args: cobra.NoArgs,
	Run:  runStateShow,
}

var stateResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the persisted state",
	Long: `Delete the persisted state so the next tick starts a new game.
Finished-game scores are kept.`,
	Args: cobra.NoArgs,
	Run:  runStateReset,
}

func init() {
	stateShowCmd.Flags().BoolVar(&flagYAML, "yaml", false, "Print the full state as YAML")

	stateCmd.AddCommand(stateShowCmd)
	stateCmd.AddCommand(stateResetCmd)
}

func runStateShow(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	s := openStores(cfg, logger)
	defer s.Close()

	_, state, err := newRunner(cfg, logger, s).Current()
	if err != nil {
		fail("%v", err)
	}

	if flagYAML {
		out, err := yaml.Marshal(state)
		if err != nil {
			fail("cannot encode state: %v", err)
		}
		fmt.Print(string(out))
		return
	}
	fmt.Print(state.DebugState())
}

func runStateReset(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger()
	s := openStores(cfg, logger)
	defer s.Close()

	if err := newRunner(cfg, logger, s).Reset(); err != nil {
		fail("%v", err)
	}
	fmt.Println("State reset. The next tick starts a new game.")
}
