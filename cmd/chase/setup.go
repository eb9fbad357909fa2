package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/graph-chase/internal/config"
	"github.com/vovakirdan/graph-chase/internal/runner"
	"github.com/vovakirdan/graph-chase/internal/storage"
)

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the logger shared by every command.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "chase",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the configuration and applies global flag overrides.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}
	return cfg
}

// stores holds the persistence backends for one invocation.
type stores struct {
	state  runner.StateStore
	scores *storage.Store // nil when the scores database is unavailable
}

func (s stores) Close() {
	if s.scores != nil {
		s.scores.Close()
	}
}

// openStores opens the state store selected by the config and the scores
// database. With the file driver a scores database failure only warns.
func openStores(cfg config.Config, logger *log.Logger) stores {
	switch cfg.State.Driver {
	case config.DriverSQLite:
		db, err := storage.Open(cfg.State.DBPath)
		if err != nil {
			fail("%v", err)
		}
		return stores{state: db, scores: db}

	default:
		fs, err := storage.NewFileStore(cfg.State.Path)
		if err != nil {
			fail("%v", err)
		}
		s := stores{state: fs}
		if db, err := storage.Open(cfg.State.DBPath); err != nil {
			logger.Warn("could not open scores database", "error", err)
		} else {
			s.scores = db
		}
		return s
	}
}

// newRunner builds a runner over the configured stores.
func newRunner(cfg config.Config, logger *log.Logger, s stores) *runner.Runner {
	var opts []runner.Option
	if s.scores != nil {
		opts = append(opts, runner.WithScores(s.scores))
	}
	return runner.New(cfg, s.state, logger, opts...)
}
