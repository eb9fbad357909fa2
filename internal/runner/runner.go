// Package runner wires one invocation together: load the map and the
// persisted state, advance the simulation a single tick, persist it, and
// write the screen dump and the commit script.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/graph-chase/internal/config"
	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/engine"
	"github.com/vovakirdan/graph-chase/internal/maze"
	"github.com/vovakirdan/graph-chase/internal/render"
	"github.com/vovakirdan/graph-chase/internal/script"
	"github.com/vovakirdan/graph-chase/internal/storage"
	"github.com/vovakirdan/graph-chase/internal/temporal"
)

// StateStore persists the simulation snapshot between invocations.
// Load returns nil, nil when nothing has been saved yet.
type StateStore interface {
	Load() (*engine.State, error)
	Save(engine.State) error
	Reset() error
}

// ScoreRecorder stores the final score of each finished game.
type ScoreRecorder interface {
	SaveScore(mapName string, score, tick int) (int64, error)
}

// Runner executes ticks against a state store.
type Runner struct {
	cfg    config.Config
	store  StateStore
	scores ScoreRecorder
	logger *log.Logger
	rng    core.Rand
}

// Option configures a Runner.
type Option func(*Runner)

// WithScores records finished games in s.
func WithScores(s ScoreRecorder) Option {
	return func(r *Runner) { r.scores = s }
}

// WithRand replaces the randomness source.
func WithRand(rng core.Rand) Option {
	return func(r *Runner) { r.rng = rng }
}

// New creates a runner. A nil logger discards output.
func New(cfg config.Config, store StateStore, logger *log.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	r := &Runner{
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = core.NewRand(cfg.Seed)
	}
	return r
}

// Report summarizes one tick.
type Report struct {
	State      engine.State
	GameOver   bool
	FinalScore int
	Recovered  bool // persisted state was corrupt and a new game was started

	Events  int
	Commits int

	ScreenPath string
	ScriptPath string
	Screen     string
}

// Current loads the map and the persisted state without advancing it.
// A missing or corrupt state yields a freshly initialized game.
func (r *Runner) Current() (*maze.Layout, engine.State, error) {
	layout, eng, err := r.setup()
	if err != nil {
		return nil, engine.State{}, err
	}
	state, _, err := r.resume(layout, eng)
	if err != nil {
		return nil, engine.State{}, err
	}
	return layout, state, nil
}

// Tick runs one invocation at the reference instant now.
func (r *Runner) Tick(now time.Time) (Report, error) {
	layout, eng, err := r.setup()
	if err != nil {
		return Report{}, err
	}

	state, recovered, err := r.resume(layout, eng)
	if err != nil {
		return Report{}, err
	}

	r.logger.Info("running tick", "tick", state.Tick+1)
	result := eng.Step(layout, state)
	r.logger.Debug("step done", "result", result.String())

	if result.GameOver {
		r.logger.Info("game over", "score", result.FinalScore)
		r.recordScore(result.FinalScore, result.State.Tick)
	}

	r.logger.Info("saving state", "score", result.State.Score, "lives", result.State.Lives)
	if err := r.store.Save(result.State); err != nil {
		return Report{}, fmt.Errorf("runner: save state: %w", err)
	}

	report := Report{
		State:      result.State,
		GameOver:   result.GameOver,
		FinalScore: result.FinalScore,
		Recovered:  recovered,
		ScreenPath: r.cfg.Output.Screen,
		ScriptPath: r.cfg.Output.Script,
	}

	r.logger.Info("rendering frame")
	frame := render.Frame(layout, result.State, render.Options{Chasers: r.cfg.Render.ShowChasers})
	report.Screen = render.ASCII(frame)
	if err := writeFile(report.ScreenPath, []byte(report.Screen+"\n"), 0o644); err != nil {
		return report, fmt.Errorf("runner: write screen: %w", err)
	}

	r.logger.Info("encoding frame", "reference", now.Format(time.RFC3339))
	events := temporal.Encode(frame, now, r.cfg.Commit.Hour)
	report.Events = len(events)
	report.Commits = script.Count(events)

	r.logger.Info("writing script", "path", report.ScriptPath, "events", report.Events, "commits", report.Commits)
	opts := script.Options{Branch: r.cfg.Commit.Branch, Message: r.cfg.Commit.Message}
	if err := writeScript(report.ScriptPath, events, opts); err != nil {
		return report, fmt.Errorf("runner: write script: %w", err)
	}

	return report, nil
}

// Reset discards the persisted state.
func (r *Runner) Reset() error {
	r.logger.Info("resetting state")
	if err := r.store.Reset(); err != nil {
		return fmt.Errorf("runner: reset state: %w", err)
	}
	return nil
}

// setup loads the map and builds the engine. Any failure here is a
// configuration error and aborts the invocation.
func (r *Runner) setup() (*maze.Layout, *engine.Engine, error) {
	r.logger.Info("loading map", "map", r.cfg.Map)
	layout, err := maze.Load(r.cfg.Map)
	if err != nil {
		return nil, nil, fmt.Errorf("runner: load map: %w", err)
	}

	rules, err := engine.RulesFromConfig(r.cfg.Rules)
	if err != nil {
		return nil, nil, fmt.Errorf("runner: %w", err)
	}
	return layout, engine.New(rules, r.rng), nil
}

// resume loads the persisted state. Corrupt snapshots are replaced by a new
// game; other store failures are returned.
func (r *Runner) resume(layout *maze.Layout, eng *engine.Engine) (engine.State, bool, error) {
	r.logger.Info("loading state")
	persisted, err := r.store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorrupt) {
			return engine.State{}, false, fmt.Errorf("runner: load state: %w", err)
		}
		r.logger.Warn("state unreadable, starting a new game", "error", err)
		return eng.Initialize(layout), true, nil
	}

	if persisted == nil {
		r.logger.Info("no saved state, starting a new game")
	}

	state, err := eng.Resume(layout, persisted)
	if err != nil {
		r.logger.Warn("state invalid for map, starting a new game", "error", err)
		return state, true, nil
	}
	return state, false, nil
}

// recordScore stores a finished game. Failures only warn; the tick goes on.
func (r *Runner) recordScore(score, tick int) {
	if r.scores == nil {
		return
	}
	if _, err := r.scores.SaveScore(r.cfg.Map, score, tick); err != nil {
		r.logger.Warn("could not save score", "error", err)
	}
}

func writeScript(path string, events []temporal.Event, opts script.Options) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return err
	}
	if err := script.Write(f, events, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeFile(path string, data []byte, perm os.FileMode) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, perm)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	return nil
}
