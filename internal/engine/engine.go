// Package engine implements the maze-chase simulation: a player that eats
// dots while chasers wander the maze. One Step call advances the world by a
// single tick and returns a new State; the caller owns persistence.
package engine

import (
	"fmt"

	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/maze"
)

// Engine advances simulation states under a fixed rule set.
// It holds no game state of its own; only the randomness source advances.
type Engine struct {
	rules Rules
	rng   core.Rand
}

// Result is returned by Step.
type Result struct {
	State State

	// GameOver is true when the last life was lost during this step.
	// State then already holds the freshly initialized game.
	GameOver   bool
	FinalScore int
}

// New creates an engine.
func New(rules Rules, rng core.Rand) *Engine {
	return &Engine{rules: rules, rng: rng}
}

// Rules returns the engine's rule set.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Initialize builds a fresh game from the layout.
// The first player spawn sets the start position; every spawn marker is
// cleared from the working copy of the map.
func (e *Engine) Initialize(layout *maze.Layout) State {
	working := layout.Clone()

	s := State{
		Lives: e.rules.Lives,
		Player: Player{
			X:   e.rules.PlayerStart.X,
			Y:   e.rules.PlayerStart.Y,
			Dir: e.rules.PlayerDir,
		},
	}

	foundPlayer := false
	for y := 0; y < working.Height; y++ {
		for x := 0; x < working.Width; x++ {
			switch working.Cells[y][x] {
			case maze.PlayerSpawn:
				if !foundPlayer {
					s.Player.X, s.Player.Y = x, y
					foundPlayer = true
				}
				working.Cells[y][x] = maze.Empty
			case maze.ChaserSpawn:
				s.Chasers = append(s.Chasers, Chaser{
					ID:  len(s.Chasers),
					X:   x,
					Y:   y,
					Dir: e.rules.ChaserDir,
				})
				working.Cells[y][x] = maze.Empty
			}
		}
	}

	// Keep the game playable on maps without chaser spawns
	if len(s.Chasers) == 0 {
		for i, fc := range e.rules.FallbackChasers {
			fc.ID = i
			s.Chasers = append(s.Chasers, fc)
		}
	}

	s.MapState = working
	return s
}

// Resume turns a persisted state into one that can be stepped.
// A nil state starts a new game. A state that fails validation also starts a
// new game; the returned error wraps ErrCorruptState so callers can report it.
func (e *Engine) Resume(layout *maze.Layout, persisted *State) (State, error) {
	if persisted == nil {
		return e.Initialize(layout), nil
	}
	if err := persisted.Validate(layout); err != nil {
		return e.Initialize(layout), err
	}
	if err := e.checkPlacement(layout, persisted); err != nil {
		return e.Initialize(layout), err
	}
	return persisted.Clone(), nil
}

// checkPlacement rejects entity setups that neither Initialize nor Step can
// produce: a missing chaser roster when the map provides chasers, and a
// player inside a wall away from the configured start and respawn cells.
func (e *Engine) checkPlacement(layout *maze.Layout, s *State) error {
	fresh := e.Initialize(layout)
	if len(s.Chasers) == 0 && len(fresh.Chasers) > 0 {
		return fmt.Errorf("%w: no chasers", ErrCorruptState)
	}

	terrain := layout
	if s.MapState != nil {
		terrain = s.MapState
	}
	pos := s.Player.Pos()
	if terrain.At(pos.X, pos.Y) == maze.Wall && pos != fresh.Player.Pos() && pos != e.rules.Respawn {
		return fmt.Errorf("%w: player inside a wall at %v", ErrCorruptState, pos)
	}
	return nil
}

// Step advances the simulation by one tick.
// The input state is not modified.
func (e *Engine) Step(layout *maze.Layout, prev State) Result {
	s := prev.Clone()
	s.GameOver = false
	if s.MapState == nil {
		s.MapState = e.Initialize(layout).MapState
	}

	// 1. Player
	e.movePlayer(&s)

	// 2. Chasers
	e.moveChasers(&s)

	// 3. Collisions
	result := Result{}
	e.checkCollisions(layout, &s, &result)

	// 4. The tick counter survives a reset so it stays monotonic
	s.Tick = prev.Tick + 1

	result.State = s
	return result
}

// IsValidMove reports whether an entity may enter (x, y): the cell is in
// bounds and not a wall. Other entities never block.
func IsValidMove(layout *maze.Layout, x, y int) bool {
	if !layout.InBounds(x, y) {
		return false
	}
	return layout.Cells[y][x] != maze.Wall
}

// validDirections returns the directions whose target cell is enterable,
// in core.Directions order.
func validDirections(layout *maze.Layout, from core.Coord) []core.Dir {
	dirs := make([]core.Dir, 0, len(core.Directions))
	for _, d := range core.Directions {
		next := from.Step(d)
		if IsValidMove(layout, next.X, next.Y) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// String implements fmt.Stringer for logging.
func (r Result) String() string {
	if r.GameOver {
		return fmt.Sprintf("game over (final score %d), new game at tick %d", r.FinalScore, r.State.Tick)
	}
	return fmt.Sprintf("tick %d score %d lives %d", r.State.Tick, r.State.Score, r.State.Lives)
}
