package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/maze"
)

// ErrCorruptState marks a persisted state that violates the snapshot
// invariants. Callers recover by starting a new game.
var ErrCorruptState = errors.New("engine: corrupt state")

// Player is the player-controlled entity.
type Player struct {
	X   int      `json:"x" yaml:"x"`
	Y   int      `json:"y" yaml:"y"`
	Dir core.Dir `json:"dir" yaml:"dir"`
}

// Pos returns the player's cell.
func (p Player) Pos() core.Coord {
	return core.C(p.X, p.Y)
}

// Chaser is a randomly wandering enemy.
type Chaser struct {
	ID  int      `json:"id" yaml:"id"`
	X   int      `json:"x" yaml:"x"`
	Y   int      `json:"y" yaml:"y"`
	Dir core.Dir `json:"dir" yaml:"dir"`
}

// Pos returns the chaser's cell.
func (c Chaser) Pos() core.Coord {
	return core.C(c.X, c.Y)
}

// State is the complete, serializable simulation state.
type State struct {
	Score    int  `json:"score" yaml:"score"`
	Lives    int  `json:"lives" yaml:"lives"`
	Tick     int  `json:"tick" yaml:"tick"`
	GameOver bool `json:"gameOver" yaml:"game_over"` // cleared by Step; finished games surface on Result

	Player  Player   `json:"player" yaml:"player"`
	Chasers []Chaser `json:"chasers" yaml:"chasers"`

	// MapState is the working layout with consumed dots and pellets.
	MapState *maze.Layout `json:"mapState,omitempty" yaml:"map_state,omitempty"`
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.Chasers != nil {
		out.Chasers = make([]Chaser, len(s.Chasers))
		copy(out.Chasers, s.Chasers)
	}
	if s.MapState != nil {
		out.MapState = s.MapState.Clone()
	}
	return out
}

// Validate checks a persisted state against the layout it will be stepped
// with. Any violation wraps ErrCorruptState. Chasers may sit outside the
// map since fallback chasers are placed at fixed coordinates.
func (s State) Validate(layout *maze.Layout) error {
	switch {
	case s.Score < 0:
		return fmt.Errorf("%w: negative score %d", ErrCorruptState, s.Score)
	case s.Lives < 0:
		return fmt.Errorf("%w: negative lives %d", ErrCorruptState, s.Lives)
	case s.Tick < 0:
		return fmt.Errorf("%w: negative tick %d", ErrCorruptState, s.Tick)
	case !s.Player.Dir.Valid():
		return fmt.Errorf("%w: player direction %d", ErrCorruptState, s.Player.Dir)
	case !layout.InBounds(s.Player.X, s.Player.Y):
		return fmt.Errorf("%w: player outside map at %v", ErrCorruptState, s.Player.Pos())
	}

	for _, c := range s.Chasers {
		if !c.Dir.Valid() {
			return fmt.Errorf("%w: chaser %d direction %d", ErrCorruptState, c.ID, c.Dir)
		}
	}

	if s.MapState == nil {
		return nil
	}
	if s.MapState.Width != layout.Width || s.MapState.Height != layout.Height {
		return fmt.Errorf("%w: map state is %dx%d, map is %dx%d", ErrCorruptState,
			s.MapState.Width, s.MapState.Height, layout.Width, layout.Height)
	}
	if err := s.MapState.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if n := s.MapState.Count(maze.PlayerSpawn) + s.MapState.Count(maze.ChaserSpawn); n > 0 {
		return fmt.Errorf("%w: map state holds %d spawn markers", ErrCorruptState, n)
	}
	return nil
}

// DebugState returns a string representation of the state.
func (s State) DebugState() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Tick: %d, Score: %d, Lives: %d, GameOver: %v\n", s.Tick, s.Score, s.Lives, s.GameOver))
	b.WriteString(fmt.Sprintf("Player: %v facing %s\n", s.Player.Pos(), s.Player.Dir))
	for _, c := range s.Chasers {
		b.WriteString(fmt.Sprintf("Chaser %d: %v facing %s\n", c.ID, c.Pos(), c.Dir))
	}
	if s.MapState != nil {
		b.WriteString(fmt.Sprintf("Dots left: %d, Pellets left: %d\n",
			s.MapState.Count(maze.Dot), s.MapState.Count(maze.PowerPellet)))
	}
	return b.String()
}
