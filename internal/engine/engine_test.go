package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/vovakirdan/graph-chase/internal/config"
	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/maze"
)

// layoutFrom builds a layout from ASCII rows:
// '#' wall, '.' dot, 'o' pellet, 'P' player spawn, 'G' chaser spawn, ' ' empty.
func layoutFrom(t *testing.T, rows ...string) *maze.Layout {
	t.Helper()
	l := maze.New(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != l.Width {
			t.Fatalf("row %d has length %d, expected %d", y, len(row), l.Width)
		}
		for x, ch := range row {
			var tile maze.Tile
			switch ch {
			case '#':
				tile = maze.Wall
			case '.':
				tile = maze.Dot
			case 'o':
				tile = maze.PowerPellet
			case 'P':
				tile = maze.PlayerSpawn
			case 'G':
				tile = maze.ChaserSpawn
			case ' ':
				tile = maze.Empty
			default:
				t.Fatalf("unknown map rune %q", ch)
			}
			l.Set(x, y, tile)
		}
	}
	return l
}

// noFallbacks returns the default rules without fallback chasers so small
// test maps can run player-only scenarios.
func noFallbacks() Rules {
	r := DefaultRules()
	r.FallbackChasers = nil
	return r
}

func TestInitializeClearsSpawns(t *testing.T) {
	layout, err := maze.Builtin("tiny")
	if err != nil {
		t.Fatalf("Builtin(tiny) failed: %v", err)
	}

	e := New(DefaultRules(), &core.ScriptedRand{})
	s := e.Initialize(layout)

	if n := s.MapState.Count(maze.PlayerSpawn) + s.MapState.Count(maze.ChaserSpawn); n != 0 {
		t.Errorf("expected no spawn markers in map state, found %d", n)
	}
	if layout.Count(maze.PlayerSpawn) != 1 {
		t.Error("Initialize must not modify the source layout")
	}
	if len(s.Chasers) < 2 {
		t.Errorf("expected at least 2 chasers, got %d", len(s.Chasers))
	}
	for i, c := range s.Chasers {
		if c.ID != i {
			t.Errorf("chaser %d has id %d", i, c.ID)
		}
		if c.Dir != core.DirLeft {
			t.Errorf("chaser %d faces %v, expected LEFT", i, c.Dir)
		}
	}
	if s.Player.Pos() != core.C(1, 1) || s.Player.Dir != core.DirRight {
		t.Errorf("player = %v facing %v, expected (1,1) facing RIGHT", s.Player.Pos(), s.Player.Dir)
	}
	if s.Lives != 3 || s.Score != 0 || s.Tick != 0 || s.GameOver {
		t.Errorf("unexpected counters: %+v", s)
	}
}

func TestInitializeFallbackChasers(t *testing.T) {
	layout := layoutFrom(t,
		"#####",
		"#P..#",
		"#####",
	)

	s := New(DefaultRules(), &core.ScriptedRand{}).Initialize(layout)

	want := []Chaser{
		{ID: 0, X: 12, Y: 3, Dir: core.DirLeft},
		{ID: 1, X: 14, Y: 3, Dir: core.DirRight},
	}
	if !reflect.DeepEqual(s.Chasers, want) {
		t.Errorf("fallback chasers = %+v, expected %+v", s.Chasers, want)
	}
}

func TestInitializeFirstPlayerSpawnWins(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#..P.#",
		"#P...#",
		"######",
	)

	s := New(noFallbacks(), &core.ScriptedRand{}).Initialize(layout)

	if s.Player.Pos() != core.C(3, 1) {
		t.Errorf("player at %v, expected first spawn (3,1)", s.Player.Pos())
	}
	if s.MapState.At(1, 2) != maze.Empty {
		t.Error("second player spawn should be cleared too")
	}
}

func TestDotConsumedOnce(t *testing.T) {
	layout := layoutFrom(t,
		"#####",
		"#P..#",
		"#####",
	)
	e := New(noFallbacks(), &core.ScriptedRand{})
	s := e.Initialize(layout)

	// Eat (2,1)
	s = e.Step(layout, s).State
	if s.Score != 10 || s.MapState.At(2, 1) != maze.Empty {
		t.Fatalf("after first dot: score=%d cell=%v", s.Score, s.MapState.At(2, 1))
	}

	// Eat (3,1)
	s = e.Step(layout, s).State
	if s.Score != 20 {
		t.Fatalf("after second dot: score=%d, expected 20", s.Score)
	}

	// Blocked by the wall: turn left, stay put
	s = e.Step(layout, s).State
	if s.Player.Pos() != core.C(3, 1) || s.Player.Dir != core.DirLeft {
		t.Fatalf("blocked player = %v facing %v", s.Player.Pos(), s.Player.Dir)
	}

	// Walk back over the eaten cell: no score
	s = e.Step(layout, s).State
	if s.Player.Pos() != core.C(2, 1) {
		t.Fatalf("player at %v, expected (2,1)", s.Player.Pos())
	}
	if s.Score != 20 {
		t.Errorf("revisiting an empty cell changed score to %d", s.Score)
	}
	if s.Tick != 4 {
		t.Errorf("tick = %d, expected 4", s.Tick)
	}
}

func TestPowerPelletScore(t *testing.T) {
	layout := layoutFrom(t,
		"####",
		"#Po#",
		"####",
	)
	e := New(noFallbacks(), &core.ScriptedRand{})
	s := e.Step(layout, e.Initialize(layout)).State

	if s.Score != 50 {
		t.Errorf("score = %d, expected 50", s.Score)
	}
	if s.MapState.At(2, 1) != maze.Empty {
		t.Error("pellet should be consumed")
	}
}

func TestBlockedPlayerTurnsWithoutMoving(t *testing.T) {
	layout := layoutFrom(t,
		"####",
		"#P.#",
		"####",
	)
	rules := noFallbacks()
	rules.PlayerDir = core.DirUp

	rng := &core.ScriptedRand{Ints: []int{0}}
	e := New(rules, rng)
	s := e.Step(layout, e.Initialize(layout)).State

	if s.Player.Dir != core.DirRight {
		t.Errorf("facing = %v, expected the only valid direction RIGHT", s.Player.Dir)
	}
	if s.Player.Pos() != core.C(1, 1) {
		t.Errorf("player moved to %v, expected to stay at (1,1)", s.Player.Pos())
	}
	if s.Score != 0 {
		t.Errorf("score = %d, expected 0", s.Score)
	}
}

func TestTrappedPlayerKeepsFacing(t *testing.T) {
	layout := layoutFrom(t,
		"###",
		"#P#",
		"###",
	)
	rng := &core.ScriptedRand{}
	e := New(noFallbacks(), rng)
	s := e.Step(layout, e.Initialize(layout)).State

	if s.Player.Dir != core.DirRight || s.Player.Pos() != core.C(1, 1) {
		t.Errorf("trapped player = %v facing %v", s.Player.Pos(), s.Player.Dir)
	}
	if _, ints := rng.Consumed(); ints != 0 {
		t.Errorf("no random choice expected without valid moves, drew %d", ints)
	}
}

func TestChaserMovement(t *testing.T) {
	rows := []string{
		"#######",
		"#P....#",
		"#.###.#",
		"#..G..#",
		"#######",
	}

	tests := []struct {
		name       string
		chaserDir  core.Dir
		rng        *core.ScriptedRand
		wantPos    core.Coord
		wantDir    core.Dir
		wantFloats int
		wantInts   int
	}{
		{
			name:       "continues straight",
			chaserDir:  core.DirLeft,
			rng:        &core.ScriptedRand{Floats: []float64{0.5}},
			wantPos:    core.C(2, 3),
			wantDir:    core.DirLeft,
			wantFloats: 1,
		},
		{
			name:       "turns and moves in the same tick",
			chaserDir:  core.DirLeft,
			rng:        &core.ScriptedRand{Floats: []float64{0.1}, Ints: []int{1}},
			wantPos:    core.C(4, 3),
			wantDir:    core.DirRight,
			wantFloats: 1,
			wantInts:   1,
		},
		{
			name:      "blocked chaser turns without a draw",
			chaserDir: core.DirUp,
			rng:       &core.ScriptedRand{Ints: []int{0}},
			wantPos:   core.C(2, 3),
			wantDir:   core.DirLeft,
			wantInts:  1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			layout := layoutFrom(t, rows...)
			rules := noFallbacks()
			rules.ChaserDir = tc.chaserDir

			e := New(rules, tc.rng)
			s := e.Step(layout, e.Initialize(layout)).State

			c := s.Chasers[0]
			if c.Pos() != tc.wantPos || c.Dir != tc.wantDir {
				t.Errorf("chaser = %v facing %v, expected %v facing %v", c.Pos(), c.Dir, tc.wantPos, tc.wantDir)
			}
			floats, ints := tc.rng.Consumed()
			if floats != tc.wantFloats || ints != tc.wantInts {
				t.Errorf("draws = (%d floats, %d ints), expected (%d, %d)", floats, ints, tc.wantFloats, tc.wantInts)
			}
		})
	}
}

func TestChasersDoNotEatDots(t *testing.T) {
	layout := layoutFrom(t,
		"#######",
		"#P #..#",
		"#######",
	)
	layout.Set(5, 1, maze.ChaserSpawn)

	e := New(noFallbacks(), &core.ScriptedRand{Floats: []float64{0.9}})
	s := e.Step(layout, e.Initialize(layout)).State

	if s.Chasers[0].Pos() != core.C(4, 1) {
		t.Fatalf("chaser at %v, expected (4,1)", s.Chasers[0].Pos())
	}
	if s.MapState.At(4, 1) != maze.Dot {
		t.Error("chasers must not consume dots")
	}
}

func TestCollisionCostsLife(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#P.G.#",
		"######",
	)
	e := New(noFallbacks(), &core.ScriptedRand{Floats: []float64{0.9}})
	res := e.Step(layout, e.Initialize(layout))
	s := res.State

	if res.GameOver {
		t.Fatal("one collision should not end the game")
	}
	if s.Lives != 2 {
		t.Errorf("lives = %d, expected 2", s.Lives)
	}
	if s.Player.Pos() != core.C(1, 1) {
		t.Errorf("player at %v, expected respawn (1,1)", s.Player.Pos())
	}
	if s.Chasers[0].Pos() != core.C(2, 1) {
		t.Errorf("chaser at %v, expected it to keep its position (2,1)", s.Chasers[0].Pos())
	}
	if s.Score != 10 || s.MapState.At(2, 1) != maze.Empty {
		t.Errorf("map progress lost: score=%d cell=%v", s.Score, s.MapState.At(2, 1))
	}
}

func TestGameOverStartsFreshGame(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#P.G.#",
		"######",
	)
	e := New(noFallbacks(), &core.ScriptedRand{Floats: []float64{0.9}})
	start := e.Initialize(layout)
	start.Lives = 1
	start.Tick = 41

	res := e.Step(layout, start)
	s := res.State

	if !res.GameOver || res.FinalScore != 10 {
		t.Fatalf("result = %+v, expected game over with final score 10", res)
	}
	if s.GameOver {
		t.Error("fresh state must start as a running game")
	}
	if s.Lives != 3 || s.Score != 0 {
		t.Errorf("fresh state lives=%d score=%d", s.Lives, s.Score)
	}
	if s.Tick != 42 {
		t.Errorf("tick = %d, expected 42", s.Tick)
	}
	if s.MapState.At(2, 1) != maze.Dot {
		t.Error("fresh game should restore the map")
	}
	if s.Chasers[0].Pos() != core.C(3, 1) {
		t.Errorf("chaser at %v, expected spawn (3,1)", s.Chasers[0].Pos())
	}

	next := e.Step(layout, s)
	if next.GameOver || next.State.GameOver || next.State.Tick != 43 {
		t.Errorf("step after game over = %+v, expected a running game at tick 43", next)
	}
}

func TestLivesMonotonic(t *testing.T) {
	layout, err := maze.Builtin("tiny")
	if err != nil {
		t.Fatal(err)
	}

	e := New(DefaultRules(), core.NewRand(7))
	s := e.Initialize(layout)
	games := 0

	for i := 0; i < 2000; i++ {
		res := e.Step(layout, s)
		if res.State.Tick != s.Tick+1 {
			t.Fatalf("tick jumped from %d to %d", s.Tick, res.State.Tick)
		}
		// Zero lives is never persisted: reaching it resets the game
		if res.State.Lives < 1 {
			t.Fatalf("lives = %d at tick %d", res.State.Lives, res.State.Tick)
		}
		if res.GameOver {
			games++
			if res.State.Lives != e.Rules().Lives {
				t.Fatalf("fresh game has %d lives", res.State.Lives)
			}
		} else if res.State.Lives > s.Lives {
			t.Fatalf("lives increased from %d to %d", s.Lives, res.State.Lives)
		}
		s = res.State
	}

	if games == 0 {
		t.Log("no game over in 2000 ticks; monotonicity checked without a reset")
	}
}

func TestDeterminism(t *testing.T) {
	layout, err := maze.Builtin("classic")
	if err != nil {
		t.Fatal(err)
	}

	e1 := New(DefaultRules(), core.NewRand(12345))
	e2 := New(DefaultRules(), core.NewRand(12345))

	s1 := e1.Initialize(layout)
	s2 := e2.Initialize(layout)
	for i := 0; i < 300; i++ {
		s1 = e1.Step(layout, s1).State
		s2 = e2.Step(layout, s2).State
	}

	b1, err := json.Marshal(s1)
	if err != nil {
		t.Fatal(err)
	}
	b2, err := json.Marshal(s2)
	if err != nil {
		t.Fatal(err)
	}
	if string(b1) != string(b2) {
		t.Errorf("same seed produced different states:\n%s\n%s", s1.DebugState(), s2.DebugState())
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	layout, err := maze.Builtin("classic")
	if err != nil {
		t.Fatal(err)
	}
	e := New(DefaultRules(), core.NewRand(1))
	s := e.Initialize(layout)
	before := s.Clone()

	for i := 0; i < 5; i++ {
		e.Step(layout, s)
	}

	if !reflect.DeepEqual(s, before) {
		t.Error("Step modified its input state")
	}
}

func TestResume(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#P.G.#",
		"######",
	)
	e := New(noFallbacks(), &core.ScriptedRand{})
	fresh := e.Initialize(layout)

	s, err := e.Resume(layout, nil)
	if err != nil || !reflect.DeepEqual(s, fresh) {
		t.Errorf("Resume(nil) = %+v, %v", s, err)
	}

	valid := fresh.Clone()
	valid.Score = 30
	s, err = e.Resume(layout, &valid)
	if err != nil || s.Score != 30 {
		t.Errorf("Resume(valid) = score %d, err %v", s.Score, err)
	}

	corrupt := []struct {
		name   string
		mutate func(*State)
	}{
		{"negative score", func(s *State) { s.Score = -1 }},
		{"negative lives", func(s *State) { s.Lives = -2 }},
		{"bad direction", func(s *State) { s.Player.Dir = core.Dir(7) }},
		{"spawn marker", func(s *State) { s.MapState.Set(2, 1, maze.ChaserSpawn) }},
		{"wrong size", func(s *State) { s.MapState = maze.New(3, 3) }},
		{"player outside", func(s *State) { s.Player.X = 6 }},
		{"no chasers", func(s *State) { s.Chasers = nil }},
		{"player in wall", func(s *State) { s.Player.X, s.Player.Y = 0, 0 }},
	}
	for _, tc := range corrupt {
		t.Run(tc.name, func(t *testing.T) {
			bad := fresh.Clone()
			tc.mutate(&bad)
			s, err := e.Resume(layout, &bad)
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("err = %v, expected ErrCorruptState", err)
			}
			if !reflect.DeepEqual(s, fresh) {
				t.Error("corrupt state should fall back to a fresh game")
			}
		})
	}
}

func TestResumeFallbackChasersOffMap(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#P...#",
		"######",
	)
	e := New(DefaultRules(), &core.ScriptedRand{})
	s := e.Initialize(layout)
	for _, c := range s.Chasers {
		if layout.InBounds(c.X, c.Y) {
			t.Fatalf("fallback chaser %d at %v is inside the map", c.ID, c.Pos())
		}
	}

	for tick := 1; tick <= 3; tick++ {
		persisted := s.Clone()
		resumed, err := e.Resume(layout, &persisted)
		if err != nil {
			t.Fatalf("tick %d: Resume() failed: %v", tick, err)
		}
		s = e.Step(layout, resumed).State
		if s.Tick != tick {
			t.Fatalf("tick = %d, expected %d", s.Tick, tick)
		}
	}
}

func TestResumeKeepsRespawnedPlayer(t *testing.T) {
	layout := layoutFrom(t,
		"######",
		"#P.G.#",
		"######",
	)
	rules := noFallbacks()
	rules.Respawn = core.C(0, 0)
	e := New(rules, &core.ScriptedRand{})

	persisted := e.Initialize(layout)
	persisted.Player.X, persisted.Player.Y = 0, 0
	if _, err := e.Resume(layout, &persisted); err != nil {
		t.Errorf("player on the configured respawn cell was rejected: %v", err)
	}
}

func TestIsValidMove(t *testing.T) {
	layout := layoutFrom(t,
		"###",
		"#.o",
		"# #",
	)

	tests := []struct {
		x, y int
		want bool
	}{
		{1, 1, true},  // dot
		{2, 1, true},  // pellet
		{1, 2, true},  // empty
		{0, 0, false}, // wall
		{-1, 1, false},
		{3, 1, false},
		{1, 3, false},
	}
	for _, tc := range tests {
		if got := IsValidMove(layout, tc.x, tc.y); got != tc.want {
			t.Errorf("IsValidMove(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(config.DefaultConfig().Rules)
	if err != nil {
		t.Fatalf("RulesFromConfig failed: %v", err)
	}
	if !reflect.DeepEqual(rules, DefaultRules()) {
		t.Errorf("config defaults = %+v, expected %+v", rules, DefaultRules())
	}

	bad := config.DefaultConfig().Rules
	bad.ChaserDir = "sideways"
	if _, err := RulesFromConfig(bad); err == nil {
		t.Error("expected error for unknown direction")
	}
}
