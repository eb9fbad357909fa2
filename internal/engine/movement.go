package engine

import (
	"github.com/vovakirdan/graph-chase/internal/maze"
)

// movePlayer moves the player one cell forward, eating what it finds.
// A blocked player picks a new facing at random and waits for the next tick.
func (e *Engine) movePlayer(s *State) {
	w := s.MapState
	pos := s.Player.Pos()
	next := pos.Step(s.Player.Dir)

	if !IsValidMove(w, next.X, next.Y) {
		if dirs := validDirections(w, pos); len(dirs) > 0 {
			s.Player.Dir = dirs[e.rng.Intn(len(dirs))]
		}
		return
	}

	s.Player.X, s.Player.Y = next.X, next.Y

	switch w.Cells[next.Y][next.X] {
	case maze.Dot:
		s.Score += e.rules.DotPoints
		w.Cells[next.Y][next.X] = maze.Empty
	case maze.PowerPellet:
		s.Score += e.rules.PelletPoints
		w.Cells[next.Y][next.X] = maze.Empty
	}
}

// moveChasers moves every chaser in list order.
// A chaser usually keeps going straight; when it turns (by chance or because
// it is blocked) it moves into the new direction in the same tick.
func (e *Engine) moveChasers(s *State) {
	w := s.MapState
	for i := range s.Chasers {
		c := &s.Chasers[i]
		pos := c.Pos()
		next := pos.Step(c.Dir)

		// The draw only happens when going straight is possible
		if IsValidMove(w, next.X, next.Y) && e.rng.Float64() > e.rules.TurnChance {
			c.X, c.Y = next.X, next.Y
			continue
		}

		dirs := validDirections(w, pos)
		if len(dirs) == 0 {
			continue
		}
		c.Dir = dirs[e.rng.Intn(len(dirs))]
		turned := pos.Step(c.Dir)
		c.X, c.Y = turned.X, turned.Y
	}
}

// checkCollisions costs a life for every chaser on the player's cell.
// Losing the last life replaces the state with a fresh game.
func (e *Engine) checkCollisions(layout *maze.Layout, s *State, result *Result) {
	hit := s.Player.Pos()

	for _, c := range s.Chasers {
		if c.Pos() != hit {
			continue
		}

		s.Lives--
		if s.Lives <= 0 {
			result.GameOver = true
			result.FinalScore = s.Score
			*s = e.Initialize(layout)
			return
		}

		s.Player.X, s.Player.Y = e.rules.Respawn.X, e.rules.Respawn.Y
	}
}
