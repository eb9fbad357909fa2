// Package render maps simulation state to a brightness matrix and to the
// plain-text screen dump.
package render

import (
	"strconv"
	"strings"

	"github.com/vovakirdan/graph-chase/internal/core"
	"github.com/vovakirdan/graph-chase/internal/engine"
	"github.com/vovakirdan/graph-chase/internal/maze"
)

// Options toggles optional levels on top of the terrain.
type Options struct {
	// Chasers draws chasers at core.LevelMarked.
	Chasers bool
}

// Frame renders the state into a matrix shaped like the layout.
// Terrain is read from state.MapState when present. The player is drawn
// last so it is always visible.
func Frame(layout *maze.Layout, state engine.State, opts Options) core.Matrix {
	terrain := layout
	if state.MapState != nil {
		terrain = state.MapState
	}

	m := core.NewMatrix(layout.Width, layout.Height)
	for y := 0; y < layout.Height; y++ {
		for x := 0; x < layout.Width; x++ {
			m[y][x] = terrainLevel(terrain.At(x, y))
		}
	}

	if opts.Chasers {
		for _, c := range state.Chasers {
			m.Set(c.X, c.Y, core.LevelMarked)
		}
	}

	m.Set(state.Player.X, state.Player.Y, core.LevelPlayer)
	return m
}

// terrainLevel maps a tile to its brightness. Pellets render empty.
func terrainLevel(t maze.Tile) int {
	switch t {
	case maze.Wall:
		return core.LevelWall
	case maze.Dot:
		return core.LevelDot
	default:
		return core.LevelEmpty
	}
}

// Glyph returns the screen-dump text for a brightness level.
// Levels without a symbol are written as their decimal value.
func Glyph(level int) string {
	switch level {
	case core.LevelEmpty:
		return " "
	case core.LevelWall:
		return "#"
	case core.LevelDot:
		return "."
	case core.LevelPlayer:
		return "C"
	}
	return strconv.Itoa(level)
}

// ASCII converts a matrix to the text used for screen.txt.
// Rows are joined with newlines.
func ASCII(m core.Matrix) string {
	var sb strings.Builder
	sb.Grow(m.Width()*m.Height() + m.Height()) // Pre-allocate for efficiency

	for y, row := range m {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, level := range row {
			sb.WriteString(Glyph(level))
		}
	}
	return sb.String()
}
