// Package maze holds map layouts: cell tags, the rectangular grid and the
// loaders for map files and built-in maps.
package maze

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/graph-chase/internal/core"
)

// Tile is a map cell tag. Values match the integers used in map files.
type Tile int

const (
	Empty Tile = iota
	Wall
	Dot
	PowerPellet
	PlayerSpawn
	ChaserSpawn
)

// Valid reports whether t is a known tag.
func (t Tile) Valid() bool {
	return t >= Empty && t <= ChaserSpawn
}

// IsSpawn reports whether t is a spawn marker.
func (t Tile) IsSpawn() bool {
	return t == PlayerSpawn || t == ChaserSpawn
}

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Wall:
		return "wall"
	case Dot:
		return "dot"
	case PowerPellet:
		return "power_pellet"
	case PlayerSpawn:
		return "player_spawn"
	case ChaserSpawn:
		return "chaser_spawn"
	default:
		return fmt.Sprintf("tile(%d)", int(t))
	}
}

// ErrInvalidLayout is returned for malformed map data.
var ErrInvalidLayout = errors.New("maze: invalid layout")

// Layout is a fixed-size rectangular grid of tiles, stored row-major as
// Cells[y][x].
type Layout struct {
	Width  int      `json:"width" yaml:"width"`
	Height int      `json:"height" yaml:"height"`
	Cells  [][]Tile `json:"layout" yaml:"layout"`
}

// New creates a layout of the given size filled with Empty.
func New(width, height int) *Layout {
	cells := make([][]Tile, height)
	for y := range cells {
		cells[y] = make([]Tile, width)
	}
	return &Layout{Width: width, Height: height, Cells: cells}
}

// Validate checks the layout shape. A layout that fails validation is a
// configuration error and must not reach the engine.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if len(l.Cells) != l.Height {
		return fmt.Errorf("%w: %d rows, expected %d", ErrInvalidLayout, len(l.Cells), l.Height)
	}
	for y, row := range l.Cells {
		if len(row) < l.Width {
			return fmt.Errorf("%w: row %d has %d cells, expected at least %d", ErrInvalidLayout, y, len(row), l.Width)
		}
		for x := 0; x < l.Width; x++ {
			if !row[x].Valid() {
				return fmt.Errorf("%w: unknown tag %d at (%d,%d)", ErrInvalidLayout, int(row[x]), x, y)
			}
		}
	}
	return nil
}

// InBounds returns true if (x, y) lies inside the grid.
func (l *Layout) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// At returns the tile at (x, y). Out-of-bounds reads return Wall.
func (l *Layout) At(x, y int) Tile {
	if !l.InBounds(x, y) {
		return Wall
	}
	return l.Cells[y][x]
}

// AtCoord is At for a core.Coord.
func (l *Layout) AtCoord(c core.Coord) Tile {
	return l.At(c.X, c.Y)
}

// Set writes a tile. Out-of-bounds writes are ignored.
func (l *Layout) Set(x, y int, t Tile) {
	if l.InBounds(x, y) {
		l.Cells[y][x] = t
	}
}

// Clone returns a deep copy trimmed to Width columns per row.
func (l *Layout) Clone() *Layout {
	cells := make([][]Tile, len(l.Cells))
	for y, row := range l.Cells {
		n := l.Width
		if len(row) < n {
			n = len(row)
		}
		cells[y] = make([]Tile, n)
		copy(cells[y], row[:n])
	}
	return &Layout{Width: l.Width, Height: l.Height, Cells: cells}
}

// Equal returns true if two layouts have the same dimensions and contents.
func (l *Layout) Equal(other *Layout) bool {
	if other == nil || l.Width != other.Width || l.Height != other.Height {
		return false
	}
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.At(x, y) != other.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Count returns how many cells hold the given tag.
func (l *Layout) Count(t Tile) int {
	n := 0
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			if l.Cells[y][x] == t {
				n++
			}
		}
	}
	return n
}
