package core

// Brightness levels produced by the renderer and consumed by the encoder.
const (
	LevelEmpty  = 0
	LevelWall   = 1
	LevelDot    = 2
	LevelMarked = 3 // reserved; emitted for chasers when the overlay is on
	LevelPlayer = 4
)

// Matrix is a height x width grid of brightness levels, indexed [y][x].
type Matrix [][]int

// NewMatrix allocates a zeroed matrix.
func NewMatrix(width, height int) Matrix {
	m := make(Matrix, height)
	for y := range m {
		m[y] = make([]int, width)
	}
	return m
}

// Height returns the number of rows.
func (m Matrix) Height() int {
	return len(m)
}

// Width returns the length of the first row, or 0 for an empty matrix.
func (m Matrix) Width() int {
	if len(m) == 0 {
		return 0
	}
	return len(m[0])
}

// At returns the level at (x, y). Cells outside the matrix read as empty.
func (m Matrix) At(x, y int) int {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return LevelEmpty
	}
	return m[y][x]
}

// Set writes a level at (x, y). Out-of-bounds writes are ignored.
func (m Matrix) Set(x, y, level int) {
	if y < 0 || y >= len(m) || x < 0 || x >= len(m[y]) {
		return
	}
	m[y][x] = level
}
