package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/graph-chase/internal/core"
)

// cellGlyph is drawn once per matrix cell, followed by a gap.
const cellGlyph = "■"

// levelStyles maps brightness levels to the activity graph palette.
var levelStyles = map[int]lipgloss.Style{
	core.LevelEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("#161b22")),
	core.LevelWall:   lipgloss.NewStyle().Foreground(lipgloss.Color("#0e4429")),
	core.LevelDot:    lipgloss.NewStyle().Foreground(lipgloss.Color("#006d32")),
	core.LevelMarked: lipgloss.NewStyle().Foreground(lipgloss.Color("#26a641")),
	core.LevelPlayer: lipgloss.NewStyle().Foreground(lipgloss.Color("#39d353")),
}

// styleFor returns the style for a level. Unknown levels render like empty
// cells since they produce no activity.
func styleFor(level int) lipgloss.Style {
	if s, ok := levelStyles[level]; ok {
		return s
	}
	return levelStyles[core.LevelEmpty]
}

// RenderGraph converts a brightness matrix to a colored activity graph.
// Groups adjacent cells with the same level to minimize ANSI escape sequences.
func RenderGraph(m core.Matrix) string {
	width := m.Width()

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(width*m.Height()*8 + m.Height())

	for y, h := 0, m.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < width {
			level := m.At(x, y)

			// Collect consecutive cells with the same level
			var run strings.Builder
			for x < width && m.At(x, y) == level {
				run.WriteString(cellGlyph)
				if x < width-1 {
					run.WriteRune(' ')
				}
				x++
			}

			sb.WriteString(styleFor(level).Render(run.String()))
		}
	}
	return sb.String()
}

// Legend renders the level scale from least to most activity.
func Legend() string {
	var sb strings.Builder
	sb.WriteString("less ")
	for level := core.LevelEmpty; level <= core.LevelPlayer; level++ {
		sb.WriteString(styleFor(level).Render(cellGlyph))
		sb.WriteRune(' ')
	}
	sb.WriteString("more")
	return sb.String()
}
