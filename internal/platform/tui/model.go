package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/graph-chase/internal/engine"
	"github.com/vovakirdan/graph-chase/internal/maze"
	"github.com/vovakirdan/graph-chase/internal/render"
)

// Speed limits for the live view, in steps per second.
const (
	minFPS = 1
	maxFPS = 30
)

// WatchConfig configures the live simulation.
type WatchConfig struct {
	MapName     string
	FPS         int
	ShowChasers bool
	Paused      bool
}

// Model is the Bubble Tea model for watching the simulation run.
// It steps its own in-memory state and never touches persisted state.
type Model struct {
	engine *engine.Engine
	layout *maze.Layout
	state  engine.State
	config WatchConfig

	keys     WatchKeyMap
	help     help.Model
	paused   bool
	quitting bool

	games     int // finished games this session
	bestScore int
	width     int
}

// NewModel creates a live view starting from state.
func NewModel(eng *engine.Engine, layout *maze.Layout, state engine.State, cfg WatchConfig) Model {
	if cfg.FPS < minFPS {
		cfg.FPS = minFPS
	}
	if cfg.FPS > maxFPS {
		cfg.FPS = maxFPS
	}

	h := help.New()
	h.ShowAll = false

	return Model{
		engine: eng,
		layout: layout,
		state:  state,
		config: cfg,
		keys:   DefaultWatchKeyMap(),
		help:   h,
		paused: cfg.Paused,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		// A single tick chain runs for the model's lifetime; pausing only
		// skips the step.
		if !m.paused {
			m.step()
		}
		return m, tickCmd(m.config.FPS)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused

	case key.Matches(msg, m.keys.Step):
		if m.paused {
			m.step()
		}

	case key.Matches(msg, m.keys.Reset):
		m.state = m.engine.Initialize(m.layout)

	case key.Matches(msg, m.keys.Chasers):
		m.config.ShowChasers = !m.config.ShowChasers

	case key.Matches(msg, m.keys.Faster):
		if m.config.FPS < maxFPS {
			m.config.FPS++
		}

	case key.Matches(msg, m.keys.Slower):
		if m.config.FPS > minFPS {
			m.config.FPS--
		}

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}

	return m, nil
}

// step advances the simulation by one tick.
func (m *Model) step() {
	result := m.engine.Step(m.layout, m.state)
	if result.GameOver {
		m.games++
		if result.FinalScore > m.bestScore {
			m.bestScore = result.FinalScore
		}
	}
	m.state = result.State
}

// State returns the current simulation state.
func (m Model) State() engine.State {
	return m.state
}

// Paused reports whether stepping is suspended.
func (m Model) Paused() bool {
	return m.paused
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#39d353"))
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))

	b.WriteString(titleStyle.Render("chase " + m.config.MapName))
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(m.status()))
	b.WriteString("\n\n")

	frame := render.Frame(m.layout, m.state, render.Options{Chasers: m.config.ShowChasers})
	b.WriteString(RenderGraph(frame))
	b.WriteString("\n\n")
	b.WriteString(statusStyle.Render(Legend()))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) status() string {
	s := fmt.Sprintf("tick %d  score %d  lives %d  best %d  games %d  %d fps",
		m.state.Tick, m.state.Score, m.state.Lives, m.bestScore, m.games, m.config.FPS)
	if m.paused {
		s += "  [paused]"
	}
	return s
}

// Run starts the live view.
func Run(eng *engine.Engine, layout *maze.Layout, state engine.State, cfg WatchConfig) error {
	model := NewModel(eng, layout, state, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
