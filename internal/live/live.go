// Package live implements the minimal bubbletea status view spec.md keeps
// in scope: a scalar graph_value time series and a one-line status bar,
// styled with lipgloss and plotted with asciigraph. Grounded on
// internal/viz/live.go's Model/Update/View/TickMsg shape in the teacher
// repo, stripped of the canvas renderer, GIF recorder, 3-D camera and
// per-model draw functions spec.md's Non-goals exclude (2-D/3-D rendering,
// trail storage, video export).
package live

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"

	"github.com/postusername/n-body-problem/internal/metrics"
	"github.com/postusername/n-body-problem/internal/scalar"
	"github.com/postusername/n-body-problem/internal/simulator"
	"github.com/postusername/n-body-problem/internal/system"
)

const historyCapacity = 300

type tickMsg time.Time

// Model drives one live run: a bound Simulator/System pair advanced a
// fixed number of steps per screen refresh, plotting graph_value and the
// energy-drift observer over the course of the run.
type Model[T scalar.Scalar[T]] struct {
	sim      simulator.Simulator[T]
	sys      system.System[T]
	scenario string

	stepsPerTick int
	maxSteps     int
	stepsTaken   int

	energyHistory []float64
	drift         *metrics.EnergyDrift[T]
	momentum      *metrics.MomentumDrift[T]
	centerOfMass  *metrics.CenterOfMassDrift[T]
	stability     *metrics.Stability[T]

	running  bool
	diverged bool
	quitting bool
}

// NewModel builds a live Model for scenario, bound to sim/sys, running for
// at most maxSteps total Simulator.Step calls, stepsPerTick per screen
// refresh (spec.md 4.E's steps_per_frame).
func NewModel[T scalar.Scalar[T]](sim simulator.Simulator[T], sys system.System[T], scenario string, stepsPerTick, maxSteps int) Model[T] {
	if stepsPerTick < 1 {
		stepsPerTick = 1
	}
	return Model[T]{
		sim:           sim,
		sys:           sys,
		scenario:      scenario,
		stepsPerTick:  stepsPerTick,
		maxSteps:      maxSteps,
		energyHistory: make([]float64, 0, historyCapacity),
		drift:         metrics.NewEnergyDrift[T](),
		momentum:      metrics.NewMomentumDrift[T](),
		centerOfMass:  metrics.NewCenterOfMassDrift[T](),
		stability:     metrics.NewStability[T](stabilityThreshold(sys)),
		running:       true,
	}
}

// stabilityThreshold scales metrics.Stability's bound to the scenario's own
// initial extent from the origin, since a Ring's radius-1 orbit and a
// SolarSystem's tens-of-AU orbits have nothing in common to compare against.
func stabilityThreshold[T scalar.Scalar[T]](sys system.System[T]) float64 {
	maxDist := 0.0
	for _, b := range sys.Bodies() {
		if d := b.Position.Magnitude().Float64(); d > maxDist {
			maxDist = d
		}
	}
	if maxDist == 0 {
		return 10.0
	}
	return 10.0 * maxDist
}

func (m Model[T]) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.running = !m.running
		}
	case tickMsg:
		if m.running && !m.diverged && m.stepsTaken < m.maxSteps {
			m.advance()
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
	}
	return m, nil
}

// advance steps the bound Simulator stepsPerTick times (or until maxSteps
// or divergence), sampling graph_value once at the end of the batch.
func (m *Model[T]) advance() {
	remaining := m.maxSteps - m.stepsTaken
	batch := m.stepsPerTick
	if batch > remaining {
		batch = remaining
	}

	taken := m.sim.Run(batch, nil)
	m.stepsTaken += taken

	if !m.sys.IsValid() || taken < batch {
		m.diverged = true
		m.running = false
	}

	m.drift.Observe(m.stepsTaken, m.sim.CurrentTime(), m.sys)
	m.momentum.Observe(m.stepsTaken, m.sim.CurrentTime(), m.sys)
	m.centerOfMass.Observe(m.stepsTaken, m.sim.CurrentTime(), m.sys)
	m.stability.Observe(m.stepsTaken, m.sim.CurrentTime(), m.sys)
	m.energyHistory = append(m.energyHistory, m.sys.GraphValue().Float64())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m Model[T]) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.scenario)) + "\n")

	status := "RUNNING"
	statusStyled := statusRunning.Render(status)
	if m.diverged {
		statusStyled = statusStopped.Render("DIVERGED")
	} else if !m.running {
		statusStyled = statusPaused.Render("PAUSED")
	}
	s.WriteString(statusStyled + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(8), asciigraph.Width(50), asciigraph.Caption("graph_value"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.4f", m.sim.CurrentTime().Float64())) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d / %d", m.stepsTaken, m.maxSteps)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", m.sys.Size())) + "\n")
	s.WriteString(labelStyle.Render("Energy drift") + valueStyle.Render(fmt.Sprintf("%.3e", m.drift.Value())) + "\n")
	s.WriteString(labelStyle.Render("Momentum drift") + valueStyle.Render(fmt.Sprintf("%.3e", m.momentum.Value())) + "\n")
	s.WriteString(labelStyle.Render("COM drift") + valueStyle.Render(fmt.Sprintf("%.3e", m.centerOfMass.Value())) + "\n")
	s.WriteString(labelStyle.Render("Stability") + valueStyle.Render(fmt.Sprintf("%.3f", m.stability.Value())) + "\n")

	s.WriteString(helpStyle.Render("space: pause/resume   q: quit"))
	return s.String()
}
