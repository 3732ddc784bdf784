// Package viz renders a live terminal view of an integration run.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/PREDICT-EPFL/yakf/ode"
)

const (
	graphWidth      = 70
	graphHeight     = 14
	historyCapacity = 600
	frameRate       = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type TickMsg time.Time

// Model steps the integration one sample interval per animation frame
// and plots the first state component over time.
type Model struct {
	name     string
	integ    *ode.Integrator[ode.Vec[float64], float64]
	x0       ode.Vec[float64]
	x        ode.Vec[float64]
	t        float64
	span     float64
	sampleDt float64
	history  []float64
	running  bool
	err      error
}

func NewModel(name string, integ *ode.Integrator[ode.Vec[float64], float64], x0 ode.Vec[float64], sampleDt, span float64) Model {
	return Model{
		name:     name,
		integ:    integ,
		x0:       x0.Clone(),
		x:        x0.Clone(),
		span:     span,
		sampleDt: sampleDt,
		history:  append(make([]float64, 0, historyCapacity), x0[0]),
		running:  true,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.x = m.x0.Clone()
			m.t = 0
			m.history = m.history[:0]
			m.history = append(m.history, m.x0[0])
			m.err = nil
		}
		return m, nil

	case TickMsg:
		if m.running && m.err == nil && m.t < m.span {
			// Each frame is an independent integration over one sample
			// interval starting from the previous terminal state.
			x, err := m.integ.Integrate(m.sampleDt, m.x)
			if err != nil {
				m.err = err
			} else {
				m.x = x
				m.t += m.sampleDt
				m.history = append(m.history, x[0])
				if len(m.history) > historyCapacity {
					m.history = m.history[len(m.history)-historyCapacity:]
				}
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("yakf live: %s (%d steps/frame)", m.name, m.integ.Steps(m.sampleDt))))
	b.WriteString("\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("x[0] over time"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(labelStyle.Render("t"))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.3f / %.3f", m.t, m.span)))
	b.WriteString("\n")
	for i, v := range m.x {
		b.WriteString(labelStyle.Render(fmt.Sprintf("x[%d]", i)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%+.6f", v)))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errStyle.Render(fmt.Sprintf("error: %v", m.err)))
		b.WriteString("\n")
	} else if m.t >= m.span {
		b.WriteString(valueStyle.Render("done"))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	return b.String()
}

// Run blocks until the viewer exits.
func Run(name string, integ *ode.Integrator[ode.Vec[float64], float64], x0 ode.Vec[float64], sampleDt, span float64) error {
	p := tea.NewProgram(NewModel(name, integ, x0, sampleDt, span))
	_, err := p.Run()
	return err
}
