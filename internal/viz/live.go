// Package viz provides a live terminal view of an envelope expansion.
package viz

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/beamenv/internal/beam"
	"github.com/san-kum/beamenv/internal/envelope"
)

const (
	graphWidth  = 80
	graphHeight = 14
	frameRate   = 30
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Model drives one envelope expansion a few steps per frame.
type Model struct {
	ex            *envelope.Expansion
	stepperName   string
	history       []float64 // radius in mm
	stepsPerFrame int
	paused        bool
	finished      bool
	err           error
}

// NewModel prepares a live run of the given parameters.
func NewModel(p beam.Params, st beam.Stepper, stepperName string) (Model, error) {
	ex, err := envelope.NewExpansion(p, st)
	if err != nil {
		return Model{}, err
	}

	spf := ex.Params().Steps / 300
	if spf < 1 {
		spf = 1
	}

	_, r := ex.At()
	return Model{
		ex:            ex,
		stepperName:   stepperName,
		history:       []float64{r * 1e3},
		stepsPerFrame: spf,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}

	case TickMsg:
		if m.paused || m.finished {
			return m, tick()
		}
		for i := 0; i < m.stepsPerFrame && !m.ex.Done(); i++ {
			if err := m.ex.Advance(); err != nil {
				m.err = err
				m.finished = true
				break
			}
		}
		_, r := m.ex.At()
		m.history = append(m.history, r*1e3)
		if m.ex.Done() {
			m.finished = true
		}
		return m, tick()
	}

	return m, nil
}

func (m Model) View() string {
	header := headerStyle.Render("beamenv live: drift envelope expansion")

	graph := asciigraph.Plot(m.history,
		asciigraph.Height(graphHeight),
		asciigraph.Width(graphWidth),
		asciigraph.Caption("envelope radius (mm)"),
	)

	z, r := m.ex.At()
	p := m.ex.Params()
	stats := fmt.Sprintf("%s%s\n%s%s\n%s%s\n%s%s\n%s%s",
		labelStyle.Render("stepper"), valueStyle.Render(m.stepperName),
		labelStyle.Render("z"), valueStyle.Render(fmt.Sprintf("%.4f / %.4f m", z, p.FinalZ)),
		labelStyle.Render("radius"), valueStyle.Render(fmt.Sprintf("%.4f mm", r*1e3)),
		labelStyle.Render("growth"), valueStyle.Render(fmt.Sprintf("%.4f", r/p.R0)),
		labelStyle.Render("perveance"), valueStyle.Render(fmt.Sprintf("%.3e", m.ex.Perveance())),
	)

	view := header + "\n" + graphStyle.Render(graph) + "\n" + stats

	if m.err != nil {
		view += "\n" + errStyle.Render(fmt.Sprintf("aborted: %v", m.err))
	} else if m.finished {
		view += "\n" + valueStyle.Render("done")
	}

	view += helpStyle.Render("\nspace pause · q quit")
	return view
}
