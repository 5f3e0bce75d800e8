// Package tui renders a running fluid system in the terminal. It is a
// read-only consumer of the core: each frame steps the system, then draws
// the particle cloud as a side-view density raster.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pongo192/sphlab/internal/fluid"
)

const (
	canvasWidth  = 64
	canvasHeight = 24
	historyLen   = 60
)

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type Model struct {
	sys           *fluid.System
	adaptive      bool
	stepsPerFrame int
	step          int
	paused        bool
	dtHistory     []float64
}

func New(sys *fluid.System, adaptive bool, stepsPerFrame int) Model {
	if stepsPerFrame < 1 {
		stepsPerFrame = 1
	}
	return Model{
		sys:           sys,
		adaptive:      adaptive,
		stepsPerFrame: stepsPerFrame,
	}
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
		case "r":
			m.sys.Reset()
			m.step = 0
			m.dtHistory = nil
		}
	case tickMsg:
		if !m.paused {
			for i := 0; i < m.stepsPerFrame; i++ {
				m.sys.Step(m.adaptive)
				m.step++
			}
			m.dtHistory = append(m.dtHistory, m.sys.Dt())
			if len(m.dtHistory) > historyLen {
				m.dtHistory = m.dtHistory[1:]
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("sphlab"))
	b.WriteString("\n")
	b.WriteString(frameStyle.Render(m.drawCanvas()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf(
		"t=%.3f  dt=%.6f  particles=%d  step=%d",
		m.sys.Time(), m.sys.Dt(), len(m.sys.Particles()), m.step,
	)))
	b.WriteString("\n")
	if len(m.dtHistory) > 1 {
		b.WriteString(asciigraph.Plot(m.dtHistory,
			asciigraph.Height(5),
			asciigraph.Width(canvasWidth),
			asciigraph.Caption("dt"),
		))
		b.WriteString("\n")
	}
	b.WriteString(statusStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")
	return b.String()
}

// drawCanvas rasterizes the x/y side view. Cells with more particles get
// denser glyphs.
func (m Model) drawCanvas() string {
	bounds := m.sys.Bounds()
	xMin, xMax := bounds.XMin-0.05, bounds.XMax+0.05
	yMin, yMax := bounds.Floor-0.05, 0.6

	counts := make([][]int, canvasHeight)
	for i := range counts {
		counts[i] = make([]int, canvasWidth)
	}
	for _, p := range m.sys.Particles() {
		cx := int((p.Position.X - xMin) / (xMax - xMin) * float64(canvasWidth))
		cy := int((yMax - p.Position.Y) / (yMax - yMin) * float64(canvasHeight))
		if cx >= 0 && cx < canvasWidth && cy >= 0 && cy < canvasHeight {
			counts[cy][cx]++
		}
	}

	var b strings.Builder
	for y, row := range counts {
		for _, n := range row {
			switch {
			case n == 0:
				b.WriteByte(' ')
			case n == 1:
				b.WriteByte('.')
			case n <= 3:
				b.WriteByte('o')
			default:
				b.WriteByte('@')
			}
		}
		if y < canvasHeight-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Run starts the live viewer and blocks until the user quits.
func Run(sys *fluid.System, adaptive bool, stepsPerFrame int) error {
	_, err := tea.NewProgram(New(sys, adaptive, stepsPerFrame), tea.WithAltScreen()).Run()
	return err
}
