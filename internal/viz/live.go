package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/particle"
)

const (
	historyCapacity = 120
	minSpeed        = 0.125
	maxSpeed        = 16
)

type TickMsg time.Time

type LiveConfig struct {
	Width, Height float32
	FPS           int
	// Respawn builds a fresh field for the r key. Nil restores the field
	// the view started with.
	Respawn func() particle.Field
}

// Live is a bubbletea model that integrates a field at a fixed frame rate
// and draws it on a braille canvas.
type Live struct {
	field   particle.Field
	initial particle.Field
	backend compute.Backend
	cfg     LiveConfig

	canvas  *Canvas
	running bool
	speed   float64
	t       float64
	frames  int
	wraps   []float64

	termWidth, termHeight int
}

func NewLive(field particle.Field, backend compute.Backend, cfg LiveConfig) Live {
	if cfg.FPS <= 0 {
		cfg.FPS = 30
	}
	if backend == nil {
		backend = compute.NewSerialBackend()
	}
	return Live{
		field:      field,
		initial:    field.Clone(),
		backend:    backend,
		cfg:        cfg,
		canvas:     NewCanvas(60, 18),
		running:    true,
		speed:      1,
		wraps:      make([]float64, 0, historyCapacity),
		termWidth:  80,
		termHeight: 24,
	}
}

func (m Live) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd {
	return m.tick()
}

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.speed < maxSpeed {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > minSpeed {
				m.speed /= 2
			}
		}
	case tea.WindowSizeMsg:
		m.termWidth, m.termHeight = msg.Width, msg.Height
		m.canvas = NewCanvas(msg.Width-4, msg.Height-12)
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

// step advances the field by one frame of simulated time.
func (m *Live) step() {
	dt := m.speed / float64(m.cfg.FPS)
	n := m.backend.Integrate(m.field, float32(dt), m.cfg.Width, m.cfg.Height)
	m.t += dt
	m.frames++

	m.wraps = append(m.wraps, float64(n))
	if len(m.wraps) > historyCapacity {
		m.wraps = m.wraps[1:]
	}
}

func (m *Live) reset() {
	if m.cfg.Respawn != nil {
		m.field = m.cfg.Respawn()
		m.initial = m.field.Clone()
	} else {
		copy(m.field, m.initial)
	}
	m.t = 0
	m.frames = 0
	m.wraps = m.wraps[:0]
}

func (m Live) View() string {
	PlotField(m.canvas, m.field, m.cfg.Width, m.cfg.Height)

	var s strings.Builder
	s.WriteString(titleStyle.Render("PARTICLE FIELD") + "  ")
	if m.running {
		s.WriteString(statusRunning.Render("RUNNING"))
	} else {
		s.WriteString(statusPaused.Render("PAUSED"))
	}
	s.WriteString("\n")
	s.WriteString(canvasStyle.Render(m.canvas.String()) + "\n")

	c := m.field.Centroid()
	s.WriteString(strings.Join([]string{
		metric("t", fmt.Sprintf("%.2fs", m.t)),
		metric("particles", fmt.Sprintf("%d", len(m.field))),
		metric("speed", fmt.Sprintf("%gx", m.speed)),
		metric("centroid", fmt.Sprintf("(%.1f, %.1f)", c.X, c.Y)),
	}, "   ") + "\n")

	if len(m.wraps) > 1 {
		width := m.termWidth - 12
		if width > historyCapacity {
			width = historyCapacity
		}
		if width < 10 {
			width = 10
		}
		s.WriteString(asciigraph.Plot(m.wraps, asciigraph.Height(4), asciigraph.Width(width), asciigraph.Caption("wraps per frame")) + "\n")
	}

	s.WriteString(keyHint.Render("space pause · r reset · +/- speed · q quit"))
	return s.String()
}

// Field exposes the live field, mainly for tests.
func (m Live) Field() particle.Field { return m.field }

// Time is the simulated time shown in the status line.
func (m Live) Time() float64 { return m.t }

// RunLive runs the terminal view until the user quits.
func RunLive(m Live) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
