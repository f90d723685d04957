package viz

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/partsim/internal/particle"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Fatal("expected pixels to be set")
	}
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Clear()
	if c.IsSet(0, 0) || c.Grid[0][0] != brailleBlank {
		t.Error("expected canvas cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	if c.IsSet(-1, 0) || c.IsSet(100, 100) {
		t.Error("out of range pixels must be ignored")
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(c.String(), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells per line, got %d", len([]rune(lines[0])))
	}
}

func TestToPixel(t *testing.T) {
	tests := []struct {
		p    particle.Vec2
		x, y int
	}{
		{particle.Vec2{X: -400, Y: 300}, 0, 0},
		{particle.Vec2{X: 400, Y: -300}, 159, 79},
		{particle.Vec2{X: 0, Y: 0}, 80, 40},
	}
	for _, tt := range tests {
		x, y := ToPixel(tt.p, 800, 600, 160, 80)
		if x != tt.x || y != tt.y {
			t.Errorf("ToPixel(%+v) = (%d,%d), want (%d,%d)", tt.p, x, y, tt.x, tt.y)
		}
	}
}

func TestPlotField(t *testing.T) {
	c := NewCanvas(80, 20)
	f := particle.Field{{Position: particle.Vec2{X: -400, Y: 300}}, {Position: particle.Vec2{X: 0, Y: 0}}}
	PlotField(c, f, 800, 600)
	if !c.IsSet(0, 0) || !c.IsSet(80, 40) {
		t.Error("expected both particles plotted")
	}
}

func newTestLive() Live {
	f := particle.Spawn(100, 800, 600, 100, rand.New(rand.NewSource(1)))
	return NewLive(f, nil, LiveConfig{Width: 800, Height: 600, FPS: 10})
}

func TestLiveTickAdvances(t *testing.T) {
	m := newTestLive()
	before := m.Field().Clone()

	next, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	live := next.(Live)
	if live.Time() != 0.1 {
		t.Errorf("expected t=0.1, got %f", live.Time())
	}

	want := before.Clone()
	particle.Update(want, 0.1, 800, 600)
	for i := range want {
		if live.Field()[i] != want[i] {
			t.Fatalf("particle %d: expected %+v, got %+v", i, want[i], live.Field()[i])
		}
	}
}

func TestLivePauseAndReset(t *testing.T) {
	m := newTestLive()
	initial := m.Field().Clone()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	paused := next.(Live)
	next, _ = paused.Update(TickMsg(time.Now()))
	if next.(Live).Time() != 0 {
		t.Error("paused view must not advance")
	}

	next, _ = next.(Live).Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	next, _ = next.(Live).Update(TickMsg(time.Now()))
	next, _ = next.(Live).Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	reset := next.(Live)
	if reset.Time() != 0 {
		t.Errorf("expected time reset, got %f", reset.Time())
	}
	for i := range initial {
		if reset.Field()[i] != initial[i] {
			t.Fatalf("particle %d not restored", i)
		}
	}
}

func TestLiveQuit(t *testing.T) {
	m := newTestLive()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestLiveView(t *testing.T) {
	m := newTestLive()
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg(time.Now()))
		m = next.(Live)
	}
	view := m.View()
	for _, want := range []string{"PARTICLE FIELD", "RUNNING", "particles", "wraps per frame"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
