package export

import (
	"strings"
	"testing"

	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/viz"
)

func TestFieldToSVG(t *testing.T) {
	f := particle.Field{
		{Position: particle.Vec2{X: -400, Y: 300}, Color: particle.Vec3{X: 1, Y: 0, Z: 0.5}},
		{Position: particle.Vec2{X: 0, Y: 0}, Color: particle.Vec3{X: 0, Y: 1, Z: 0}},
	}
	svg := FieldToSVG(f, 800, 600, 2)

	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatal("expected a complete svg document")
	}
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 circles, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `cx="0.0" cy="0.0" r="2.0" fill="#ff0080"`) {
		t.Errorf("top-left particle misplaced:\n%s", svg)
	}
	if !strings.Contains(svg, `cx="400.0" cy="300.0" r="2.0" fill="#00ff00"`) {
		t.Errorf("centre particle misplaced:\n%s", svg)
	}
}

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 1) != "" {
		t.Error("nil canvas should give empty output")
	}

	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 4)
	if strings.Count(svg, "<circle") != 2 {
		t.Errorf("expected 2 dots, got %d", strings.Count(svg, "<circle"))
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected svg size:\n%s", svg)
	}
}

func TestChannel(t *testing.T) {
	tests := map[float32]uint8{-1: 0, 0: 0, 0.5: 128, 1: 255, 2: 255}
	for in, want := range tests {
		if got := channel(in); got != want {
			t.Errorf("channel(%v) = %d, want %d", in, got, want)
		}
	}
}
