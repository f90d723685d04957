package gui

import (
	"context"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/sim"
)

var ColBg = rl.NewColor(0, 0, 0, 255)

// Preview is a raylib window showing the same field and wraparound as the
// OpenGL renderer.
type Preview struct {
	Field   particle.Field
	Backend compute.Backend
	Radius  float32
	ShowFPS bool

	frames uint64
}

func NewPreview(field particle.Field, backend compute.Backend, pointSize float64) *Preview {
	r := float32(pointSize) / 2
	if r < 1 {
		r = 1
	}
	return &Preview{Field: field, Backend: backend, Radius: r, ShowFPS: true}
}

// initWindow opens a resizable raylib window synced to the display.
func initWindow(cfg *config.Config) {
	flags := uint32(rl.FlagWindowResizable)
	if cfg.VSync {
		flags |= rl.FlagVsyncHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	rl.SetExitKey(rl.KeyEscape)
}

// Run opens the window and loops until it is closed or ctx is done.
func (p *Preview) Run(ctx context.Context, cfg *config.Config) error {
	initWindow(cfg)
	defer rl.CloseWindow()

	colors := make([]rl.Color, len(p.Field))
	for i := range p.Field {
		c := p.Field[i].Color
		colors[i] = rl.NewColor(uint8(c.X*255), uint8(c.Y*255), uint8(c.Z*255), 255)
	}

	clock := sim.NewFrameClock()
	clock.MaxDt = cfg.MaxFrameDt

	for !rl.WindowShouldClose() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// Render size is the framebuffer, which differs from the screen
		// size on HiDPI displays.
		w, h := float32(rl.GetRenderWidth()), float32(rl.GetRenderHeight())
		p.Backend.Integrate(p.Field, float32(clock.Tick()), w, h)

		rl.BeginDrawing()
		rl.ClearBackground(ColBg)
		for i := range p.Field {
			pos := p.Field[i].Position
			rl.DrawCircleV(rl.NewVector2(pos.X+w/2, h/2-pos.Y), p.Radius, colors[i])
		}
		if p.ShowFPS {
			rl.DrawFPS(10, 10)
		}
		rl.EndDrawing()
		p.frames++
	}

	slog.Info("preview closed", "frames", p.frames)
	return nil
}
