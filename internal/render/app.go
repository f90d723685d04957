package render

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/partsim/internal/compute"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/particle"
	"github.com/san-kum/partsim/internal/render/shaders"
	"github.com/san-kum/partsim/internal/sim"
)

// App owns everything the particle window needs for its lifetime.
type App struct {
	cfg     *config.Config
	window  *Window
	program *Program
	buffer  *ParticleBuffer
	field   particle.Field
	backend compute.Backend
	clock   *sim.FrameClock
	log     *slog.Logger

	width, height float32
	frames        uint64
}

// NewApp opens the window, builds the shader program and uploads field.
// On error everything acquired so far is released.
func NewApp(cfg *config.Config, field particle.Field, backend compute.Backend, log *slog.Logger) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	vertexSrc, err := shaders.Load(cfg.VertexShader, shaders.Vertex)
	if err != nil {
		return nil, err
	}
	fragmentSrc, err := shaders.Load(cfg.FragmentShader, shaders.Fragment)
	if err != nil {
		return nil, err
	}

	window, err := OpenWindow(WindowConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return nil, err
	}

	program, err := NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
		window.Close()
		return nil, fmt.Errorf("build shader program: %w", err)
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)

	a := &App{
		cfg:     cfg,
		window:  window,
		program: program,
		buffer:  NewParticleBuffer(field),
		field:   field,
		backend: backend,
		clock:   sim.NewFrameClock(),
		log:     log,
		width:   float32(cfg.Width),
		height:  float32(cfg.Height),
	}
	a.clock.MaxDt = cfg.MaxFrameDt

	log.Info("particle buffer ready", "particles", len(field), "stride", particle.Stride, "backend", backend.Name())
	return a, nil
}

// Run drives the frame loop until the window is closed or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.clock.Reset()
	second := time.NewTicker(time.Second)
	defer second.Stop()
	var framesThisSecond int

	for !a.window.ShouldClose() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-second.C:
			a.window.SetTitle(fmt.Sprintf("%s | FPS: %d", a.cfg.Title, framesThisSecond))
			a.log.Debug("frame rate", "fps", framesThisSecond, "frames", a.frames)
			framesThisSecond = 0
		default:
		}

		a.Frame()
		framesThisSecond++
	}
	return nil
}

// Frame renders a single frame: resize, integrate, upload, draw, swap.
func (a *App) Frame() {
	fbWidth, fbHeight := a.window.FramebufferSize()
	if fbWidth > 0 && fbHeight > 0 {
		w, h := float32(fbWidth), float32(fbHeight)
		if w != a.width || h != a.height {
			a.log.Debug("framebuffer resized", "width", fbWidth, "height", fbHeight)
		}
		a.width, a.height = w, h
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	}

	dt := float32(a.clock.Tick())
	a.backend.Integrate(a.field, dt, a.width, a.height)
	a.buffer.Upload(a.field)

	bg := a.cfg.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)

	a.program.Use(a.width, a.height, float32(a.cfg.PointSize))
	a.buffer.Draw()

	a.window.SwapBuffers()
	a.window.PollEvents()
	a.frames++
}

func (a *App) Frames() uint64 { return a.frames }

// Close releases GPU objects in reverse order of acquisition, then the
// window.
func (a *App) Close() {
	a.buffer.Delete()
	a.program.Delete()
	a.backend.Cleanup()
	a.window.Close()
	a.log.Info("renderer closed", "frames", a.frames)
}
