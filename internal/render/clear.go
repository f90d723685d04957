package render

import (
	"context"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/san-kum/partsim/internal/config"
)

// RunClear opens a window and clears it every frame until it is closed.
func RunClear(ctx context.Context, cfg *config.Config) error {
	window, err := OpenWindow(WindowConfig{
		Width:  cfg.Width,
		Height: cfg.Height,
		Title:  cfg.Title,
		VSync:  cfg.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Close()

	bg := cfg.Background
	frames := 0
	for !window.ShouldClose() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		w, h := window.FramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
		gl.Clear(gl.COLOR_BUFFER_BIT)

		window.SwapBuffers()
		window.PollEvents()
		frames++
	}

	slog.Info("clear window closed", "frames", frames)
	return nil
}
