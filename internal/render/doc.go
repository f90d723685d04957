// Package render draws a particle field with OpenGL 4.3 core through a
// GLFW window.
//
// All functions must be called from the main goroutine; the package locks
// the OS thread at init. A typical session:
//
//	app, err := render.NewApp(cfg, field, backend, logger)
//	if err != nil {
//		return err
//	}
//	defer app.Close()
//	return app.Run(ctx)
package render
