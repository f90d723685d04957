package render

import "errors"

// Startup failures. Each is wrapped with the underlying cause or the
// driver's info log.
var (
	ErrWindowInit    = errors.New("failed to initialize GLFW")
	ErrWindowCreate  = errors.New("failed to create GLFW window")
	ErrLoaderInit    = errors.New("failed to initialize OpenGL loader")
	ErrShaderCompile = errors.New("failed to compile shader")
	ErrProgramLink   = errors.New("failed to link program")
)
