// Package shaders holds the default GLSL sources for the particle renderer
// and loads user-supplied replacements from disk.
package shaders

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed particle.vert
var Vertex string

//go:embed particle.frag
var Fragment string

// Load reads a shader file wholesale. An empty path selects fallback.
func Load(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read shader %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("shader %s is empty", path)
	}
	return string(data), nil
}

// CString returns src terminated with a single NUL, as the GL loader expects.
func CString(src string) string {
	return strings.TrimRight(src, "\x00") + "\x00"
}
